// Package appinfo provides application identity constants.
// These are used across packages for consistent naming.
package appinfo

const (
	// AppName is the display name of the application.
	AppName = "Night Planner"

	// DirName is the directory name used for storing application data.
	// Location: %LOCALAPPDATA%/nightplanner/ (Windows) or ~/.config/nightplanner/ (other)
	DirName = "nightplanner"

	// ConfigFileName is the configuration file name.
	ConfigFileName = "config.json"

	// DatabaseFileName is the SQLite database file name.
	DatabaseFileName = "events.sqlite"
)
