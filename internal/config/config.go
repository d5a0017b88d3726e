package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
)

// CurrentSchemaVersion is the current config schema version.
const CurrentSchemaVersion = 1

// Environment variable names for config overrides.
// Priority: Environment > Config File > Default
const (
	EnvPort              = "NIGHTPLANNER_PORT"
	EnvDatabasePath      = "NIGHTPLANNER_DB_PATH"
	EnvEnableFallback    = "NIGHTPLANNER_ENABLE_FALLBACK"
	EnvSourceTimeoutSec  = "NIGHTPLANNER_SOURCE_TIMEOUT_SEC"
	EnvRetentionDays     = "NIGHTPLANNER_RETENTION_DAYS"
	EnvScrapeIntervalMin = "NIGHTPLANNER_SCRAPE_INTERVAL_MIN"
	EnvCORSOrigins       = "NIGHTPLANNER_CORS_ORIGINS"
)

// Config holds application configuration.
type Config struct {
	SchemaVersion     int      `json:"schema_version"`
	Port              int      `json:"port"`
	DatabasePath      string   `json:"database_path"` // empty means the default data dir
	EnableFallback    bool     `json:"enable_fallback"`
	SourceTimeoutSec  int      `json:"source_timeout_sec"`
	RetentionDays     int      `json:"retention_days"` // 0 disables pruning
	ScrapeIntervalMin int      `json:"scrape_interval_min"`
	CORSOrigins       []string `json:"cors_origins"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		SchemaVersion:     CurrentSchemaVersion,
		Port:              8080,
		DatabasePath:      "",
		EnableFallback:    true,
		SourceTimeoutSec:  30,
		RetentionDays:     90,
		ScrapeIntervalMin: 360,
		CORSOrigins:       nil,
	}
}

// LoadConfig reads config from disk. If the file doesn't exist or is corrupt,
// it returns DefaultConfig with a warning logged (non-fatal).
func LoadConfig() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), err
	}
	return LoadConfigFrom(path)
}

// LoadConfigFrom reads config from the specified path.
func LoadConfigFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// File doesn't exist, use defaults (not an error)
			return cfg, nil
		}
		log.Printf("Warning: failed to read config file: %v, using defaults", err)
		return cfg, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&cfg); err != nil {
		log.Printf("Warning: config file is corrupt: %v, using defaults", err)
		return DefaultConfig(), nil
	}

	if cfg.SchemaVersion != CurrentSchemaVersion {
		log.Printf("Warning: config schema version mismatch (got %d, expected %d), using defaults",
			cfg.SchemaVersion, CurrentSchemaVersion)
		return DefaultConfig(), nil
	}

	return normalizeConfig(cfg), nil
}

// normalizeConfig validates and normalizes config values.
func normalizeConfig(cfg Config) Config {
	defaults := DefaultConfig()

	cfg.SchemaVersion = CurrentSchemaVersion

	if cfg.Port <= 0 || cfg.Port > 65535 {
		cfg.Port = defaults.Port
	}
	if cfg.SourceTimeoutSec <= 0 {
		cfg.SourceTimeoutSec = defaults.SourceTimeoutSec
	}
	if cfg.RetentionDays < 0 {
		cfg.RetentionDays = defaults.RetentionDays
	}
	if cfg.ScrapeIntervalMin <= 0 {
		cfg.ScrapeIntervalMin = defaults.ScrapeIntervalMin
	}

	return cfg
}

// EnsureConfig loads config from the default path, writing the current
// values to disk when no file exists yet so first runs leave a file to
// edit.
func EnsureConfig() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), err
	}
	return EnsureConfigFrom(path)
}

// EnsureConfigFrom is EnsureConfig against the specified path.
func EnsureConfigFrom(path string) (Config, error) {
	cfg, err := LoadConfigFrom(path)
	if err != nil {
		return cfg, err
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := SaveConfigTo(cfg, path); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

// SaveConfig writes config to disk atomically.
func SaveConfig(cfg Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveConfigTo(cfg, path)
}

// SaveConfigTo writes config to the specified path atomically.
func SaveConfigTo(cfg Config, path string) error {
	cfg.SchemaVersion = CurrentSchemaVersion
	return writeJSONAtomic(path, cfg)
}

// ApplyEnvOverrides applies environment variable overrides to the config.
// Environment variables take highest priority over config file values.
func ApplyEnvOverrides(cfg Config) Config {
	if v := os.Getenv(EnvPort); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 && port <= 65535 {
			cfg.Port = port
		}
	}

	if v := os.Getenv(EnvDatabasePath); v != "" {
		cfg.DatabasePath = v
	}

	if v := os.Getenv(EnvEnableFallback); v != "" {
		cfg.EnableFallback = parseBool(v)
	}

	if v := os.Getenv(EnvSourceTimeoutSec); v != "" {
		if sec, err := strconv.Atoi(v); err == nil && sec > 0 {
			cfg.SourceTimeoutSec = sec
		}
	}

	if v := os.Getenv(EnvRetentionDays); v != "" {
		if days, err := strconv.Atoi(v); err == nil && days >= 0 {
			cfg.RetentionDays = days
		}
	}

	if v := os.Getenv(EnvScrapeIntervalMin); v != "" {
		if min, err := strconv.Atoi(v); err == nil && min > 0 {
			cfg.ScrapeIntervalMin = min
		}
	}

	if v := os.Getenv(EnvCORSOrigins); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.CORSOrigins = origins
	}

	return cfg
}

// parseBool parses a boolean from various string representations.
// Accepts: "true", "1", "yes", "on" (case-insensitive) as true.
// All other values are treated as false.
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes" || s == "on"
}
