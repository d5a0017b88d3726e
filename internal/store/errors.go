package store

import "errors"

// Sentinel errors for the store package.
var (
	// ErrInvalidEvent is returned when an event fails validation.
	ErrInvalidEvent = errors.New("invalid event")
)
