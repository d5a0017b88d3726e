// Package scrape provides nightlife event sources. Each source produces raw
// candidate records from one external listing platform; the normalize package
// turns them into canonical events.
package scrape

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
)

// Source abstracts one external event listing platform.
// Implementations own their fetch and parse details; a failing source returns
// whatever partial results it gathered together with the error. Sources hold
// no shared mutable state, so the orchestrator may run them in any order.
type Source interface {
	// Name identifies the platform, e.g. "house_of_yes".
	Name() string

	// Scrape fetches and parses raw candidates. The context bounds the
	// whole call; a deadline hit is an ordinary source failure.
	Scrape(ctx context.Context) ([]RawCandidate, error)
}

// RawCandidate is an unvalidated key/value bag as scraped from a source.
// Keys follow either the current schema (title, start_datetime, venue_name,
// price_min, ...) or the legacy one (datetime, location, price, tags) that
// older adapters still emit. The bag carries no invariants and is discarded
// after normalization.
type RawCandidate map[string]any

// String returns the value for key as a string, or "" when absent or not a
// string.
func (c RawCandidate) String(key string) string {
	s, _ := c[key].(string)
	return s
}

// Float returns the numeric value for key. Integers are widened so literal
// candidates built in code behave like decoded JSON.
func (c RawCandidate) Float(key string) (float64, bool) {
	switch v := c[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

// Strings returns the value for key as a string slice. Both []string and
// []any (the shape produced by JSON decoding) are accepted; other types
// yield nil.
func (c RawCandidate) Strings(key string) []string {
	switch v := c[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Has reports whether key is present in the bag.
func (c RawCandidate) Has(key string) bool {
	_, ok := c[key]
	return ok
}

// Payload renders the bag as JSON for reject records. Map key order is
// sorted by the encoder, so equal bags produce equal payloads.
func (c RawCandidate) Payload() string {
	b, err := json.Marshal(c)
	if err != nil {
		return fmt.Sprintf("%v", map[string]any(c))
	}
	return string(b)
}
