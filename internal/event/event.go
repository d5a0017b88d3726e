// Package event provides the shared Event model for Night Planner.
// This package is used by the normalize, dedupe, pipeline, planner, store,
// and api packages.
package event

import (
	"strings"
	"time"
)

// DefaultCity is the locale every event belongs to unless a source says
// otherwise. The planner's travel table is curated for this city.
const DefaultCity = "New York"

// VenueTBD is the sentinel venue name used when a source does not expose
// the venue. It still participates in the identity key.
const VenueTBD = "TBD"

// Event is a normalized nightlife event. This is the domain model shared
// across packages, independent of storage implementation.
//
// An Event is created once per identity key at ingestion time and never
// mutated afterwards; the store only ever appends and bulk-deletes by age.
type Event struct {
	ID             int64      `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	StartAt        time.Time  `json:"start_datetime"`
	EndAt          *time.Time `json:"end_datetime,omitempty"`
	VenueName      string     `json:"venue_name"`
	Neighborhood   *string    `json:"neighborhood,omitempty"`
	City           string     `json:"city"`
	PriceMin       *float64   `json:"price_min,omitempty"`
	PriceMax       *float64   `json:"price_max,omitempty"`
	URL            *string    `json:"url,omitempty"`
	Tags           []string   `json:"raw_tags"`
	SourcePlatform string     `json:"source_platform"`
	DiscoveredAt   time.Time  `json:"discovered_at"`
}

// IdentityKey returns the cross-source identity key for e: the normalized
// title, the calendar date of the start time, and the normalized venue name,
// joined with "|". Two records from different platforms with the same key
// describe the same real-world event.
func (e *Event) IdentityKey() string {
	return IdentityKey(e.Title, e.StartAt, e.VenueName)
}

// IdentityKey builds the identity key from its parts. Title and venue are
// lower-cased and trimmed so that cosmetic differences between platforms
// do not defeat deduplication.
func IdentityKey(title string, startAt time.Time, venue string) string {
	return normalizeKeyPart(title) + "|" + startAt.Format("2006-01-02") + "|" + normalizeKeyPart(venue)
}

func normalizeKeyPart(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// IsFree reports whether the event is explicitly free: both price bounds
// present and zero. Unknown prices (nil bounds) are not free.
func (e *Event) IsFree() bool {
	return e.PriceMin != nil && e.PriceMax != nil && *e.PriceMin == 0 && *e.PriceMax == 0
}

// StringPtr returns a pointer to the given string.
// Useful for setting optional fields.
func StringPtr(s string) *string {
	return &s
}

// Float64Ptr returns a pointer to the given float64.
func Float64Ptr(f float64) *float64 {
	return &f
}
