package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/morlabs/nightplanner/internal/event"
)

// eventRow is the internal type representing a database row.
type eventRow struct {
	ID             int64
	Title          string
	Description    sql.NullString
	StartAt        string
	StartDate      string
	StartUTC       string
	EndAt          sql.NullString
	VenueName      string
	Neighborhood   sql.NullString
	City           string
	PriceMin       sql.NullFloat64
	PriceMax       sql.NullFloat64
	URL            sql.NullString
	TagsJSON       sql.NullString
	SourcePlatform string
	IdentityKey    string
	DiscoveredAt   string
	SchemaVersion  int
}

// toEvent converts a database row to an Event.
func (r *eventRow) toEvent() (*event.Event, error) {
	startAt, err := time.Parse(time.RFC3339Nano, r.StartAt)
	if err != nil {
		return nil, fmt.Errorf("parse start_at %q: %w", r.StartAt, err)
	}

	discoveredAt, err := time.Parse(TimeFormat, r.DiscoveredAt)
	if err != nil {
		return nil, fmt.Errorf("parse discovered_at %q: %w", r.DiscoveredAt, err)
	}

	e := &event.Event{
		ID:             r.ID,
		Title:          r.Title,
		StartAt:        startAt,
		VenueName:      r.VenueName,
		City:           r.City,
		SourcePlatform: r.SourcePlatform,
		DiscoveredAt:   discoveredAt,
	}

	if r.Description.Valid {
		e.Description = r.Description.String
	}
	if r.EndAt.Valid && r.EndAt.String != "" {
		endAt, err := time.Parse(time.RFC3339Nano, r.EndAt.String)
		if err != nil {
			return nil, fmt.Errorf("parse end_at %q: %w", r.EndAt.String, err)
		}
		e.EndAt = &endAt
	}
	if r.Neighborhood.Valid {
		e.Neighborhood = &r.Neighborhood.String
	}
	if r.PriceMin.Valid {
		e.PriceMin = &r.PriceMin.Float64
	}
	if r.PriceMax.Valid {
		e.PriceMax = &r.PriceMax.Float64
	}
	if r.URL.Valid {
		e.URL = &r.URL.String
	}
	if r.TagsJSON.Valid && r.TagsJSON.String != "" {
		if err := json.Unmarshal([]byte(r.TagsJSON.String), &e.Tags); err != nil {
			return nil, fmt.Errorf("parse tags_json: %w", err)
		}
	}

	return e, nil
}

// eventToRow converts an Event to a database row.
func eventToRow(e *event.Event) (*eventRow, error) {
	r := &eventRow{
		ID:             e.ID,
		Title:          e.Title,
		StartAt:        e.StartAt.Format(time.RFC3339Nano),
		StartDate:      e.StartAt.Format(DateFormat),
		StartUTC:       e.StartAt.UTC().Format(TimeFormat),
		VenueName:      e.VenueName,
		City:           e.City,
		SourcePlatform: e.SourcePlatform,
		IdentityKey:    e.IdentityKey(),
		DiscoveredAt:   e.DiscoveredAt.UTC().Format(TimeFormat),
		SchemaVersion:  CurrentSchemaVersion,
	}

	if e.Description != "" {
		r.Description = sql.NullString{String: e.Description, Valid: true}
	}
	if e.EndAt != nil {
		r.EndAt = sql.NullString{String: e.EndAt.Format(time.RFC3339Nano), Valid: true}
	}
	if e.Neighborhood != nil {
		r.Neighborhood = sql.NullString{String: *e.Neighborhood, Valid: true}
	}
	if e.PriceMin != nil {
		r.PriceMin = sql.NullFloat64{Float64: *e.PriceMin, Valid: true}
	}
	if e.PriceMax != nil {
		r.PriceMax = sql.NullFloat64{Float64: *e.PriceMax, Valid: true}
	}
	if e.URL != nil {
		r.URL = sql.NullString{String: *e.URL, Valid: true}
	}
	if len(e.Tags) > 0 {
		b, err := json.Marshal(e.Tags)
		if err != nil {
			return nil, fmt.Errorf("marshal tags: %w", err)
		}
		r.TagsJSON = sql.NullString{String: string(b), Valid: true}
	}

	return r, nil
}

// validateEvent checks that required fields and price invariants hold.
func validateEvent(e *event.Event) error {
	if e.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidEvent)
	}
	if e.StartAt.IsZero() {
		return fmt.Errorf("%w: start_datetime is required", ErrInvalidEvent)
	}
	if e.VenueName == "" {
		return fmt.Errorf("%w: venue_name is required", ErrInvalidEvent)
	}
	if e.SourcePlatform == "" {
		return fmt.Errorf("%w: source_platform is required", ErrInvalidEvent)
	}
	if e.DiscoveredAt.IsZero() {
		return fmt.Errorf("%w: discovered_at is required", ErrInvalidEvent)
	}
	if e.EndAt != nil && e.EndAt.Before(e.StartAt) {
		return fmt.Errorf("%w: end_datetime before start_datetime", ErrInvalidEvent)
	}
	if e.PriceMin != nil && *e.PriceMin < 0 {
		return fmt.Errorf("%w: negative price_min", ErrInvalidEvent)
	}
	if e.PriceMax != nil && *e.PriceMax < 0 {
		return fmt.Errorf("%w: negative price_max", ErrInvalidEvent)
	}
	if e.PriceMin != nil && e.PriceMax != nil && *e.PriceMax < *e.PriceMin {
		return fmt.Errorf("%w: price_max below price_min", ErrInvalidEvent)
	}
	return nil
}
