package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/morlabs/nightplanner/internal/event"
)

const (
	defaultLimit = 200

	// MaxQueryLimit caps QueryEvents result sizes regardless of the
	// requested limit.
	MaxQueryLimit = 500
)

// InsertEvent inserts an event if no row with the same identity key exists.
// Returns true when the row was inserted, false when it was a duplicate
// (first writer wins, the later record is a no-op). On success e.ID is set
// to the inserted row's ID.
func (s *Store) InsertEvent(ctx context.Context, e *event.Event) (inserted bool, err error) {
	if err := validateEvent(e); err != nil {
		return false, err
	}

	row, err := eventToRow(e)
	if err != nil {
		return false, err
	}

	const query = `
	INSERT INTO events
	(title, description, start_at, start_date, start_utc, end_at, venue_name,
	 neighborhood, city, price_min, price_max, url, tags_json,
	 source_platform, identity_key, discovered_at, schema_version)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(identity_key) DO NOTHING
	`

	result, err := s.db.ExecContext(ctx, query,
		row.Title,
		row.Description,
		row.StartAt,
		row.StartDate,
		row.StartUTC,
		row.EndAt,
		row.VenueName,
		row.Neighborhood,
		row.City,
		row.PriceMin,
		row.PriceMax,
		row.URL,
		row.TagsJSON,
		row.SourcePlatform,
		row.IdentityKey,
		row.DiscoveredAt,
		row.SchemaVersion,
	)
	if err != nil {
		return false, fmt.Errorf("insert event: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return false, nil
	}

	id, err := result.LastInsertId()
	if err != nil {
		return false, fmt.Errorf("last insert id: %w", err)
	}
	e.ID = id
	return true, nil
}

// Filter contains filter options for querying events.
type Filter struct {
	// Date restricts results to events whose start falls on this calendar
	// date ("2006-01-02"), in the event's own wall clock.
	Date string
	// Since/Until bound the start instant (UTC comparison, half-open).
	Since *time.Time
	Until *time.Time
	Limit int
}

// QueryResult contains the result of a query. Skipped counts rows whose
// stored timestamps no longer parse; these are data-quality losses, not
// failures.
type QueryResult struct {
	Items   []event.Event
	Skipped int
}

// QueryEvents queries events ordered by start time.
func (s *Store) QueryEvents(ctx context.Context, f Filter) (QueryResult, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = defaultLimit
	} else if limit > MaxQueryLimit {
		limit = MaxQueryLimit
	}

	var (
		sb   strings.Builder
		args []any
	)

	sb.WriteString(`
SELECT id, title, description, start_at, start_date, start_utc, end_at,
       venue_name, neighborhood, city, price_min, price_max, url, tags_json,
       source_platform, identity_key, discovered_at, schema_version
FROM events
WHERE 1=1
`)

	if f.Date != "" {
		sb.WriteString(" AND start_date = ?")
		args = append(args, f.Date)
	}
	if f.Since != nil {
		sb.WriteString(" AND start_utc >= ?")
		args = append(args, f.Since.UTC().Format(TimeFormat))
	}
	if f.Until != nil {
		sb.WriteString(" AND start_utc < ?")
		args = append(args, f.Until.UTC().Format(TimeFormat))
	}

	sb.WriteString(" ORDER BY start_utc ASC, id ASC")
	sb.WriteString(" LIMIT ?")
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return QueryResult{}, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	result := QueryResult{Items: make([]event.Event, 0, limit)}
	for rows.Next() {
		var r eventRow
		if err := rows.Scan(
			&r.ID, &r.Title, &r.Description, &r.StartAt, &r.StartDate,
			&r.StartUTC, &r.EndAt, &r.VenueName, &r.Neighborhood, &r.City,
			&r.PriceMin, &r.PriceMax, &r.URL, &r.TagsJSON,
			&r.SourcePlatform, &r.IdentityKey, &r.DiscoveredAt, &r.SchemaVersion,
		); err != nil {
			return QueryResult{}, fmt.Errorf("scan event: %w", err)
		}
		e, err := r.toEvent()
		if err != nil {
			result.Skipped++
			continue
		}
		result.Items = append(result.Items, *e)
	}
	if err := rows.Err(); err != nil {
		return QueryResult{}, fmt.Errorf("rows error: %w", err)
	}

	return result, nil
}

// DeleteBefore removes events starting before the cutoff instant and
// returns how many rows were deleted. Used by the retention sweep.
func (s *Store) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM events WHERE start_utc < ?",
		cutoff.UTC().Format(TimeFormat),
	)
	if err != nil {
		return 0, fmt.Errorf("delete before: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}

// CountEvents returns the total number of events in the database.
func (s *Store) CountEvents(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM events`

	var count int64
	if err := s.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return count, nil
}
