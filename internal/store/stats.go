package store

import (
	"context"
	"database/sql"
)

// SourceCount is one source's share of the stored events.
type SourceCount struct {
	Source string `json:"source"`
	Count  int64  `json:"count"`
}

// IngestStats holds aggregate statistics about the stored dataset.
type IngestStats struct {
	TotalEvents      int64         `json:"total_events"`
	TotalRejects     int64         `json:"total_rejects"`
	EventsBySource   []SourceCount `json:"events_by_source"`
	LastDiscoveredAt *string       `json:"last_discovered_at,omitempty"`
}

// GetIngestStats retrieves aggregate statistics for the whole store.
func (s *Store) GetIngestStats(ctx context.Context) (*IngestStats, error) {
	stats := &IngestStats{
		EventsBySource: []SourceCount{},
	}

	var err error
	if stats.TotalEvents, err = s.CountEvents(ctx); err != nil {
		return nil, err
	}
	if stats.TotalRejects, err = s.CountRejects(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT source_platform, COUNT(*) AS n
		FROM events
		GROUP BY source_platform
		ORDER BY n DESC, source_platform ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var sc SourceCount
		if err := rows.Scan(&sc.Source, &sc.Count); err != nil {
			return nil, err
		}
		stats.EventsBySource = append(stats.EventsBySource, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var last sql.NullString
	err = s.db.QueryRowContext(ctx, `
		SELECT discovered_at FROM events
		ORDER BY discovered_at DESC, id DESC
		LIMIT 1
	`).Scan(&last)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}
	if last.Valid {
		stats.LastDiscoveredAt = &last.String
	}

	return stats, nil
}
