package store

import (
	"context"
	"fmt"
)

// CurrentSchemaVersion is the current database schema version.
const CurrentSchemaVersion = 1

// migrate runs database migrations.
func (s *Store) migrate(ctx context.Context) error {
	if err := s.createEventsTable(ctx); err != nil {
		return err
	}
	if err := s.createRejectsTable(ctx); err != nil {
		return err
	}
	if err := s.createMetadataTable(ctx); err != nil {
		return err
	}
	return nil
}

func (s *Store) createEventsTable(ctx context.Context) error {
	// start_at keeps the wall clock with its offset as scraped; start_date
	// is the calendar date of that wall clock (the identity key's date
	// component); start_utc is fixed-width UTC for chronological ordering
	// and retention sweeps.
	const schema = `
	CREATE TABLE IF NOT EXISTS events (
		id              INTEGER PRIMARY KEY,
		title           TEXT NOT NULL,
		description     TEXT,
		start_at        TEXT NOT NULL,
		start_date      TEXT NOT NULL,
		start_utc       TEXT NOT NULL,
		end_at          TEXT,
		venue_name      TEXT NOT NULL,
		neighborhood    TEXT,
		city            TEXT NOT NULL,
		price_min       REAL,
		price_max       REAL,
		url             TEXT,
		tags_json       TEXT,
		source_platform TEXT NOT NULL,
		identity_key    TEXT NOT NULL,
		discovered_at   TEXT NOT NULL,
		schema_version  INTEGER NOT NULL,
		UNIQUE(identity_key)
	);

	CREATE INDEX IF NOT EXISTS idx_events_start_date ON events(start_date);
	CREATE INDEX IF NOT EXISTS idx_events_start_utc ON events(start_utc);
	CREATE INDEX IF NOT EXISTS idx_events_source ON events(source_platform);
	`

	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create events table: %w", err)
	}
	return nil
}

func (s *Store) createRejectsTable(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS rejects (
		id         INTEGER PRIMARY KEY,
		ts         TEXT NOT NULL,
		source     TEXT NOT NULL,
		payload    TEXT NOT NULL,
		error_msg  TEXT,
		dedupe_key TEXT NOT NULL,
		UNIQUE(dedupe_key)
	);
	`

	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create rejects table: %w", err)
	}
	return nil
}

func (s *Store) createMetadataTable(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS metadata (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`

	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create metadata table: %w", err)
	}
	return nil
}
