package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// InsertReject records a raw candidate that failed normalization.
// Returns true if the reject was recorded, false if the same payload was
// already recorded. Uses ON CONFLICT(dedupe_key) DO NOTHING so a broken
// source rescraped every run does not grow the table unbounded.
func (s *Store) InsertReject(ctx context.Context, source, payload, errorMsg string) (inserted bool, err error) {
	if payload == "" {
		return false, fmt.Errorf("payload is required")
	}

	const query = `
	INSERT INTO rejects (ts, source, payload, error_msg, dedupe_key)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(dedupe_key) DO NOTHING
	`

	dedupeKey := sha256Hex(source + "|" + payload)
	ts := time.Now().UTC().Format(TimeFormat)

	result, err := s.db.ExecContext(ctx, query, ts, source, payload, errorMsg, dedupeKey)
	if err != nil {
		return false, fmt.Errorf("insert reject: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// CountRejects returns the total number of recorded rejects.
func (s *Store) CountRejects(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM rejects").Scan(&count); err != nil {
		return 0, fmt.Errorf("count rejects: %w", err)
	}
	return count, nil
}

// sha256Hex returns the SHA256 hash of the input string as a hex string.
func sha256Hex(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])
}
