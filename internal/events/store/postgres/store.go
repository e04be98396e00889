// Package postgres mirrors the event trail into a relational table so
// external consumers get rich querying (joins, time-range scans) without
// touching the in-process trail.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/lib/pq"

	"orgnet/internal/events"
)

// Schema creates the mirror table. Applied by the operator or at startup;
// the mirror is a derived projection and can be dropped and replayed.
const Schema = `
CREATE TABLE IF NOT EXISTS registry_events (
    seq        BIGINT PRIMARY KEY,
    event_id   UUID NOT NULL,
    occurred_at TIMESTAMPTZ NOT NULL,
    registry   TEXT NOT NULL,
    action     TEXT NOT NULL,
    record_id  BIGINT NOT NULL,
    principal  TEXT NOT NULL,
    recipient  TEXT NOT NULL DEFAULT '',
    fields     JSONB NOT NULL DEFAULT '{}'
);
CREATE INDEX IF NOT EXISTS registry_events_registry_record_idx
    ON registry_events (registry, record_id);
`

// Store writes committed events into PostgreSQL. Implements events.Sink.
type Store struct {
	db *sql.DB
}

// Open connects to the mirror database and applies the schema.
func Open(url string) (*Store, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("open events mirror: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping events mirror: %w", err)
	}
	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply events mirror schema: %w", err)
	}
	return &Store{db: db}, nil
}

// New wraps an existing connection without applying the schema.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Name() string { return "postgres" }

// Write upserts one event row. Idempotent on seq so replays are safe.
func (s *Store) Write(ctx context.Context, event events.Event) error {
	fields, err := json.Marshal(event.Fields)
	if err != nil {
		return fmt.Errorf("marshal event fields: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO registry_events
			(seq, event_id, occurred_at, registry, action, record_id, principal, recipient, fields)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (seq) DO NOTHING`,
		int64(event.Seq),
		event.ID,
		event.Timestamp.UTC(),
		event.Registry,
		string(event.Action),
		int64(event.RecordID),
		event.Principal.String(),
		event.Recipient.String(),
		fields,
	)
	if err != nil {
		return fmt.Errorf("insert event %d: %w", event.Seq, err)
	}
	return nil
}

// LastSeq returns the highest mirrored commit sequence, 0 when the mirror is
// empty. Used on startup to replay the gap from the trail.
func (s *Store) LastSeq(ctx context.Context) (uint64, error) {
	var last sql.NullInt64
	err := s.db.QueryRowContext(ctx, `SELECT MAX(seq) FROM registry_events`).Scan(&last)
	if err != nil {
		return 0, fmt.Errorf("query mirror last seq: %w", err)
	}
	if !last.Valid {
		return 0, nil
	}
	return uint64(last.Int64), nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

var _ events.Sink = (*Store)(nil)
