package store

import (
	"context"
	"database/sql"
	"fmt"
)

const (
	tableSubmissionEvents = "submission_events"
	tableResultEvents     = "result_events"
)

// Every event row carries the shared sequence and a millisecond timestamp.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS submission_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL UNIQUE,
		timestamp INTEGER NOT NULL,
		session_id TEXT NOT NULL,
		submission_id TEXT NOT NULL,
		attempt INTEGER NOT NULL,
		scorer TEXT NOT NULL,
		latency_ms INTEGER NOT NULL DEFAULT 0,
		success INTEGER NOT NULL,
		error_kind TEXT NOT NULL DEFAULT '',
		error_message TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS submission_events_submission_id ON submission_events (submission_id)`,
	`CREATE TABLE IF NOT EXISTS result_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL UNIQUE,
		timestamp INTEGER NOT NULL,
		session_id TEXT NOT NULL,
		submission_id TEXT NOT NULL,
		score INTEGER NOT NULL,
		tier TEXT NOT NULL,
		source TEXT NOT NULL,
		emergency INTEGER NOT NULL,
		safety_triggered INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS result_events_timestamp ON result_events (timestamp)`,
}

func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("exec %q: %w", firstLine(stmt), err)
		}
	}
	return nil
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	return s
}
