// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package manifest records conversion runs in a SQLite database, so
// repeated invocations leave an inspectable history (pdfmark history).
// Recording is opt-in; conversion never depends on it.
// See docs/ARCHITECTURE § Manifest.
package manifest

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Store manages the manifest SQLite database.
type Store struct {
	db *sql.DB
}

// Run is one recorded conversion.
type Run struct {
	ID        int64         `json:"id"`
	Input     string        `json:"input"`
	Output    string        `json:"output"`
	Mode      string        `json:"mode"` // whole or chunked
	Pages     int           `json:"pages"`
	Tables    int           `json:"tables"`
	Duration  time.Duration `json:"duration"`
	CreatedAt time.Time     `json:"created_at"`
}

// Open opens or creates the manifest database at path, creating parent
// directories and the schema as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating manifest directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening manifest database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	input       TEXT NOT NULL,
	output      TEXT NOT NULL,
	mode        TEXT NOT NULL,
	pages       INTEGER NOT NULL,
	tables_n    INTEGER NOT NULL,
	duration_ms INTEGER NOT NULL,
	created_at  TEXT NOT NULL
);`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("creating manifest schema: %w", err)
	}
	return nil
}

// Record inserts one conversion run.
func (s *Store) Record(ctx context.Context, run Run) error {
	created := run.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (input, output, mode, pages, tables_n, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.Input, run.Output, run.Mode, run.Pages, run.Tables,
		run.Duration.Milliseconds(), created.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("recording run: %w", err)
	}
	return nil
}

// List returns the most recent runs, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, input, output, mode, pages, tables_n, duration_ms, created_at
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var durMS int64
		var created string
		if err := rows.Scan(&r.ID, &r.Input, &r.Output, &r.Mode, &r.Pages, &r.Tables, &durMS, &created); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.Duration = time.Duration(durMS) * time.Millisecond
		if ts, err := time.Parse(time.RFC3339Nano, created); err == nil {
			r.CreatedAt = ts
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
