// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps a local SQLite journal of conversions run from the
// command line. The msword2image library itself never records anything.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/msword2image/pkg/types"
)

const (
	dbFile            = "history.db"
	defaultMaxResults = 20
)

// Store manages the history database.
type Store struct {
	db         *sql.DB
	dir        string
	maxResults int
}

// Open opens or creates dir/history.db and its schema.
func Open(cfg types.HistoryConfig) (*Store, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("history directory is not configured")
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{db: db, dir: cfg.Dir, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS conversions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at TEXT NOT NULL,
			duration_ms INTEGER NOT NULL,
			input_type TEXT NOT NULL,
			input TEXT NOT NULL,
			output_type TEXT NOT NULL,
			output TEXT,
			format TEXT NOT NULL,
			bytes INTEGER NOT NULL DEFAULT 0,
			mime_type TEXT,
			status TEXT NOT NULL,
			error TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_started_at ON conversions(started_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record appends e and returns its assigned ID.
func (s *Store) Record(ctx context.Context, e types.HistoryEntry) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO conversions
			(started_at, duration_ms, input_type, input, output_type, output, format, bytes, mime_type, status, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.StartedAt.UTC().Format(time.RFC3339Nano), e.Duration.Milliseconds(),
		string(e.Input.Type), e.Input.Value,
		string(e.Output.Type), e.Output.Value, string(e.Output.Format),
		e.Bytes, e.MIMEType, string(e.Status), e.Error,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting history entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading history entry id: %w", err)
	}
	return id, nil
}

// Recent returns up to limit entries, newest first. A limit of zero or
// less uses the configured maximum.
func (s *Store) Recent(ctx context.Context, limit int) ([]types.HistoryEntry, error) {
	if limit <= 0 {
		limit = s.maxResults
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, duration_ms, input_type, input, output_type, output, format, bytes, mime_type, status, error
		 FROM conversions ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []types.HistoryEntry
	for rows.Next() {
		var (
			e                          types.HistoryEntry
			startedAt                  string
			durationMS                 int64
			inType, outType, format    string
			output, mimeType, errorMsg sql.NullString
			status                     string
		)
		if err := rows.Scan(&e.ID, &startedAt, &durationMS, &inType, &e.Input.Value,
			&outType, &output, &format, &e.Bytes, &mimeType, &status, &errorMsg); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, startedAt); err == nil {
			e.StartedAt = t
		}
		e.Duration = time.Duration(durationMS) * time.Millisecond
		e.Input.Type = types.InputType(inType)
		e.Output = types.Output{
			Type:   types.OutputType(outType),
			Format: types.ImageFormat(format),
			Value:  output.String,
		}
		e.MIMEType = mimeType.String
		e.Status = types.ConversionStatus(status)
		e.Error = errorMsg.String
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating history rows: %w", err)
	}
	return entries, nil
}
