// Package history keeps a local log of past queries in SQLite. Only
// query metadata is recorded (input, routing, format, source, status);
// fetched citation bodies are never persisted.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Entry is one recorded query against one source.
type Entry struct {
	ID         int64     `json:"id"`
	Input      string    `json:"input"`
	Kind       string    `json:"kind"`
	Format     string    `json:"format"`
	Source     string    `json:"source"`
	StatusCode int       `json:"status_code"`
	FetchedAt  time.Time `json:"fetched_at"`
}

// DefaultListLimit bounds how many entries List returns when the caller
// passes a non-positive limit.
const DefaultListLimit = 20

// Store wraps the SQLite history database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database at the given path, creating
// parent directories as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS queries (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			input TEXT NOT NULL,
			kind TEXT NOT NULL,
			format TEXT NOT NULL,
			source TEXT NOT NULL,
			status_code INTEGER NOT NULL,
			fetched_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_queries_fetched_at ON queries(fetched_at);
	`
	_, err := db.Exec(schema)
	return err
}

// Record appends one entry. FetchedAt defaults to now when zero.
func (s *Store) Record(e Entry) error {
	when := e.FetchedAt
	if when.IsZero() {
		when = time.Now()
	}

	_, err := s.db.Exec(
		`INSERT INTO queries (input, kind, format, source, status_code, fetched_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.Input, e.Kind, e.Format, e.Source, e.StatusCode, when.Unix(),
	)
	if err != nil {
		return fmt.Errorf("recording query: %w", err)
	}
	return nil
}

// List returns the most recent entries, newest first.
func (s *Store) List(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	rows, err := s.db.Query(
		`SELECT id, input, kind, format, source, status_code, fetched_at
		 FROM queries ORDER BY fetched_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var unix int64
		if err := rows.Scan(&e.ID, &e.Input, &e.Kind, &e.Format, &e.Source, &e.StatusCode, &unix); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		e.FetchedAt = time.Unix(unix, 0)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Clear deletes all entries and returns how many were removed.
func (s *Store) Clear() (int64, error) {
	res, err := s.db.Exec("DELETE FROM queries")
	if err != nil {
		return 0, fmt.Errorf("clearing history: %w", err)
	}
	return res.RowsAffected()
}
