// Package history keeps a local log of completed imports in SQLite.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store is the history database handle.
type Store struct {
	db *sql.DB
}

// Entry is one recorded import or store pull.
type Entry struct {
	ID          int64
	DatasetID   string
	DatasetName string
	Source      string // file path or "store:<id>"
	Items       int
	Skipped     int
	CreatedAt   time.Time
}

const schema = `
CREATE TABLE IF NOT EXISTS imports (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	dataset_id TEXT NOT NULL,
	dataset_name TEXT NOT NULL,
	source TEXT NOT NULL,
	items INTEGER NOT NULL,
	skipped INTEGER NOT NULL,
	created_at TEXT NOT NULL
);
`

// DefaultPath returns the default history database location.
func DefaultPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "share", "refwire", "history.db")
	}
	return filepath.Join(".", "refwire-history.db")
}

// Open opens or creates the history database.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record appends one entry. CreatedAt defaults to now when zero.
func (s *Store) Record(e Entry) error {
	createdAt := e.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := s.db.Exec(
		`INSERT INTO imports (dataset_id, dataset_name, source, items, skipped, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.DatasetID, e.DatasetName, e.Source, e.Items, e.Skipped,
		createdAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to record import: %w", err)
	}
	return nil
}

// List returns entries newest first, up to limit (0 means all).
func (s *Store) List(limit int) ([]Entry, error) {
	query := `SELECT id, dataset_id, dataset_name, source, items, skipped, created_at
	          FROM imports ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var createdAt string
		if err := rows.Scan(&e.ID, &e.DatasetID, &e.DatasetName, &e.Source, &e.Items, &e.Skipped, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Clear deletes all entries.
func (s *Store) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM imports`); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}
