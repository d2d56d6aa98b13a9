// Package store persists benchmark reports so runs can be compared over
// time.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Run is one saved benchmark invocation.
type Run struct {
	ID        int64           `json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	Commit    string          `json:"commit,omitempty"`
	Report    json.RawMessage `json:"report"`
}

// Store is the history backend contract.
type Store interface {
	Save(run Run) (int64, error)
	LoadAll() ([]Run, error)
	LoadLatest() (*Run, error)
	Close() error
}

// SQLiteStore implements Store on a local SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the history database at path and
// applies migrations.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at TIMESTAMP NOT NULL,
			commit_hash TEXT,
			report TEXT NOT NULL
		)`)
	return err
}

// Save appends a run and returns its assigned id.
func (s *SQLiteStore) Save(run Run) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO runs (created_at, commit_hash, report) VALUES (?, ?, ?)`,
		run.CreatedAt.UTC().Format(time.RFC3339Nano), run.Commit, string(run.Report),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save run: %w", err)
	}
	return res.LastInsertId()
}

// LoadAll returns every saved run, oldest first.
func (s *SQLiteStore) LoadAll() ([]Run, error) {
	rows, err := s.db.Query(`SELECT id, created_at, commit_hash, report FROM runs ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run       Run
			createdAt string
			report    string
		)
		if err := rows.Scan(&run.ID, &createdAt, &run.Commit, &report); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		ts, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse run timestamp %q: %w", createdAt, err)
		}
		run.CreatedAt = ts
		run.Report = json.RawMessage(report)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// LoadLatest returns the newest run, or nil when the history is empty.
func (s *SQLiteStore) LoadLatest() (*Run, error) {
	runs, err := s.LoadAll()
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[len(runs)-1], nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }
