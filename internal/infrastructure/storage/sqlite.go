package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Storage provides SQLite database access for commit-run records.
// It implements the Repository interface.
type Storage struct {
	db *sql.DB
}

// Compile-time check that Storage implements Repository
var _ Repository = (*Storage)(nil)

// NewStorage creates a new storage instance with SQLite database
func NewStorage(dbPath string) (*Storage, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// Enable foreign key constraints (SQLite-specific)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s := &Storage{db: db}

	if err := s.runMigrations(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	return s.db.Close()
}

// RecordRun inserts or replaces a commit run.
func (s *Storage) RecordRun(run *CommitRun) error {
	query := `
	INSERT OR REPLACE INTO commit_runs
	(id, started_at, finished_at, updated, created, status, error_message)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.Exec(query,
		run.ID,
		run.StartedAt.UTC().Format(time.RFC3339),
		run.FinishedAt.UTC().Format(time.RFC3339),
		run.Updated,
		run.Created,
		run.Status,
		run.ErrorMessage,
	)
	return err
}

// ListRuns returns the most recent commit runs, newest first.
func (s *Storage) ListRuns(limit int) ([]*CommitRun, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
	SELECT id, started_at, finished_at, updated, created, status, error_message
	FROM commit_runs ORDER BY started_at DESC LIMIT ?
	`

	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var runs []*CommitRun
	for rows.Next() {
		run := &CommitRun{}
		var started, finished string
		if err := rows.Scan(&run.ID, &started, &finished, &run.Updated, &run.Created, &run.Status, &run.ErrorMessage); err != nil {
			return nil, err
		}
		run.StartedAt, _ = time.Parse(time.RFC3339, started)
		run.FinishedAt, _ = time.Parse(time.RFC3339, finished)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// RecordCreatedImport records a transaction created in YNAB.
func (s *Storage) RecordCreatedImport(imp *CreatedImport) error {
	query := `
	INSERT OR REPLACE INTO created_imports
	(import_id, run_id, date, amount, payee, synced_at)
	VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.Exec(query,
		imp.ImportID,
		imp.RunID,
		imp.Date,
		imp.Amount,
		imp.Payee,
		imp.SyncedAt.UTC().Format(time.RFC3339),
	)
	return err
}

// HasImport reports whether an import id was already recorded.
func (s *Storage) HasImport(importID string) (bool, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(1) FROM created_imports WHERE import_id = ?", importID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
