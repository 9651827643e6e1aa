// Package sqlite implements a backend.Store backed by a SQLite database.
// It keeps the same full-state Load/Save contract as the flat-file store:
// Save replaces the whole table in one transaction, so checklist semantics
// do not depend on which backend is configured.
package sqlite

import (
	"context"
	"database/sql"

	_ "modernc.org/sqlite"

	"checklist/backend"
)

// Store implements backend.Store using SQLite
type Store struct {
	db *sql.DB
}

// New opens (or creates) the database at path and initializes the schema.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// initSchema creates the tasks table if it doesn't exist. The position
// column records insertion order, which is also display order.
func (s *Store) initSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS tasks (
			position INTEGER PRIMARY KEY,
			id INTEGER NOT NULL,
			done INTEGER NOT NULL DEFAULT 0,
			text TEXT NOT NULL DEFAULT ''
		);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Load reads all tasks ordered by position.
func (s *Store) Load(ctx context.Context) ([]backend.Task, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, done, text FROM tasks ORDER BY position")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	tasks := []backend.Task{}
	for rows.Next() {
		var t backend.Task
		var done int
		if err := rows.Scan(&t.ID, &done, &t.Text); err != nil {
			return nil, err
		}
		t.Done = done != 0
		tasks = append(tasks, t)
	}

	return tasks, rows.Err()
}

// Save replaces the stored tasks with the given slice, preserving order.
func (s *Store) Save(ctx context.Context, tasks []backend.Task) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM tasks"); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO tasks (position, id, done, text) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	for i, t := range tasks {
		done := 0
		if t.Done {
			done = 1
		}
		if _, err := stmt.ExecContext(ctx, i, t.ID, done, t.Text); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Verify interface compliance at compile time
var _ backend.Store = (*Store)(nil)
