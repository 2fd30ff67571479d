// Package storage persists the petty-cash records in SQLite. Amounts are
// stored as canonical decimal strings and dates as ISO text; all aggregation
// happens in Go over fetched rows, so the SQL here stays plain row plumbing.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

var (
	// ErrNotFound means an update or delete targeted a missing id.
	ErrNotFound = errors.New("record not found")
	// ErrReferenced means a delete was blocked because expenses still
	// reference the record.
	ErrReferenced = errors.New("record is referenced by expenses")
	// ErrDuplicate means a uniqueness rule was violated (category name,
	// subcategory name within category, active period per month).
	ErrDuplicate = errors.New("duplicate record")
)

type Repository struct {
	db *sql.DB
}

func NewRepository(dbPath string) (*Repository, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// translateConstraint maps sqlite constraint failures to the repository's
// sentinel errors so callers can show a friendly message.
func translateConstraint(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return fmt.Errorf("%w: %v", ErrReferenced, err)
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	return err
}
