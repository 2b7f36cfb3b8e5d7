// Package sqlite is the single-file production store, backed by mattn's
// sqlite3 driver with WAL journaling and foreign keys enabled.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// day is the storage format for all ledger dates. Storing dates as ISO text
// keeps SQL range comparisons correct with plain string ordering.
const day = "2006-01-02"

// Store implements storage.Store on a SQLite file.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (creating if necessary) the ledger file at path and ensures
// the schema exists.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create ledger directory: %w", err)
	}

	connStr := fmt.Sprintf("file:%s?_foreign_keys=on&_journal_mode=WAL", path)
	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open ledger: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the ledger file path.
func (s *Store) Path() string {
	return s.path
}

// transact runs fn inside a transaction, rolling back on error or panic.
func (s *Store) transact(fn func(*sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("transaction error: %v, rollback error: %w", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// dayText renders a date for storage; the zero time becomes the empty
// string, which sorts before every real date.
func dayText(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(day)
}

// parseDay is the inverse of dayText.
func parseDay(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.ParseInLocation(day, s, time.UTC)
}
