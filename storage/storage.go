// Package storage provides SQLite persistence for orgs, projects and tasks.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ErrNotFound is returned when a row is absent or outside the caller's org.
var ErrNotFound = errors.New("not found")

// ConflictError wraps a constraint violation so handlers can surface it as a
// write conflict instead of a server error.
type ConflictError struct {
	err error
}

// NewConflictError wraps err as a write conflict.
func NewConflictError(err error) *ConflictError { return &ConflictError{err: err} }

func (e *ConflictError) Error() string { return "write conflict: " + e.err.Error() }

func (e *ConflictError) Unwrap() error { return e.err }

// Detail returns the underlying constraint message.
func (e *ConflictError) Detail() string { return e.err.Error() }

// Store wraps the single shared database handle. All methods are safe for
// concurrent use; SQLite serializes writes behind one connection.
type Store struct {
	db *sql.DB
}

// New opens (creating if needed) the SQLite database at path, enables
// foreign-key enforcement and runs migrations. Use ":memory:" for an
// ephemeral database.
func New(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Single writer connection keeps the pragmas effective and avoids
	// SQLITE_BUSY under concurrent handlers. Limit the pool before the
	// pragmas run so they land on the connection that survives.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	// SQLite keeps foreign keys off per connection, so this has to run
	// before any writes. CASCADE deletes depend on it.
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			if closeErr := db.Close(); closeErr != nil {
				return nil, errors.Join(err, closeErr)
			}
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}

	if err := db.PingContext(ctx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, errors.Join(err, closeErr)
		}
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	if err := migrate(ctx, db); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, errors.Join(err, closeErr)
		}
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// wrapWrite converts constraint violations into ConflictError and passes
// everything else through.
func wrapWrite(err error) error {
	if err == nil {
		return nil
	}
	var se *sqlite.Error
	if errors.As(err, &se) && se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
		return &ConflictError{err: err}
	}
	return err
}
