// Package sqlite stores users, tasks and time entries in an embedded SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"timetracker/internal/errors"
	"timetracker/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

const memoryPath = ":memory:"

// Options tunes how the database is opened.
type Options struct {
	BusyTimeout    time.Duration
	DirPermissions os.FileMode
}

// DefaultOptions returns the options used by New.
func DefaultOptions() Options {
	return Options{
		BusyTimeout:    5 * time.Second,
		DirPermissions: 0o755,
	}
}

// SQLiteRepository is the persistent store for the tracker.
type SQLiteRepository struct {
	db  *sql.DB
	now func() time.Time
}

// New opens dbPath with default options. ":memory:" gives a private in-memory database.
func New(dbPath string) (*SQLiteRepository, error) {
	return Open(context.Background(), dbPath, DefaultOptions())
}

// Open opens the database at dbPath, creating its directory if needed, and
// applies pending migrations.
func Open(ctx context.Context, dbPath string, opts Options) (*SQLiteRepository, error) {
	if dbPath != memoryPath {
		if err := os.MkdirAll(filepath.Dir(dbPath), opts.DirPermissions); err != nil {
			return nil, errors.NewDatabaseError("create database directory", err)
		}
	}

	db, err := sql.Open("sqlite", buildDSN(dbPath, opts))
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}

	// Every connection to :memory: is a separate database.
	if dbPath == memoryPath {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, HandleDatabaseError("open database", err)
	}

	if _, err := migrations.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, HandleDatabaseError("run migrations", err)
	}

	return &SQLiteRepository{db: db, now: time.Now}, nil
}

// buildDSN enables foreign keys, sets the busy timeout and makes every
// transaction take the write lock up front so concurrent writers queue
// instead of failing on upgrade.
func buildDSN(dbPath string, opts Options) string {
	params := []string{
		"_pragma=foreign_keys(1)",
		fmt.Sprintf("_pragma=busy_timeout(%d)", opts.BusyTimeout.Milliseconds()),
		"_txlock=immediate",
	}
	if dbPath != memoryPath {
		params = append(params, "_pragma=journal_mode(WAL)")
	}
	return dbPath + "?" + strings.Join(params, "&")
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// Shutdown lets the DI container close the repository.
func (r *SQLiteRepository) Shutdown() error {
	return r.Close()
}

// withTx runs fn in a transaction, committing on success and rolling back otherwise.
func (r *SQLiteRepository) withTx(ctx context.Context, operation string, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return HandleDatabaseError("begin "+operation, err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return HandleDatabaseError("commit "+operation, err)
	}
	return nil
}
