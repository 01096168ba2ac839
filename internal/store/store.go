package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"steamsync/internal/config"
)

// Store manages catalog persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the catalog database.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	return OpenPath(cfg.DatabasePath())
}

// OpenPath opens the database at an explicit location.
func OpenPath(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// dbtx is satisfied by both *sql.DB and *sql.Tx so helpers can run inside or
// outside an explicit transaction.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// getOrCreate resolves a row by its natural key, inserting it when absent,
// and returns the surrogate primary key. The read and the conditional write
// run on the same handle, so callers wanting race safety pass a transaction.
func getOrCreate(ctx context.Context, q dbtx, table string, keys map[string]any, extra map[string]any) (int64, bool, error) {
	whereSQL, whereArgs := buildClause(keys, " AND ")

	var pk int64
	err := q.QueryRowContext(ctx, "SELECT pk FROM "+table+" WHERE "+whereSQL, whereArgs...).Scan(&pk)
	switch {
	case err == nil:
		return pk, false, nil
	case !errors.Is(err, sql.ErrNoRows):
		return 0, false, fmt.Errorf("select %s: %w", table, err)
	}

	cols := make([]string, 0, len(keys)+len(extra))
	args := make([]any, 0, len(keys)+len(extra))
	for _, kv := range []map[string]any{keys, extra} {
		colsPart, argsPart := sortedPairs(kv)
		cols = append(cols, colsPart...)
		args = append(args, argsPart...)
	}

	insertSQL := "INSERT INTO " + table + " (" + joinColumns(cols) + ") VALUES (" + placeholders(len(cols)) + ")"
	res, err := q.ExecContext(ctx, insertSQL, args...)
	if err != nil {
		return 0, false, fmt.Errorf("insert %s: %w", table, err)
	}
	pk, err = res.LastInsertId()
	if err != nil {
		return 0, false, fmt.Errorf("last insert id: %w", err)
	}
	return pk, true, nil
}
