// Package sqlite persists the key-value store in a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"taskflow/internal/errors"
	"taskflow/internal/repository"
	"taskflow/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// Options tunes a repository. Zero timeouts disable the bound.
type Options struct {
	QueryTimeout   time.Duration
	WriteTimeout   time.Duration
	DirPermissions os.FileMode
}

// DefaultOptions returns the timeouts used by New.
func DefaultOptions() Options {
	return Options{
		QueryTimeout:   5 * time.Second,
		WriteTimeout:   10 * time.Second,
		DirPermissions: 0o755,
	}
}

// SQLiteRepository implements repository.KeyValueStore over the kv_store table.
type SQLiteRepository struct {
	db   *sql.DB
	opts Options
	now  func() time.Time
}

var _ repository.KeyValueStore = (*SQLiteRepository)(nil)

// New creates a new SQLite repository instance
func New(dbPath string) (*SQLiteRepository, error) {
	return NewWithOptions(dbPath, DefaultOptions())
}

// NewWithOptions opens dbPath, creating its directory when needed, and runs
// pending migrations.
func NewWithOptions(dbPath string, opts Options) (*SQLiteRepository, error) {
	if opts.DirPermissions == 0 {
		opts.DirPermissions = 0o755
	}
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, opts.DirPermissions); err != nil {
			return nil, errors.NewStorageError("create database directory", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewStorageError("open database", err)
	}
	// Serialise access; SQLite allows a single writer anyway.
	db.SetMaxOpenConns(1)

	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, errors.NewStorageError("run migrations", err)
	}

	return &SQLiteRepository{db: db, opts: opts, now: time.Now}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// Get returns the value stored under key.
func (r *SQLiteRepository) Get(ctx context.Context, key string) (string, bool, error) {
	ctx, cancel := withTimeout(ctx, r.opts.QueryTimeout)
	defer cancel()

	query := `SELECT key, value, updated_at FROM kv_store WHERE key = ?`
	entry, err := QuerySingle(ctx, r.db, query, ScanEntry, "key", key, key)
	if err != nil {
		if errors.IsNotFound(err) {
			return "", false, nil
		}
		return "", false, err
	}
	return entry.Value, true, nil
}

// Set stores value under key, replacing any previous value.
func (r *SQLiteRepository) Set(ctx context.Context, key, value string) error {
	ctx, cancel := withTimeout(ctx, r.opts.WriteTimeout)
	defer cancel()

	query := `
	INSERT INTO kv_store (key, value, updated_at)
	VALUES (?, ?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

	return Execute(ctx, r.db, "set "+key, query, key, value, r.now().UTC().Format(time.RFC3339Nano))
}

// Delete removes key. Deleting a missing key is not an error.
func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	ctx, cancel := withTimeout(ctx, r.opts.WriteTimeout)
	defer cancel()

	return Execute(ctx, r.db, "delete "+key, `DELETE FROM kv_store WHERE key = ?`, key)
}

// Keys lists stored keys in ascending order.
func (r *SQLiteRepository) Keys(ctx context.Context) ([]string, error) {
	ctx, cancel := withTimeout(ctx, r.opts.QueryTimeout)
	defer cancel()

	rows, err := QueryMultiple(ctx, r.db, `SELECT key FROM kv_store ORDER BY key ASC`, ScanKeys, "keys")
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(rows))
	for _, key := range rows {
		keys = append(keys, *key)
	}
	return keys, nil
}
