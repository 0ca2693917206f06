// Package database is the SQLite backend for trtodo.
//
// The store pins a single connection and serializes every call on it with
// one mutex, so loads, saves and migration batches never interleave. Each
// save replaces the whole snapshot inside one transaction.
//
// A saved snapshot loads back field for field, with one caveat: timestamps
// are stored as UTC text and always come back in time.UTC. A due date saved
// in another zone is the same instant (time.Time.Equal) after a round trip,
// but not reflect.DeepEqual to the value that was saved.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database
const MemoryPath = ":memory:"

const defaultBusyTimeoutMS = 5000

type openConfig struct {
	migrations    []Migration
	busyTimeoutMS int
}

// Option configures Open
type Option func(*openConfig)

// WithMigrations replaces the schema history applied at open
func WithMigrations(list []Migration) Option {
	return func(c *openConfig) {
		c.migrations = list
	}
}

// WithBusyTimeout sets how long SQLite waits on a locked database file
func WithBusyTimeout(ms int) Option {
	return func(c *openConfig) {
		c.busyTimeoutMS = ms
	}
}

// Open opens (creating if needed) the database at path, pins one connection,
// turns on foreign keys and applies pending migrations.
func Open(ctx context.Context, path string, opts ...Option) (*Store, error) {
	cfg := openConfig{
		migrations:    Migrations,
		busyTimeoutMS: defaultBusyTimeoutMS,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite benefits from a single writer connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	conn, err := db.Conn(ctx)
	if err != nil {
		closeDB(db)
		return nil, fmt.Errorf("failed to acquire connection: %w", err)
	}

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		fmt.Sprintf("PRAGMA busy_timeout = %d", cfg.busyTimeoutMS),
	}
	for _, p := range pragmas {
		if _, err := conn.ExecContext(ctx, p); err != nil {
			slog.Error("Failed to apply pragma", "pragma", p, "error", err)
			_ = conn.Close()
			closeDB(db)
			return nil, fmt.Errorf("failed to apply %q: %w", p, err)
		}
	}

	s := &Store{db: db, conn: conn, path: path, migrations: cfg.migrations}
	if _, err := s.Migrate(ctx); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	slog.Debug("database opened", "path", path)
	return s, nil
}

func closeDB(db *sql.DB) {
	if err := db.Close(); err != nil {
		slog.Error("error closing db", "error", err)
	}
}
