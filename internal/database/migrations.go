package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
)

// InitialVersion is the schema version of a database no migration has touched
const InitialVersion = 0

// Migration is one versioned schema change. Down must exactly undo Up, and
// both must be safe to run twice.
type Migration struct {
	Version     int
	Description string
	Up          string
	Down        string
}

// Migrations is the schema history, oldest first
var Migrations = []Migration{
	{
		Version:     1,
		Description: "create categories and tasks",
		Up: `
			CREATE TABLE IF NOT EXISTS categories (
				id INTEGER PRIMARY KEY,
				name TEXT NOT NULL,
				description TEXT,
				"order" INTEGER NOT NULL DEFAULT 0,
				created_at TEXT NOT NULL
			);
			CREATE TABLE IF NOT EXISTS tasks (
				id INTEGER PRIMARY KEY,
				title TEXT NOT NULL,
				description TEXT,
				category_id INTEGER REFERENCES categories(id),
				completed INTEGER NOT NULL DEFAULT 0,
				priority TEXT NOT NULL,
				due_date TEXT,
				"order" INTEGER NOT NULL DEFAULT 0,
				created_at TEXT NOT NULL,
				updated_at TEXT NOT NULL
			);`,
		Down: `
			DROP TABLE IF EXISTS tasks;
			DROP TABLE IF EXISTS categories;`,
	},
	{
		Version:     2,
		Description: "create settings",
		Up: `
			CREATE TABLE IF NOT EXISTS settings (
				key TEXT PRIMARY KEY,
				value TEXT NOT NULL
			);`,
		Down: `DROP TABLE IF EXISTS settings;`,
	},
	{
		Version:     3,
		Description: "create snapshot_meta",
		Up: `
			CREATE TABLE IF NOT EXISTS snapshot_meta (
				key TEXT PRIMARY KEY,
				value TEXT NOT NULL
			);`,
		Down: `DROP TABLE IF EXISTS snapshot_meta;`,
	},
	{
		Version:     4,
		Description: "index tasks by category",
		Up:          `CREATE INDEX IF NOT EXISTS idx_tasks_category ON tasks(category_id, "order");`,
		Down:        `DROP INDEX IF EXISTS idx_tasks_category;`,
	},
	{
		Version:     5,
		Description: "unique category names ignoring case",
		Up:          `CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_name ON categories(name COLLATE NOCASE);`,
		Down:        `DROP INDEX IF EXISTS idx_categories_name;`,
	},
}

var errUnsortedMigrations = errors.New("migrations must have strictly increasing versions")

// LatestVersion returns the highest version in list, or InitialVersion
func LatestVersion(list []Migration) int {
	if len(list) == 0 {
		return InitialVersion
	}
	return list[len(list)-1].Version
}

func checkOrder(list []Migration) error {
	prev := InitialVersion
	for _, m := range list {
		if m.Version <= prev {
			return fmt.Errorf("%w: version %d follows %d", errUnsortedMigrations, m.Version, prev)
		}
		prev = m.Version
	}
	return nil
}

// querier is satisfied by *sql.Conn and *sql.Tx
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// ensureVersionTable creates schema_version and seeds it when empty
func ensureVersionTable(ctx context.Context, q querier) error {
	if _, err := q.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)`); err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	var count int
	if err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM schema_version`).Scan(&count); err != nil {
		return fmt.Errorf("failed to read schema_version: %w", err)
	}
	if count > 0 {
		return nil
	}

	if _, err := q.ExecContext(ctx, `INSERT INTO schema_version (version) VALUES (?)`, InitialVersion); err != nil {
		return fmt.Errorf("failed to seed schema_version: %w", err)
	}
	return nil
}

// CurrentVersion reads the stored schema version
func CurrentVersion(ctx context.Context, q querier) (int, error) {
	var version int
	if err := q.QueryRowContext(ctx, `SELECT version FROM schema_version`).Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get schema version: %w", err)
	}
	return version, nil
}

func setVersion(ctx context.Context, q querier, version int) error {
	if _, err := q.ExecContext(ctx, `UPDATE schema_version SET version = ?`, version); err != nil {
		return fmt.Errorf("failed to update schema version to %d: %w", version, err)
	}
	return nil
}

// ApplyMigrations runs every migration newer than the stored version, oldest
// first, in a single transaction. A failure rolls back the whole batch and
// leaves the stored version unchanged. Returns how many migrations ran.
func ApplyMigrations(ctx context.Context, conn txBeginner, list []Migration) (int, error) {
	if err := checkOrder(list); err != nil {
		return 0, err
	}

	applied := 0
	err := withTx(ctx, conn, func(tx *sql.Tx) error {
		if err := ensureVersionTable(ctx, tx); err != nil {
			return err
		}
		current, err := CurrentVersion(ctx, tx)
		if err != nil {
			return err
		}

		for _, m := range list {
			if m.Version <= current {
				continue
			}
			if _, err := tx.ExecContext(ctx, m.Up); err != nil {
				return fmt.Errorf("failed to apply migration %d (%s): %w", m.Version, m.Description, err)
			}
			if err := setVersion(ctx, tx, m.Version); err != nil {
				return err
			}
			slog.Debug("migration applied", "version", m.Version, "description", m.Description)
			applied++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return applied, nil
}

// RollbackMigrations undoes every migration above target, newest first, in a
// single transaction. The stored version steps down to Version-1 after each.
// Returns how many migrations were undone.
func RollbackMigrations(ctx context.Context, conn txBeginner, list []Migration, target int) (int, error) {
	if err := checkOrder(list); err != nil {
		return 0, err
	}
	if target < InitialVersion {
		return 0, fmt.Errorf("invalid rollback target %d", target)
	}

	undone := 0
	err := withTx(ctx, conn, func(tx *sql.Tx) error {
		if err := ensureVersionTable(ctx, tx); err != nil {
			return err
		}
		current, err := CurrentVersion(ctx, tx)
		if err != nil {
			return err
		}

		for i := len(list) - 1; i >= 0; i-- {
			m := list[i]
			if m.Version <= target || m.Version > current {
				continue
			}
			if _, err := tx.ExecContext(ctx, m.Down); err != nil {
				return fmt.Errorf("failed to roll back migration %d (%s): %w", m.Version, m.Description, err)
			}
			if err := setVersion(ctx, tx, m.Version-1); err != nil {
				return err
			}
			slog.Debug("migration rolled back", "version", m.Version)
			undone++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return undone, nil
}
