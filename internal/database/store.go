package database

import (
	"context"
	"database/sql"
	"log/slog"
	"sync"

	"github.com/thenoetrevino/trtodo/internal/models"
	"github.com/thenoetrevino/trtodo/internal/storage"
)

// Store implements storage.Storage on SQLite
type Store struct {
	mu         sync.Mutex
	db         *sql.DB
	conn       *sql.Conn
	path       string
	migrations []Migration

	// set when a call panics while holding mu; every later call fails
	poisoned bool
	closed   bool
}

var _ storage.Storage = (*Store)(nil)

func (s *Store) Path() string {
	return s.path
}

// locked runs fn while holding the connection lock
func (s *Store) locked(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.poisoned {
		return storage.StorageError("failed to lock connection: poisoned by an earlier panic")
	}
	if s.closed {
		return storage.StorageError("failed to lock connection: database is closed")
	}

	defer func() {
		if r := recover(); r != nil {
			s.poisoned = true
			panic(r)
		}
	}()
	return fn()
}

// Load reads the full snapshot. An empty database loads as the default snapshot.
func (s *Store) Load(ctx context.Context) (*models.Snapshot, error) {
	var snap *models.Snapshot
	err := s.locked(func() error {
		var err error
		snap, err = s.load(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	if err := storage.Validate(snap); err != nil {
		return nil, err
	}
	return snap, nil
}

func (s *Store) load(ctx context.Context) (*models.Snapshot, error) {
	snap := models.NewSnapshot()

	// rolled back below the first migration
	if ok, err := hasTable(ctx, s.conn, "categories"); err != nil || !ok {
		return snap, err
	}

	categories, err := readCategories(ctx, s.conn)
	if err != nil {
		return nil, err
	}
	tasks, err := readTasks(ctx, s.conn)
	if err != nil {
		return nil, err
	}
	settings, err := readKeyValues(ctx, s.conn, "settings")
	if err != nil {
		return nil, err
	}
	meta, err := readKeyValues(ctx, s.conn, "snapshot_meta")
	if err != nil {
		return nil, err
	}

	snap.Categories = categories
	snap.Tasks = tasks
	if snap.Config, err = settingsFromValues(settings); err != nil {
		return nil, err
	}
	if err := applyMeta(snap, meta); err != nil {
		return nil, err
	}
	return snap, nil
}

// Save validates snap and replaces every stored row in one transaction
func (s *Store) Save(ctx context.Context, snap *models.Snapshot) error {
	if err := storage.Validate(snap); err != nil {
		return err
	}
	return s.locked(func() error {
		err := withTx(ctx, s.conn, func(tx *sql.Tx) error {
			return replaceAll(ctx, tx, snap)
		})
		if err != nil {
			return storage.WrapStorage(err, "save snapshot")
		}
		slog.Debug("snapshot saved",
			"backend", "sqlite",
			"tasks", len(snap.Tasks),
			"categories", len(snap.Categories))
		return nil
	})
}

// SchemaVersion returns the stored schema version
func (s *Store) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	err := s.locked(func() error {
		var err error
		if version, err = CurrentVersion(ctx, s.conn); err != nil {
			return storage.WrapStorage(err, "read schema version")
		}
		return nil
	})
	return version, err
}

// Migrate applies pending migrations and returns how many ran
func (s *Store) Migrate(ctx context.Context) (int, error) {
	var applied int
	err := s.locked(func() error {
		var err error
		if applied, err = ApplyMigrations(ctx, s.conn, s.migrations); err != nil {
			return storage.WrapStorage(err, "apply migrations")
		}
		return nil
	})
	return applied, err
}

// Rollback undoes migrations down to target and returns how many were undone.
// Below version 1 the store loads as the empty snapshot and Save fails
// until Migrate runs again.
func (s *Store) Rollback(ctx context.Context, target int) (int, error) {
	var undone int
	err := s.locked(func() error {
		var err error
		if undone, err = RollbackMigrations(ctx, s.conn, s.migrations, target); err != nil {
			return storage.WrapStorage(err, "roll back to version %d", target)
		}
		return nil
	})
	return undone, err
}

// LatestVersion is the newest version this store knows about
func (s *Store) LatestVersion() int {
	return LatestVersion(s.migrations)
}

// Close releases the connection. Later calls fail with a Storage error.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	connErr := s.conn.Close()
	dbErr := s.db.Close()
	if connErr != nil {
		return connErr
	}
	return dbErr
}
