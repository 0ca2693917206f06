package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/thenoetrevino/trtodo/internal/config"
	"github.com/thenoetrevino/trtodo/internal/database"
	categoryservice "github.com/thenoetrevino/trtodo/internal/services/category"
	settingsservice "github.com/thenoetrevino/trtodo/internal/services/settings"
	taskservice "github.com/thenoetrevino/trtodo/internal/services/task"
	"github.com/thenoetrevino/trtodo/internal/storage"
	"github.com/thenoetrevino/trtodo/internal/storage/filestore"
)

// App holds all application services and provides dependency injection.
// This is the main application container that manages service lifecycles.
type App struct {
	// Storage layer (whole-snapshot persistence)
	Storage storage.Storage

	// Service layer (business logic)
	TaskService     taskservice.Service
	CategoryService categoryservice.Service
	SettingsService settingsservice.Service

	logger *slog.Logger
}

// New opens the configured backend and wires every service on top of it.
// WithStorage skips opening a backend.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	o := &appConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(o)
	}

	store := o.store
	if store == nil {
		if cfg == nil {
			cfg = config.Default()
		}
		var err error
		store, err = OpenStorage(ctx, cfg.Storage)
		if err != nil {
			return nil, err
		}
	}

	return &App{
		Storage:         store,
		TaskService:     taskservice.NewService(store, o.logger),
		CategoryService: categoryservice.NewService(store, o.logger),
		SettingsService: settingsservice.NewService(store, o.logger),
		logger:          o.logger,
	}, nil
}

// OpenStorage picks the backend named by cfg.Type. The file backend is
// chosen for json; a .yaml or .yml path makes it write YAML instead.
func OpenStorage(ctx context.Context, cfg config.StorageConfig) (storage.Storage, error) {
	kind, err := config.ParseStorageKind(cfg.Type)
	if err != nil {
		return nil, err
	}
	path, err := config.ExpandPath(cfg.Path)
	if err != nil {
		return nil, err
	}
	if path == "" {
		path = config.DefaultStoragePath(kind)
	}

	switch kind {
	case config.KindSQLite:
		db, err := database.Open(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite storage: %w", err)
		}
		slog.Debug("storage opened", "backend", "sqlite", "path", path)
		return db, nil
	default:
		slog.Debug("storage opened", "backend", "file", "path", path)
		return filestore.New(path), nil
	}
}

// Close releases the storage backend when it holds resources
func (a *App) Close() error {
	if err := storage.Close(a.Storage); err != nil {
		a.logger.Error("failed to close storage", "error", err)
		return err
	}
	return nil
}
