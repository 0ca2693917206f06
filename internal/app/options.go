package app

import (
	"log/slog"

	"github.com/thenoetrevino/trtodo/internal/storage"
)

// Option is a functional option for configuring App initialization
type Option func(*appConfig)

// appConfig holds the configuration for App initialization
type appConfig struct {
	store  storage.Storage
	logger *slog.Logger
}

// WithStorage uses an already opened backend instead of the configured one
func WithStorage(s storage.Storage) Option {
	return func(cfg *appConfig) {
		cfg.store = s
	}
}

// WithLogger sets the logger for the application
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *appConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}
