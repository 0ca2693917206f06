// Package settings reads and changes the preferences stored with the data:
// how long soft-deleted tasks are kept, and the category and priority new
// tasks get when none is given.
package settings

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/thenoetrevino/trtodo/internal/models"
	"github.com/thenoetrevino/trtodo/internal/storage"
)

const (
	KeyDeletedTaskLifespan = "deleted-task-lifespan"
	KeyDefaultCategory     = "default-category"
	KeyDefaultPriority     = "default-priority"
)

// Keys lists every setting in a stable order
func Keys() []string {
	return []string{KeyDeletedTaskLifespan, KeyDefaultCategory, KeyDefaultPriority}
}

// IsKey reports whether key names a stored setting
func IsKey(key string) bool {
	return slices.Contains(Keys(), key)
}

// Entry is one setting as shown to the user
type Entry struct {
	Key     string `json:"key"`
	Value   string `json:"value"`
	Default bool   `json:"default"` // not set; Value is the built-in default
}

// Service defines the settings operations
type Service interface {
	Get(ctx context.Context, key string) (Entry, error)
	List(ctx context.Context) ([]Entry, error)
	Set(ctx context.Context, key, value string) error
	Unset(ctx context.Context, key string) error
}

type service struct {
	store  storage.Storage
	logger *slog.Logger
}

// NewService creates a new settings service
func NewService(store storage.Storage, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{store: store, logger: logger}
}

func (s *service) Get(ctx context.Context, key string) (Entry, error) {
	if !IsKey(key) {
		return Entry{}, fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	snap, err := s.store.Load(ctx)
	if err != nil {
		return Entry{}, err
	}
	return entry(snap.Config, key), nil
}

func (s *service) List(ctx context.Context) ([]Entry, error) {
	snap, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(Keys()))
	for _, key := range Keys() {
		entries = append(entries, entry(snap.Config, key))
	}
	return entries, nil
}

// Set validates value for key and stores it. A default category must name
// an existing category; the stored name keeps that category's spelling.
func (s *service) Set(ctx context.Context, key, value string) error {
	value = strings.TrimSpace(value)

	var apply func(*models.Settings)
	switch key {
	case KeyDeletedTaskLifespan:
		days, err := strconv.Atoi(value)
		if err != nil || days < 0 {
			return fmt.Errorf("%w: %q", ErrInvalidLifespan, value)
		}
		apply = func(cfg *models.Settings) { cfg.DeletedTaskLifespan = &days }
	case KeyDefaultPriority:
		p, err := models.ParsePriority(value)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidPriority, value)
		}
		apply = func(cfg *models.Settings) { cfg.DefaultPriority = p }
	case KeyDefaultCategory:
		c, ok, err := storage.GetCategoryByName(ctx, s.store, value)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: %s", ErrCategoryNotFound, value)
		}
		apply = func(cfg *models.Settings) { cfg.DefaultCategory = c.Name }
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}

	err := storage.UpdateSettings(ctx, s.store, func(cfg *models.Settings) error {
		apply(cfg)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save setting: %w", err)
	}
	s.logger.Debug("setting changed", "key", key, "value", value)
	return nil
}

// Unset restores the built-in default for key
func (s *service) Unset(ctx context.Context, key string) error {
	if !IsKey(key) {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	err := storage.UpdateSettings(ctx, s.store, func(cfg *models.Settings) error {
		switch key {
		case KeyDeletedTaskLifespan:
			cfg.DeletedTaskLifespan = nil
		case KeyDefaultCategory:
			cfg.DefaultCategory = ""
		case KeyDefaultPriority:
			cfg.DefaultPriority = ""
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save setting: %w", err)
	}
	s.logger.Debug("setting reset", "key", key)
	return nil
}

// entry reports the effective value: lifespan 0 and priority medium when unset
func entry(cfg models.Settings, key string) Entry {
	e := Entry{Key: key}
	switch key {
	case KeyDeletedTaskLifespan:
		e.Default = cfg.DeletedTaskLifespan == nil
		e.Value = "0"
		if !e.Default {
			e.Value = strconv.Itoa(*cfg.DeletedTaskLifespan)
		}
	case KeyDefaultCategory:
		e.Default = cfg.DefaultCategory == ""
		e.Value = cfg.DefaultCategory
	case KeyDefaultPriority:
		e.Default = cfg.DefaultPriority == ""
		e.Value = models.DefaultPriority.String()
		if !e.Default {
			e.Value = cfg.DefaultPriority.String()
		}
	}
	return e
}
