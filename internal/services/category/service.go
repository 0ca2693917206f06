package category

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/thenoetrevino/trtodo/internal/models"
	"github.com/thenoetrevino/trtodo/internal/storage"
)

// Service defines all category-related business operations
type Service interface {
	// Read operations
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategoryByName(ctx context.Context, name string) (*models.Category, error)
	CurrentCategory(ctx context.Context) (*models.Category, error)

	// Write operations
	CreateCategory(ctx context.Context, req CreateCategoryRequest) (*models.Category, error)
	RenameCategory(ctx context.Context, id int, name string) error
	DeleteCategory(ctx context.Context, id int, reassignTo *int) (int, error)

	// Category context
	UseCategory(ctx context.Context, id int) error
	ClearCurrentCategory(ctx context.Context) error

	// First run
	SeedDefaults(ctx context.Context) (bool, error)
}

// DefaultCategories are created in a store that holds no data yet
var DefaultCategories = []CreateCategoryRequest{
	{Name: "Home", Description: "Home tasks"},
	{Name: "Work", Description: "Work tasks"},
}

// CreateCategoryRequest encapsulates all data needed to create a category
type CreateCategoryRequest struct {
	Name        string
	Description string
}

// service implements Service interface
type service struct {
	store  storage.Storage
	logger *slog.Logger
}

// NewService creates a new category service
func NewService(store storage.Storage, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{store: store, logger: logger}
}

// CreateCategory validates the name and stores a new category
func (s *service) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*models.Category, error) {
	name := strings.TrimSpace(req.Name)
	c, err := models.NewCategory(name, req.Description)
	if err != nil {
		return nil, ErrEmptyName
	}

	id, err := storage.AddCategory(ctx, s.store, *c)
	if storage.IsDuplicateCategory(err) {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateCategory, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	c.ID = id

	s.logger.Debug("category created", "id", id, "name", name)
	return c, nil
}

func (s *service) ListCategories(ctx context.Context) ([]models.Category, error) {
	return storage.AllCategories(ctx, s.store)
}

// GetCategoryByName matches ignoring case
func (s *service) GetCategoryByName(ctx context.Context, name string) (*models.Category, error) {
	c, ok, err := storage.GetCategoryByName(ctx, s.store, strings.TrimSpace(name))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCategoryNotFound, name)
	}
	return &c, nil
}

func (s *service) RenameCategory(ctx context.Context, id int, name string) error {
	if id <= 0 {
		return ErrInvalidCategoryID
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}

	c, ok, err := storage.GetCategory(ctx, s.store, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCategoryNotFound
	}
	oldName := c.Name
	if err := c.UpdateName(name); err != nil {
		return ErrEmptyName
	}

	err = storage.UpdateCategory(ctx, s.store, c)
	if storage.IsDuplicateCategory(err) {
		return fmt.Errorf("%w: %s", ErrDuplicateCategory, name)
	}
	if err != nil {
		return err
	}

	// keep the default category pointing at the renamed one
	return storage.UpdateSettings(ctx, s.store, func(cfg *models.Settings) error {
		if cfg.DefaultCategory != "" && strings.EqualFold(cfg.DefaultCategory, oldName) {
			cfg.DefaultCategory = name
		}
		return nil
	})
}

// DeleteCategory removes a category after moving its tasks to reassignTo, or
// to the uncategorized sentinel when reassignTo is nil. Everything happens in
// one save. Returns how many tasks were moved.
func (s *service) DeleteCategory(ctx context.Context, id int, reassignTo *int) (int, error) {
	if id <= 0 {
		return 0, ErrInvalidCategoryID
	}

	snap, err := s.store.Load(ctx)
	if err != nil {
		return 0, err
	}
	deleted := snap.FindCategory(id)
	if deleted == nil {
		return 0, ErrCategoryNotFound
	}
	if deleted.SameName(snap.Config.DefaultCategory) {
		snap.Config.DefaultCategory = ""
	}

	target := models.UncategorizedID
	if reassignTo != nil {
		if *reassignTo == id {
			return 0, ErrSameTarget
		}
		if snap.FindCategory(*reassignTo) == nil {
			return 0, fmt.Errorf("%w: %d", ErrTargetNotFound, *reassignTo)
		}
		target = *reassignTo
	}

	moved := 0
	for i := range snap.Tasks {
		if snap.Tasks[i].CategoryID == id {
			snap.Tasks[i].MoveToCategory(target)
			moved++
		}
	}

	kept := snap.Categories[:0]
	for _, c := range snap.Categories {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	snap.Categories = kept

	if snap.CurrentCategory != nil && *snap.CurrentCategory == id {
		snap.CurrentCategory = nil
	}

	if err := s.store.Save(ctx, snap); err != nil {
		return 0, fmt.Errorf("failed to delete category: %w", err)
	}

	s.logger.Debug("category deleted", "id", id, "tasks_moved", moved, "target", target)
	return moved, nil
}

// UseCategory makes id the current category for new tasks
func (s *service) UseCategory(ctx context.Context, id int) error {
	if id <= 0 {
		return ErrInvalidCategoryID
	}
	err := storage.SetCurrentCategory(ctx, s.store, &id)
	if storage.IsNotFound(err) {
		return ErrCategoryNotFound
	}
	return err
}

func (s *service) ClearCurrentCategory(ctx context.Context) error {
	return storage.SetCurrentCategory(ctx, s.store, nil)
}

// CurrentCategory returns nil when no category is in use
func (s *service) CurrentCategory(ctx context.Context) (*models.Category, error) {
	snap, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if snap.CurrentCategory == nil {
		return nil, nil
	}
	c := snap.FindCategory(*snap.CurrentCategory)
	if c == nil {
		return nil, nil
	}
	out := *c
	return &out, nil
}

// SeedDefaults adds DefaultCategories when the store has neither categories
// nor tasks. Reports whether anything was added.
func (s *service) SeedDefaults(ctx context.Context) (bool, error) {
	snap, err := s.store.Load(ctx)
	if err != nil {
		return false, err
	}
	if len(snap.Categories) > 0 || len(snap.Tasks) > 0 {
		return false, nil
	}

	for i, req := range DefaultCategories {
		c, err := models.NewCategory(req.Name, req.Description)
		if err != nil {
			return false, err
		}
		c.ID = i + 1
		c.Order = i
		snap.Categories = append(snap.Categories, *c)
	}
	if err := s.store.Save(ctx, snap); err != nil {
		return false, fmt.Errorf("failed to seed default categories: %w", err)
	}

	s.logger.Debug("default categories created", "count", len(DefaultCategories))
	return true, nil
}
