package task

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/thenoetrevino/trtodo/internal/models"
	"github.com/thenoetrevino/trtodo/internal/storage"
)

// Service defines all task-related business operations
type Service interface {
	// Read operations
	GetTask(ctx context.Context, taskID int) (*models.Task, error)
	ListTasks(ctx context.Context, req ListTasksRequest) ([]models.Task, error)
	SearchTasks(ctx context.Context, query string) ([]models.Task, error)

	// Write operations
	CreateTask(ctx context.Context, req CreateTaskRequest) (*models.Task, error)
	CompleteTask(ctx context.Context, taskID int) error
	ReopenTask(ctx context.Context, taskID int) error
	DeleteTask(ctx context.Context, taskID int, hard bool) error

	// Task movements
	MoveTask(ctx context.Context, taskID int, categoryName string) error

	// Maintenance
	PurgeDeleted(ctx context.Context, days *int) (int, error)
}

// CreateTaskRequest encapsulates all data needed to create a task
type CreateTaskRequest struct {
	Title        string
	Description  string
	CategoryName string // Optional: "" means the current category, then the default one
	Priority     string // Optional: "" means the configured default
	DueDate      *time.Time
}

// ListTasksRequest selects tasks. Zero values match everything.
type ListTasksRequest struct {
	CategoryName   string
	Priority       string
	Completed      *bool
	Query          string
	IncludeDeleted bool // also list soft-deleted tasks when no category is given
}

// service implements Service interface
type service struct {
	store  storage.Storage
	logger *slog.Logger
}

// NewService creates a new task service
func NewService(store storage.Storage, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{store: store, logger: logger}
}

// CreateTask handles task creation with validation and business rules
func (s *service) CreateTask(ctx context.Context, req CreateTaskRequest) (*models.Task, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrEmptyTitle
	}

	snap, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	categoryID, err := resolveCategory(snap, req.CategoryName)
	if err != nil {
		return nil, err
	}
	priority, err := resolvePriority(snap, req.Priority)
	if err != nil {
		return nil, err
	}

	task, err := models.NewTask(title, categoryID, req.Description, priority)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	task.DueDate = req.DueDate
	task.Order = nextOrder(snap, categoryID)

	id, err := storage.AddTask(ctx, s.store, *task)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	task.ID = id

	s.logger.Debug("task created", "id", id, "category_id", categoryID, "priority", priority)
	return task, nil
}

// resolveCategory picks the explicit name, then the current category, then
// the configured default. No match for an explicit name is an error; a stale
// default falls back to uncategorized.
func resolveCategory(snap *models.Snapshot, name string) (int, error) {
	if name = strings.TrimSpace(name); name != "" {
		c := snap.FindCategoryByName(name)
		if c == nil {
			return 0, fmt.Errorf("%w: %s", ErrCategoryNotFound, name)
		}
		return c.ID, nil
	}
	if snap.CurrentCategory != nil && snap.FindCategory(*snap.CurrentCategory) != nil {
		return *snap.CurrentCategory, nil
	}
	if def := snap.Config.DefaultCategory; def != "" {
		if c := snap.FindCategoryByName(def); c != nil {
			return c.ID, nil
		}
	}
	return models.UncategorizedID, nil
}

func resolvePriority(snap *models.Snapshot, raw string) (models.Priority, error) {
	if raw != "" {
		p, err := models.ParsePriority(raw)
		if err != nil {
			return "", ErrInvalidPriority
		}
		return p, nil
	}
	if snap.Config.DefaultPriority.Valid() {
		return snap.Config.DefaultPriority, nil
	}
	return models.DefaultPriority, nil
}

func nextOrder(snap *models.Snapshot, categoryID int) int {
	next := 0
	for _, t := range snap.Tasks {
		if t.CategoryID == categoryID && t.Order >= next {
			next = t.Order + 1
		}
	}
	return next
}

func (s *service) GetTask(ctx context.Context, taskID int) (*models.Task, error) {
	if taskID <= 0 {
		return nil, ErrInvalidTaskID
	}
	t, ok, err := storage.GetTask(ctx, s.store, taskID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrTaskNotFound
	}
	return &t, nil
}

// ListTasks filters tasks. Soft-deleted tasks are hidden unless asked for.
func (s *service) ListTasks(ctx context.Context, req ListTasksRequest) ([]models.Task, error) {
	var filter storage.TaskFilter
	filter.Completed = req.Completed
	filter.Query = req.Query

	if req.Priority != "" {
		p, err := models.ParsePriority(req.Priority)
		if err != nil {
			return nil, ErrInvalidPriority
		}
		filter.Priority = &p
	}

	if req.CategoryName != "" {
		id, ok, err := storage.GetCategoryIDByName(ctx, s.store, req.CategoryName)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrCategoryNotFound, req.CategoryName)
		}
		filter.CategoryID = &id
	}

	tasks, err := storage.FilterTasks(ctx, s.store, filter)
	if err != nil {
		return nil, err
	}
	if filter.CategoryID != nil || req.IncludeDeleted {
		return tasks, nil
	}

	visible := tasks[:0]
	for _, t := range tasks {
		if !t.IsUncategorized() {
			visible = append(visible, t)
		}
	}
	return visible, nil
}

func (s *service) SearchTasks(ctx context.Context, query string) ([]models.Task, error) {
	return storage.SearchTasks(ctx, s.store, query)
}

func (s *service) CompleteTask(ctx context.Context, taskID int) error {
	return s.update(ctx, taskID, (*models.Task).MarkCompleted)
}

func (s *service) ReopenTask(ctx context.Context, taskID int) error {
	return s.update(ctx, taskID, (*models.Task).MarkIncomplete)
}

func (s *service) update(ctx context.Context, taskID int, fn func(*models.Task)) error {
	t, err := s.GetTask(ctx, taskID)
	if err != nil {
		return err
	}
	fn(t)
	return s.mapNotFound(storage.UpdateTask(ctx, s.store, *t))
}

// DeleteTask removes a task for good when hard is set; otherwise it moves the
// task to the uncategorized sentinel where PurgeDeleted can collect it.
func (s *service) DeleteTask(ctx context.Context, taskID int, hard bool) error {
	if taskID <= 0 {
		return ErrInvalidTaskID
	}
	if hard {
		return s.mapNotFound(storage.DeleteTask(ctx, s.store, taskID))
	}
	return s.mapNotFound(storage.SoftDeleteTask(ctx, s.store, taskID))
}

// MoveTask moves a task into the named category
func (s *service) MoveTask(ctx context.Context, taskID int, categoryName string) error {
	t, err := s.GetTask(ctx, taskID)
	if err != nil {
		return err
	}
	id, ok, err := storage.GetCategoryIDByName(ctx, s.store, categoryName)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrCategoryNotFound, categoryName)
	}
	if t.CategoryID == id {
		return ErrAlreadyInCategory
	}
	return s.mapNotFound(storage.MoveTaskToCategory(ctx, s.store, taskID, id))
}

// PurgeDeleted drops soft-deleted tasks older than days. A nil days uses the
// configured lifespan, and 0 when none is configured.
func (s *service) PurgeDeleted(ctx context.Context, days *int) (int, error) {
	threshold := 0
	if days != nil {
		threshold = *days
	} else {
		snap, err := s.store.Load(ctx)
		if err != nil {
			return 0, err
		}
		if snap.Config.DeletedTaskLifespan != nil {
			threshold = *snap.Config.DeletedTaskLifespan
		}
	}
	if threshold < 0 {
		return 0, ErrInvalidDays
	}

	purged, err := storage.PurgeDeletedTasks(ctx, s.store, threshold)
	if err != nil {
		return 0, err
	}
	s.logger.Debug("purged deleted tasks", "days", threshold, "count", purged)
	return purged, nil
}

func (s *service) mapNotFound(err error) error {
	if storage.IsNotFound(err) {
		return ErrTaskNotFound
	}
	return err
}
