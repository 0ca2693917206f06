package storage

import (
	"context"
	"strings"

	"github.com/thenoetrevino/trtodo/internal/models"
)

// TaskFilter selects tasks. Nil fields match everything.
type TaskFilter struct {
	CategoryID *int
	Priority   *models.Priority
	Completed  *bool
	Query      string // case-insensitive substring of the title
	Title      string // case-insensitive exact title
}

func (f TaskFilter) matches(t models.Task) bool {
	if f.CategoryID != nil && t.CategoryID != *f.CategoryID {
		return false
	}
	if f.Priority != nil && t.Priority != *f.Priority {
		return false
	}
	if f.Completed != nil && t.Completed != *f.Completed {
		return false
	}
	if f.Query != "" && !strings.Contains(strings.ToLower(t.Title), strings.ToLower(f.Query)) {
		return false
	}
	if f.Title != "" && !sameTitle(t.Title, f.Title) {
		return false
	}
	return true
}

// FilterTasks returns every task matching f, in stored order
func FilterTasks(ctx context.Context, s Storage, f TaskFilter) ([]models.Task, error) {
	snap, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	out := []models.Task{}
	for _, t := range snap.Tasks {
		if f.matches(t) {
			out = append(out, t)
		}
	}
	return out, nil
}

func TasksByCategory(ctx context.Context, s Storage, categoryID int) ([]models.Task, error) {
	return FilterTasks(ctx, s, TaskFilter{CategoryID: &categoryID})
}

// TasksByCategoryName returns no tasks when the name is unknown
func TasksByCategoryName(ctx context.Context, s Storage, name string) ([]models.Task, error) {
	id, ok, err := GetCategoryIDByName(ctx, s, name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []models.Task{}, nil
	}
	return TasksByCategory(ctx, s, id)
}

func TasksByPriority(ctx context.Context, s Storage, p models.Priority) ([]models.Task, error) {
	return FilterTasks(ctx, s, TaskFilter{Priority: &p})
}

func CompletedTasks(ctx context.Context, s Storage) ([]models.Task, error) {
	done := true
	return FilterTasks(ctx, s, TaskFilter{Completed: &done})
}

func IncompleteTasks(ctx context.Context, s Storage) ([]models.Task, error) {
	done := false
	return FilterTasks(ctx, s, TaskFilter{Completed: &done})
}

// SearchTasks matches a case-insensitive substring of the title
func SearchTasks(ctx context.Context, s Storage, query string) ([]models.Task, error) {
	return FilterTasks(ctx, s, TaskFilter{Query: query})
}

// TasksByTitle matches the whole title ignoring case
func TasksByTitle(ctx context.Context, s Storage, title string) ([]models.Task, error) {
	return FilterTasks(ctx, s, TaskFilter{Title: title})
}

// DeletedTasks returns the soft-deleted tasks
func DeletedTasks(ctx context.Context, s Storage) ([]models.Task, error) {
	return TasksByCategory(ctx, s, models.UncategorizedID)
}

func TasksByPriorityAndCategory(ctx context.Context, s Storage, p models.Priority, categoryID int) ([]models.Task, error) {
	return FilterTasks(ctx, s, TaskFilter{Priority: &p, CategoryID: &categoryID})
}

func TasksByCompletionAndCategory(ctx context.Context, s Storage, completed bool, categoryID int) ([]models.Task, error) {
	return FilterTasks(ctx, s, TaskFilter{Completed: &completed, CategoryID: &categoryID})
}

func TasksByCompletionAndPriority(ctx context.Context, s Storage, completed bool, p models.Priority) ([]models.Task, error) {
	return FilterTasks(ctx, s, TaskFilter{Completed: &completed, Priority: &p})
}

func TasksByCompletionPriorityAndCategory(ctx context.Context, s Storage, completed bool, p models.Priority, categoryID int) ([]models.Task, error) {
	return FilterTasks(ctx, s, TaskFilter{Completed: &completed, Priority: &p, CategoryID: &categoryID})
}
