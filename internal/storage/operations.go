package storage

import (
	"context"
	"strings"

	"github.com/thenoetrevino/trtodo/internal/models"
)

// now is swapped in tests
var now = models.Now

// ============================================================================
// TASK OPERATIONS
// ============================================================================

// AddTask appends a task. A task with ID 0 gets the next free id.
// Returns the stored id.
func AddTask(ctx context.Context, s Storage, task models.Task) (int, error) {
	snap, err := s.Load(ctx)
	if err != nil {
		return 0, err
	}
	if task.ID == 0 {
		task.ID = nextTaskID(snap)
	}
	snap.Tasks = append(snap.Tasks, task)
	if err := s.Save(ctx, snap); err != nil {
		return 0, err
	}
	return task.ID, nil
}

// UpdateTask replaces the stored task that has the same id
func UpdateTask(ctx context.Context, s Storage, task models.Task) error {
	snap, err := s.Load(ctx)
	if err != nil {
		return err
	}
	existing := snap.FindTask(task.ID)
	if existing == nil {
		return NotFound("task", task.ID)
	}
	*existing = task
	return s.Save(ctx, snap)
}

// DeleteTask removes a task permanently
func DeleteTask(ctx context.Context, s Storage, id int) error {
	snap, err := s.Load(ctx)
	if err != nil {
		return err
	}
	kept := snap.Tasks[:0]
	found := false
	for _, t := range snap.Tasks {
		if t.ID == id {
			found = true
			continue
		}
		kept = append(kept, t)
	}
	if !found {
		return NotFound("task", id)
	}
	snap.Tasks = kept
	return s.Save(ctx, snap)
}

// GetTask returns the task with id, reporting whether it exists
func GetTask(ctx context.Context, s Storage, id int) (models.Task, bool, error) {
	snap, err := s.Load(ctx)
	if err != nil {
		return models.Task{}, false, err
	}
	if t := snap.FindTask(id); t != nil {
		return *t, true, nil
	}
	return models.Task{}, false, nil
}

func AllTasks(ctx context.Context, s Storage) ([]models.Task, error) {
	snap, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Tasks, nil
}

// MoveTaskToCategory reassigns a task and bumps its updated_at.
// Moving to models.UncategorizedID is a soft delete.
func MoveTaskToCategory(ctx context.Context, s Storage, taskID, categoryID int) error {
	snap, err := s.Load(ctx)
	if err != nil {
		return err
	}
	t := snap.FindTask(taskID)
	if t == nil {
		return NotFound("task", taskID)
	}
	t.CategoryID = categoryID
	t.UpdatedAt = now()
	return s.Save(ctx, snap)
}

// SoftDeleteTask moves a task into the sentinel category
func SoftDeleteTask(ctx context.Context, s Storage, taskID int) error {
	return MoveTaskToCategory(ctx, s, taskID, models.UncategorizedID)
}

// PurgeDeletedTasks permanently removes soft-deleted tasks whose updated_at
// is not after now minus days. Tasks in real categories are never touched.
// Returns the number of tasks removed.
func PurgeDeletedTasks(ctx context.Context, s Storage, days int) (int, error) {
	snap, err := s.Load(ctx)
	if err != nil {
		return 0, err
	}
	threshold := now().AddDate(0, 0, -days)

	kept := snap.Tasks[:0]
	purged := 0
	for _, t := range snap.Tasks {
		if t.CategoryID == models.UncategorizedID && !t.UpdatedAt.After(threshold) {
			purged++
			continue
		}
		kept = append(kept, t)
	}
	snap.Tasks = kept
	if err := s.Save(ctx, snap); err != nil {
		return 0, err
	}
	return purged, nil
}

// NextTaskID returns max(existing ids)+1, or 1 for an empty store
func NextTaskID(ctx context.Context, s Storage) (int, error) {
	snap, err := s.Load(ctx)
	if err != nil {
		return 0, err
	}
	return nextTaskID(snap), nil
}

func nextTaskID(snap *models.Snapshot) int {
	highest := 0
	for _, t := range snap.Tasks {
		highest = max(highest, t.ID)
	}
	return highest + 1
}

// ============================================================================
// CATEGORY OPERATIONS
// ============================================================================

// AddCategory appends a category. A category with ID 0 gets the next free id.
// A name already taken (ignoring case) is a Validation error and nothing is written.
func AddCategory(ctx context.Context, s Storage, category models.Category) (int, error) {
	snap, err := s.Load(ctx)
	if err != nil {
		return 0, err
	}
	if snap.FindCategoryByName(category.Name) != nil {
		dup := &models.DuplicateCategoryError{Name: category.Name}
		return 0, &Error{Kind: KindValidation, Message: dup.Error(), Err: dup}
	}
	if category.ID == 0 {
		category.ID = nextCategoryID(snap)
	}
	snap.Categories = append(snap.Categories, category)
	if err := s.Save(ctx, snap); err != nil {
		return 0, err
	}
	return category.ID, nil
}

// UpdateCategory replaces the stored category that has the same id
func UpdateCategory(ctx context.Context, s Storage, category models.Category) error {
	snap, err := s.Load(ctx)
	if err != nil {
		return err
	}
	existing := snap.FindCategory(category.ID)
	if existing == nil {
		return NotFound("category", category.ID)
	}
	*existing = category
	return s.Save(ctx, snap)
}

// DeleteCategory removes a category. It is rejected while any task still
// references it; callers reassign those tasks first.
func DeleteCategory(ctx context.Context, s Storage, id int) error {
	snap, err := s.Load(ctx)
	if err != nil {
		return err
	}
	if snap.FindCategory(id) == nil {
		return NotFound("category", id)
	}
	for _, t := range snap.Tasks {
		if t.CategoryID == id {
			return StorageError("cannot delete category %d: it has associated tasks", id)
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
	return s.Save(ctx, snap)
}

func GetCategory(ctx context.Context, s Storage, id int) (models.Category, bool, error) {
	snap, err := s.Load(ctx)
	if err != nil {
		return models.Category{}, false, err
	}
	if c := snap.FindCategory(id); c != nil {
		return *c, true, nil
	}
	return models.Category{}, false, nil
}

// GetCategoryByName looks a category up ignoring case
func GetCategoryByName(ctx context.Context, s Storage, name string) (models.Category, bool, error) {
	snap, err := s.Load(ctx)
	if err != nil {
		return models.Category{}, false, err
	}
	if c := snap.FindCategoryByName(name); c != nil {
		return *c, true, nil
	}
	return models.Category{}, false, nil
}

func GetCategoryIDByName(ctx context.Context, s Storage, name string) (int, bool, error) {
	c, ok, err := GetCategoryByName(ctx, s, name)
	return c.ID, ok, err
}

func AllCategories(ctx context.Context, s Storage) ([]models.Category, error) {
	snap, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Categories, nil
}

// NextCategoryID returns max(existing ids)+1, or 1 for an empty store
func NextCategoryID(ctx context.Context, s Storage) (int, error) {
	snap, err := s.Load(ctx)
	if err != nil {
		return 0, err
	}
	return nextCategoryID(snap), nil
}

func nextCategoryID(snap *models.Snapshot) int {
	highest := 0
	for _, c := range snap.Categories {
		highest = max(highest, c.ID)
	}
	return highest + 1
}

// ============================================================================
// SNAPSHOT-LEVEL OPERATIONS
// ============================================================================

// SetCurrentCategory records the active category. nil clears it.
func SetCurrentCategory(ctx context.Context, s Storage, id *int) error {
	snap, err := s.Load(ctx)
	if err != nil {
		return err
	}
	if id != nil && snap.FindCategory(*id) == nil {
		return NotFound("category", *id)
	}
	snap.CurrentCategory = id
	return s.Save(ctx, snap)
}

// UpdateSettings applies fn to the persisted settings. An error from fn
// aborts before anything is written; invalid settings fail validation on Save.
func UpdateSettings(ctx context.Context, s Storage, fn func(*models.Settings) error) error {
	snap, err := s.Load(ctx)
	if err != nil {
		return err
	}
	if err := fn(&snap.Config); err != nil {
		return err
	}
	return s.Save(ctx, snap)
}

// Reset replaces everything in s with the empty default snapshot
func Reset(ctx context.Context, s Storage) error {
	return s.Save(ctx, models.NewSnapshot())
}

func sameTitle(a, b string) bool {
	return strings.ToLower(a) == strings.ToLower(b)
}
