package models

import (
	"fmt"
	"strings"
	"time"
)

// Settings are user preferences persisted alongside the data
type Settings struct {
	DeletedTaskLifespan *int     `json:"deleted_task_lifespan,omitempty" yaml:"deleted_task_lifespan,omitempty"` // days
	DefaultCategory     string   `json:"default_category,omitempty" yaml:"default_category,omitempty"`
	DefaultPriority     Priority `json:"default_priority,omitempty" yaml:"default_priority,omitempty"`
}

// Validate rejects a negative lifespan and an unknown default priority.
// Empty fields mean "use the built-in default".
func (s Settings) Validate() error {
	if s.DeletedTaskLifespan != nil && *s.DeletedTaskLifespan < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidLifespan, *s.DeletedTaskLifespan)
	}
	if s.DefaultPriority != "" && !s.DefaultPriority.Valid() {
		return fmt.Errorf("default priority: %w: %q", ErrInvalidPriority, string(s.DefaultPriority))
	}
	return nil
}

// Snapshot is the complete persisted state at one point in time.
// Every write replaces the whole snapshot.
type Snapshot struct {
	Version         int        `json:"version" yaml:"version"`
	Tasks           []Task     `json:"tasks" yaml:"tasks"`
	Categories      []Category `json:"categories" yaml:"categories"`
	Config          Settings   `json:"config" yaml:"config"`
	CurrentCategory *int       `json:"current_category" yaml:"current_category"`
	LastSync        time.Time  `json:"last_sync" yaml:"last_sync"`
}

// NewSnapshot returns the empty default snapshot
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Version:    SnapshotVersion,
		Tasks:      []Task{},
		Categories: []Category{},
		LastSync:   Now(),
	}
}

// Validate checks the snapshot invariants. It never repairs anything.
//
// Stored entities must have non-zero, unique ids and valid fields; every
// task with a non-zero category must reference an existing category; and
// category names must be unique ignoring case.
func (s *Snapshot) Validate() error {
	categoryIDs := make(map[int]struct{}, len(s.Categories))
	for _, c := range s.Categories {
		if c.ID == UncategorizedID {
			return fmt.Errorf("category %q: %w", c.Name, ErrReservedID)
		}
		if _, dup := categoryIDs[c.ID]; dup {
			return fmt.Errorf("category %d: %w", c.ID, ErrDuplicateID)
		}
		if strings.TrimSpace(c.Name) == "" {
			return fmt.Errorf("category %d: %w", c.ID, ErrEmptyName)
		}
		categoryIDs[c.ID] = struct{}{}
	}

	taskIDs := make(map[int]struct{}, len(s.Tasks))
	for _, t := range s.Tasks {
		if t.ID == 0 {
			return fmt.Errorf("task %q: %w", t.Title, ErrReservedID)
		}
		if _, dup := taskIDs[t.ID]; dup {
			return fmt.Errorf("task %d: %w", t.ID, ErrDuplicateID)
		}
		if strings.TrimSpace(t.Title) == "" {
			return fmt.Errorf("task %d: %w", t.ID, ErrEmptyTitle)
		}
		if !t.Priority.Valid() {
			return fmt.Errorf("task %d: %w: %q", t.ID, ErrInvalidPriority, string(t.Priority))
		}
		taskIDs[t.ID] = struct{}{}
	}

	for _, t := range s.Tasks {
		if t.CategoryID == UncategorizedID {
			continue
		}
		if _, ok := categoryIDs[t.CategoryID]; !ok {
			return &InvalidTaskCategoryError{TaskID: t.ID, CategoryID: t.CategoryID}
		}
	}

	names := make(map[string]struct{}, len(s.Categories))
	for _, c := range s.Categories {
		key := strings.ToLower(c.Name)
		if _, dup := names[key]; dup {
			return &DuplicateCategoryError{Name: c.Name}
		}
		names[key] = struct{}{}
	}

	return s.Config.Validate()
}

// FindTask returns a pointer into s.Tasks, or nil
func (s *Snapshot) FindTask(id int) *Task {
	for i := range s.Tasks {
		if s.Tasks[i].ID == id {
			return &s.Tasks[i]
		}
	}
	return nil
}

// FindCategory returns a pointer into s.Categories, or nil
func (s *Snapshot) FindCategory(id int) *Category {
	for i := range s.Categories {
		if s.Categories[i].ID == id {
			return &s.Categories[i]
		}
	}
	return nil
}

// FindCategoryByName looks a category up ignoring case
func (s *Snapshot) FindCategoryByName(name string) *Category {
	for i := range s.Categories {
		if s.Categories[i].SameName(name) {
			return &s.Categories[i]
		}
	}
	return nil
}

// Clone returns a deep copy of the snapshot
func (s *Snapshot) Clone() *Snapshot {
	out := *s
	out.Tasks = make([]Task, len(s.Tasks))
	for i, t := range s.Tasks {
		out.Tasks[i] = t.Clone()
	}
	out.Categories = append([]Category{}, s.Categories...)
	if s.CurrentCategory != nil {
		id := *s.CurrentCategory
		out.CurrentCategory = &id
	}
	if s.Config.DeletedTaskLifespan != nil {
		days := *s.Config.DeletedTaskLifespan
		out.Config.DeletedTaskLifespan = &days
	}
	return &out
}
