package models

import (
	"strings"
	"time"
)

// Task represents a single todo item.
// ID 0 means the task has not been stored yet; CategoryID 0 means uncategorized.
type Task struct {
	ID          int        `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	CategoryID  int        `json:"category_id" yaml:"category_id"`
	Completed   bool       `json:"completed" yaml:"completed"`
	Priority    Priority   `json:"priority" yaml:"priority"`
	DueDate     *time.Time `json:"due_date,omitempty" yaml:"due_date,omitempty"`
	Order       int        `json:"order" yaml:"order"` // custom sort within a category
	CreatedAt   time.Time  `json:"created_at" yaml:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" yaml:"updated_at"`
}

// NewTask builds an unsaved task. The storage layer assigns the ID.
func NewTask(title string, categoryID int, description string, priority Priority) (*Task, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrEmptyTitle
	}
	if priority == "" {
		priority = DefaultPriority
	}
	if !priority.Valid() {
		return nil, ErrInvalidPriority
	}

	now := Now()
	return &Task{
		Title:       title,
		Description: description,
		CategoryID:  categoryID,
		Priority:    priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// GetID returns the task ID (used by the CLI quiet output)
func (t *Task) GetID() int {
	return t.ID
}

// IsUncategorized reports whether the task sits in the sentinel category
func (t *Task) IsUncategorized() bool {
	return t.CategoryID == UncategorizedID
}

func (t *Task) MarkCompleted() {
	t.Completed = true
	t.UpdatedAt = Now()
}

func (t *Task) MarkIncomplete() {
	t.Completed = false
	t.UpdatedAt = Now()
}

// UpdateTitle replaces the title, rejecting blank values
func (t *Task) UpdateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTitle
	}
	t.Title = title
	t.UpdatedAt = Now()
	return nil
}

func (t *Task) MoveToCategory(categoryID int) {
	t.CategoryID = categoryID
	t.UpdatedAt = Now()
}

func (t *Task) SetDueDate(due *time.Time) {
	t.DueDate = due
	t.UpdatedAt = Now()
}

func (t *Task) SetPriority(p Priority) {
	t.Priority = p
	t.UpdatedAt = Now()
}

func (t *Task) SetOrder(order int) {
	t.Order = order
	t.UpdatedAt = Now()
}

// Clone returns a copy that shares no pointers with t
func (t Task) Clone() Task {
	if t.DueDate != nil {
		due := *t.DueDate
		t.DueDate = &due
	}
	return t
}
