package models

import (
	"errors"
	"fmt"
)

// Field-level validation errors
var (
	ErrEmptyTitle      = errors.New("task title cannot be empty")
	ErrEmptyName       = errors.New("category name cannot be empty")
	ErrInvalidPriority = errors.New("invalid priority value")
	ErrReservedID      = errors.New("id 0 is reserved and cannot be stored")
	ErrDuplicateID     = errors.New("duplicate id")
	ErrInvalidLifespan = errors.New("deleted task lifespan must be 0 or more days")
)

// InvalidTaskCategoryError reports a task whose category does not exist
type InvalidTaskCategoryError struct {
	TaskID     int
	CategoryID int
}

func (e *InvalidTaskCategoryError) Error() string {
	return fmt.Sprintf("task %d references non-existent category %d", e.TaskID, e.CategoryID)
}

// DuplicateCategoryError reports a category name that is already taken (ignoring case)
type DuplicateCategoryError struct {
	Name string
}

func (e *DuplicateCategoryError) Error() string {
	return fmt.Sprintf("duplicate category name: %s", e.Name)
}
