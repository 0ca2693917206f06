package task

import "errors"

// Task-related errors
var (
	// Validation errors
	ErrEmptyTitle      = errors.New("task title cannot be empty")
	ErrInvalidTaskID   = errors.New("invalid task ID")
	ErrInvalidPriority = errors.New("invalid priority: must be high, medium or low")
	ErrInvalidDays     = errors.New("invalid retention: days must be >= 0")

	// Business logic errors
	ErrTaskNotFound      = errors.New("task not found")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrAlreadyInCategory = errors.New("task is already in target category")
)
