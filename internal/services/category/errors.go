package category

import "errors"

// Category-related errors
var (
	// Validation errors
	ErrEmptyName         = errors.New("category name cannot be empty")
	ErrInvalidCategoryID = errors.New("invalid category ID")
	ErrSameTarget        = errors.New("cannot reassign tasks to the category being deleted")

	// Business logic errors
	ErrCategoryNotFound  = errors.New("category not found")
	ErrTargetNotFound    = errors.New("target category not found")
	ErrDuplicateCategory = errors.New("category name already exists")
)
