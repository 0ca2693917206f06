package settings

import "errors"

// Settings-related errors
var (
	// Validation errors
	ErrUnknownKey      = errors.New("unknown setting")
	ErrInvalidLifespan = errors.New("deleted-task-lifespan must be a whole number of days, 0 or more")
	ErrInvalidPriority = errors.New("default-priority must be high, medium or low")

	// Business logic errors
	ErrCategoryNotFound = errors.New("category not found")
)
