package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/thenoetrevino/trtodo/internal/config"
	categoryservice "github.com/thenoetrevino/trtodo/internal/services/category"
	settingsservice "github.com/thenoetrevino/trtodo/internal/services/settings"
	taskservice "github.com/thenoetrevino/trtodo/internal/services/task"
	"github.com/thenoetrevino/trtodo/internal/storage"
)

// ParseID parses a positive id from a positional argument
func ParseID(kind, arg string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s ID: %s", kind, arg)
	}
	return id, nil
}

// ReadDescription returns value, or everything on in when value is "-"
func ReadDescription(value string, in io.Reader) (string, error) {
	if value != "-" {
		return value, nil
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("read description from stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}

// ParseDueDate accepts a calendar date (2006-01-02) or an RFC3339 timestamp.
// Empty input means no due date.
func ParseDueDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, fmt.Errorf("invalid due date %q (use YYYY-MM-DD or RFC3339)", s)
	}
	t = t.UTC()
	return &t, nil
}

var notFoundErrors = []error{
	taskservice.ErrTaskNotFound,
	taskservice.ErrCategoryNotFound,
	categoryservice.ErrCategoryNotFound,
	categoryservice.ErrTargetNotFound,
	settingsservice.ErrCategoryNotFound,
	storage.ErrNotFound,
}

var validationErrors = []error{
	taskservice.ErrEmptyTitle,
	taskservice.ErrInvalidTaskID,
	taskservice.ErrInvalidPriority,
	taskservice.ErrInvalidDays,
	taskservice.ErrAlreadyInCategory,
	categoryservice.ErrEmptyName,
	categoryservice.ErrInvalidCategoryID,
	categoryservice.ErrSameTarget,
	categoryservice.ErrDuplicateCategory,
	storage.ErrValidation,
	config.ErrInvalidConfig,
	config.ErrUnknownKey,
	settingsservice.ErrUnknownKey,
	settingsservice.ErrInvalidLifespan,
	settingsservice.ErrInvalidPriority,
}

// Classify maps an error to an exit code and a machine-readable label
func Classify(err error) (int, string) {
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return ExitNotFound, "NOT_FOUND"
		}
	}
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return ExitValidation, "VALIDATION_ERROR"
		}
	}
	switch {
	case errors.Is(err, storage.ErrSerialization):
		return ExitDataErr, "DATA_ERROR"
	case errors.Is(err, storage.ErrIO):
		return ExitError, "IO_ERROR"
	case errors.Is(err, storage.ErrStorage):
		return ExitError, "STORAGE_ERROR"
	}
	return ExitError, "ERROR"
}
