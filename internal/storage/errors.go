package storage

import (
	"errors"
	"fmt"

	"github.com/thenoetrevino/trtodo/internal/models"
)

// Kind classifies a storage failure
type Kind string

const (
	KindIO            Kind = "io"            // filesystem failures
	KindSerialization Kind = "serialization" // encode/decode failures
	KindValidation    Kind = "validation"    // snapshot invariant violations
	KindStorage       Kind = "storage"       // backend failures, integrity checks, missing entities
)

func (k Kind) label() string {
	switch k {
	case KindIO:
		return "IO error"
	case KindSerialization:
		return "serialization error"
	case KindValidation:
		return "invalid data"
	default:
		return "storage error"
	}
}

// Error is the error type returned by every backend and operation
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message == "" && e.Err != nil {
		return e.Kind.label() + ": " + e.Err.Error()
	}
	return e.Kind.label() + ": " + e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target matches this error by kind
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

// Sentinels for errors.Is checks by kind
var (
	ErrIO            = &Error{Kind: KindIO}
	ErrSerialization = &Error{Kind: KindSerialization}
	ErrValidation    = &Error{Kind: KindValidation}
	ErrStorage       = &Error{Kind: KindStorage}
)

// ErrNotFound is wrapped by NotFound errors
var ErrNotFound = errors.New("not found")

func IOError(err error, format string, args ...any) *Error {
	return &Error{Kind: KindIO, Message: fmt.Sprintf(format, args...) + ": " + errString(err), Err: err}
}

func SerializationError(err error, format string, args ...any) *Error {
	return &Error{Kind: KindSerialization, Message: fmt.Sprintf(format, args...) + ": " + errString(err), Err: err}
}

func ValidationError(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func StorageError(format string, args ...any) *Error {
	return &Error{Kind: KindStorage, Message: fmt.Sprintf(format, args...)}
}

// WrapStorage reports a backend failure that has an underlying cause
func WrapStorage(err error, format string, args ...any) *Error {
	return &Error{Kind: KindStorage, Message: fmt.Sprintf(format, args...) + ": " + errString(err), Err: err}
}

// NotFound reports a missing task or category by id
func NotFound(entity string, id int) *Error {
	return &Error{
		Kind:    KindStorage,
		Message: fmt.Sprintf("%s with id %d not found", entity, id),
		Err:     ErrNotFound,
	}
}

// IsNotFound reports whether err is a NotFound error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateCategory reports whether err carries a duplicate category name
func IsDuplicateCategory(err error) bool {
	var dup *models.DuplicateCategoryError
	return errors.As(err, &dup)
}

func errString(err error) string {
	if err == nil {
		return "<nil>"
	}
	return err.Error()
}
