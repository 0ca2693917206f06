// Package storage defines the persistence contract for trtodo and the
// operations built on top of it.
//
// A backend only knows how to load and save a whole snapshot. Every other
// operation here is a load, an in-memory change, and a save. Nothing is
// cached between calls, so two operations racing on the same backend can
// lose an update; callers that need more serialize their own calls.
package storage

import (
	"context"
	"io"

	"github.com/thenoetrevino/trtodo/internal/models"
)

// Storage is implemented by every backend.
//
// Load never returns a partial snapshot: it returns the full state, the
// empty default for a store that has never been written, or an error.
// Save validates before writing anything and replaces the stored state as
// a whole.
type Storage interface {
	Load(ctx context.Context) (*models.Snapshot, error)
	Save(ctx context.Context, snap *models.Snapshot) error
}

// Close releases backend resources if the backend holds any
func Close(s Storage) error {
	if c, ok := s.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Validate runs the snapshot invariants and reports a failure as a
// Validation error. The typed model error stays reachable with errors.As.
func Validate(snap *models.Snapshot) error {
	if snap == nil {
		return ValidationError("snapshot is nil")
	}
	if err := snap.Validate(); err != nil {
		return &Error{Kind: KindValidation, Message: err.Error(), Err: err}
	}
	return nil
}
