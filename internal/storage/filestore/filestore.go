// Package filestore keeps the whole snapshot in one document on disk.
//
// Files ending in .yaml or .yml are written as YAML, everything else as
// indented JSON. A save goes to a temporary file in the same directory and
// is renamed over the target, then read back and its task and category
// counts compared. That check catches truncation and dropped entries only;
// it is weaker than the transaction the database backend runs.
//
// There is no locking. Two processes writing the same file race and the
// last rename wins.
package filestore

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/thenoetrevino/trtodo/internal/models"
	"github.com/thenoetrevino/trtodo/internal/storage"
)

// Store is the flat-file backend
type Store struct {
	path  string
	codec codec
}

// New returns a store for path. Nothing is touched on disk until the first Save.
func New(path string) *Store {
	return &Store{path: path, codec: codecFor(path)}
}

func (s *Store) Path() string {
	return s.path
}

// Load reads the document. A missing or blank file is the empty snapshot.
func (s *Store) Load(ctx context.Context) (*models.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return models.NewSnapshot(), nil
	}
	if err != nil {
		return nil, storage.IOError(err, "read %s", s.path)
	}

	snap, err := s.decode(data)
	if err != nil {
		return nil, err
	}
	if err := storage.Validate(snap); err != nil {
		return nil, err
	}
	return snap, nil
}

// Save validates snap, then replaces the document
func (s *Store) Save(ctx context.Context, snap *models.Snapshot) error {
	if err := storage.Validate(snap); err != nil {
		return err
	}

	data, err := encode(s.codec, snap)
	if err != nil {
		return storage.SerializationError(err, "encode snapshot")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return storage.IOError(err, "create directory %s", dir)
	}
	if err := writeFileAtomic(s.path, data); err != nil {
		return storage.IOError(err, "write %s", s.path)
	}

	written, err := os.ReadFile(s.path)
	if err != nil {
		return storage.IOError(err, "read back %s", s.path)
	}
	check, err := s.decode(written)
	if err != nil {
		return err
	}
	if len(check.Tasks) != len(snap.Tasks) || len(check.Categories) != len(snap.Categories) {
		return storage.StorageError("data integrity check failed")
	}

	slog.Debug("snapshot saved",
		"backend", "file",
		"format", s.codec.Format(),
		"tasks", len(snap.Tasks),
		"categories", len(snap.Categories))
	return nil
}

func (s *Store) decode(data []byte) (*models.Snapshot, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return models.NewSnapshot(), nil
	}
	snap := &models.Snapshot{}
	if err := s.codec.Decode(bytes.NewReader(data), snap); err != nil {
		return nil, storage.SerializationError(err, "decode %s", s.path)
	}
	if snap.Tasks == nil {
		snap.Tasks = []models.Task{}
	}
	if snap.Categories == nil {
		snap.Categories = []models.Category{}
	}
	return snap, nil
}

// writeFileAtomic writes to a temp file beside path, syncs it and renames it into place
func writeFileAtomic(path string, data []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
