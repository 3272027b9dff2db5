package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/MichalMitros/catalog-stock-monitor/internal/platform/models"
)

// File stores snapshot as single JSON document on disk.
type File struct {
	path string
}

// NewFile returns new File storing snapshot at path.
func NewFile(path string) File {
	return File{path: path}
}

// Load returns stored snapshot. Missing file is returned as empty snapshot.
func (f File) Load(_ context.Context) (*models.Snapshot, error) {
	body, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return emptySnapshot(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("can't read snapshot file: %w", err)
	}

	return decodeSnapshot(body)
}

// Save replaces stored snapshot. File is replaced atomically so it's never left half-written.
func (f File) Save(_ context.Context, snapshot *models.Snapshot) error {
	body, err := encodeSnapshot(snapshot)
	if err != nil {
		return err
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: can't create snapshot directory: %w", ErrPersistence, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: can't create temporary file: %w", ErrPersistence, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(body); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: can't write snapshot: %w", ErrPersistence, err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: can't close temporary file: %w", ErrPersistence, err)
	}

	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("%w: can't replace snapshot file: %w", ErrPersistence, err)
	}

	return nil
}
