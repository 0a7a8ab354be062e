package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileBackend persists the snapshot as a single file on disk.
//
// Saves go through a temp file in the same directory followed by rename, so
// a crash mid-write leaves the previous snapshot intact.
type FileBackend struct {
	path string
}

// NewFileBackend creates a backend writing to path. The parent directory is
// created if it does not exist.
func NewFileBackend(path string) (*FileBackend, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create snapshot dir: %w", err)
		}
	}
	return &FileBackend{path: path}, nil
}

// Load reads the snapshot file. A missing file is not an error: it means no
// snapshot has been saved yet.
func (b *FileBackend) Load() ([]byte, error) {
	data, err := os.ReadFile(b.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	return data, nil
}

// Save atomically replaces the snapshot file.
func (b *FileBackend) Save(data []byte) error {
	tmp := b.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, b.path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

// Close is a no-op for the file backend.
func (b *FileBackend) Close() error { return nil }
