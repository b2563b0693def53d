package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"newsroom/internal/ports"
)

// LocalStore keeps documents as plain files in a data directory.
type LocalStore struct {
	dir string
}

var _ ports.DocumentStore = (*LocalStore)(nil)

// NewLocalStore wires the directory documents live in.
func NewLocalStore(dir string) *LocalStore {
	return &LocalStore{dir: dir}
}

// Get reads the named document from disk.
func (s *LocalStore) Get(ctx context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(s.path(name))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: %w", name, ports.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

// Put overwrites the named document. The change description has no local
// equivalent and is ignored.
func (s *LocalStore) Put(ctx context.Context, name string, data []byte, message string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if err := os.WriteFile(s.path(name), data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

func (s *LocalStore) path(name string) string {
	return filepath.Join(s.dir, filepath.Base(name))
}
