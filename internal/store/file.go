package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore persists records as JSON files laid out as
// <dir>/<collection>/<key>.json. Create relies on O_EXCL for its
// fail-if-exists guarantee.
type FileStore struct {
	dir string
}

// NewFileStore builds a file-backed store rooted at dir.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("data directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(collection, key string) string {
	return filepath.Join(s.dir, collection, key+".json")
}

// Create writes a new record, failing with ErrExists if one is present.
func (s *FileStore) Create(_ context.Context, collection, key string, value any) error {
	if err := os.MkdirAll(filepath.Join(s.dir, collection), 0o755); err != nil {
		return fmt.Errorf("create collection directory: %w", err)
	}

	f, err := os.OpenFile(s.path(collection, key), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return ErrExists
		}
		return fmt.Errorf("create record file: %w", err)
	}

	if err := json.NewEncoder(f).Encode(value); err != nil {
		f.Close()
		os.Remove(s.path(collection, key))
		return fmt.Errorf("encode record: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close record file: %w", err)
	}
	return nil
}

// Read decodes the stored record into out.
func (s *FileStore) Read(_ context.Context, collection, key string, out any) error {
	data, err := os.ReadFile(s.path(collection, key))
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("read record file: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode record: %w", err)
	}
	return nil
}

// Update replaces an existing record, failing with ErrNotFound if absent.
func (s *FileStore) Update(_ context.Context, collection, key string, value any) error {
	path := s.path(collection, key)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("stat record file: %w", err)
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write record file: %w", err)
	}
	return nil
}

// Delete removes the record, failing with ErrNotFound if absent.
func (s *FileStore) Delete(_ context.Context, collection, key string) error {
	if err := os.Remove(s.path(collection, key)); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("remove record file: %w", err)
	}
	return nil
}
