// Package file provides a Storage that keeps every key in one JSON document
// on disk. Writes go to a temporary file that is renamed over the original,
// so readers never observe a partially written document.
package file

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/juju/utils/v4"

	"github.com/GhCauther101/UserRecordStore/pkg/storage"
)

// DefaultFileName is the document name used inside a storage directory
const DefaultFileName = "local_storage.json"

// Ensure Storage implements storage.Storage
var _ storage.Storage = (*Storage)(nil)

// Storage implements storage.Storage on a single JSON file
type Storage struct {
	mu   sync.Mutex
	path string
}

// New creates a file storage backed by the document at path.
// The file and its directory are created on first write.
func New(path string) *Storage {
	return &Storage{path: path}
}

// NewInDir creates a file storage using DefaultFileName inside dir.
func NewInDir(dir string) *Storage {
	return New(filepath.Join(dir, DefaultFileName))
}

// Path returns the document path
func (s *Storage) Path() string {
	return s.path
}

// GetItem retrieves a value by key
func (s *Storage) GetItem(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.read()
	if err != nil {
		return "", false, err
	}
	value, ok := items[key]
	return value, ok, nil
}

// SetItem stores a value under key
func (s *Storage) SetItem(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.read()
	if err != nil {
		return err
	}
	items[key] = value
	return s.write(items)
}

// RemoveItem deletes a key
func (s *Storage) RemoveItem(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := items[key]; !ok {
		return nil
	}
	delete(items, key)
	return s.write(items)
}

func (s *Storage) read() (map[string]string, error) {
	items := make(map[string]string)

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return items, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read storage file %s: %w", s.path, err)
	}
	if len(data) == 0 {
		return items, nil
	}

	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to parse storage file %s: %w", s.path, err)
	}
	return items, nil
}

func (s *Storage) write(items map[string]string) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create storage directory %s: %w", dir, err)
	}

	if err := utils.AtomicWriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write storage file %s: %w", s.path, err)
	}
	return nil
}
