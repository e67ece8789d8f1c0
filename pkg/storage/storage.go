package storage

import "sync"

// Storage abstracts a string key-value slot store
type Storage interface {
	// GetItem returns the value stored under key. ok is false when the key is absent.
	GetItem(key string) (value string, ok bool, err error)

	// SetItem stores value under key, overwriting any previous value
	SetItem(key, value string) error

	// RemoveItem deletes key. Removing an absent key is not an error.
	RemoveItem(key string) error
}

// Ensure Memory implements Storage
var _ Storage = (*Memory)(nil)

// Memory is an in-memory implementation of Storage.
// It's safe for concurrent use.
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemory creates an empty in-memory storage.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

// GetItem retrieves a value by key.
func (m *Memory) GetItem(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.data[key]
	return value, ok, nil
}

// SetItem stores a value under key.
func (m *Memory) SetItem(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = value
	return nil
}

// RemoveItem deletes a key.
func (m *Memory) RemoveItem(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, key)
	return nil
}
