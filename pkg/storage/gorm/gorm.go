package gorm

import (
	"database/sql"
	"errors"

	"gorm.io/gorm"

	"github.com/GhCauther101/UserRecordStore/pkg/storage"
)

// Ensure Storage implements storage.Storage
var _ storage.Storage = (*Storage)(nil)

// Storage implements storage.Storage using GORM
type Storage struct {
	db *gorm.DB
}

// New creates a new Storage
func New(db *gorm.DB) *Storage {
	return &Storage{db: db}
}

// GetItem retrieves a value by key
func (s *Storage) GetItem(key string) (string, bool, error) {
	var value string
	row := s.db.Raw(`SELECT value FROM local_storage WHERE key = ?`, key).Row()
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

// SetItem stores a value under key, replacing any existing row
func (s *Storage) SetItem(key, value string) error {
	return s.db.Exec(`
		INSERT INTO local_storage (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
	`, key, value).Error
}

// RemoveItem deletes a key
func (s *Storage) RemoveItem(key string) error {
	return s.db.Exec(`DELETE FROM local_storage WHERE key = ?`, key).Error
}
