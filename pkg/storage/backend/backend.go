// Package backend opens the storage.Storage named by the configuration.
package backend

import (
	"errors"
	"fmt"

	"github.com/GhCauther101/UserRecordStore/pkg/config"
	"github.com/GhCauther101/UserRecordStore/pkg/db"
	"github.com/GhCauther101/UserRecordStore/pkg/storage"
	"github.com/GhCauther101/UserRecordStore/pkg/storage/file"
	gormstorage "github.com/GhCauther101/UserRecordStore/pkg/storage/gorm"
	redisstorage "github.com/GhCauther101/UserRecordStore/pkg/storage/redis"
)

// ErrUnknownBackend is returned for an unsupported backend name
var ErrUnknownBackend = errors.New("unknown storage backend")

// Slot is an opened storage with its release function
type Slot struct {
	storage.Storage
	close func() error
}

// Close releases connections held by the backend
func (s *Slot) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// Open returns the storage backend selected by cfg.StorageBackend.
func Open(cfg *config.Config) (*Slot, error) {
	switch cfg.StorageBackend {
	case config.BackendMemory:
		return &Slot{Storage: storage.NewMemory()}, nil

	case config.BackendFile:
		if cfg.StoragePath == "" {
			return nil, fmt.Errorf("storage_path is required for the %s backend", config.BackendFile)
		}
		return &Slot{Storage: file.NewInDir(cfg.StoragePath)}, nil

	case config.BackendPostgres:
		database, err := db.Connect(db.Config{URL: cfg.DatabaseURL, LogLevel: cfg.LogLevel})
		if err != nil {
			return nil, err
		}
		sqlDB, err := database.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database handle: %w", err)
		}
		return &Slot{Storage: gormstorage.New(database), close: sqlDB.Close}, nil

	case config.BackendRedis:
		s, err := redisstorage.Dial(cfg.RedisURL, cfg.RedisPrefix)
		if err != nil {
			return nil, err
		}
		return &Slot{Storage: s, close: s.Close}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.StorageBackend)
	}
}
