// Package storage provides the persistent key-value slot used by the
// account store, the equivalent of a browser's local storage.
//
// A Storage holds string values under string keys. Writes overwrite,
// last writer wins, and there is no cross-process coordination.
//
// # Available Backends
//
//   - Memory: in-process map, for tests and throwaway sessions
//   - file.Storage: a JSON document on disk (default)
//   - gorm.Storage: a PostgreSQL table through GORM
//   - redis.Storage: a Redis server through go-redis
//
// # Usage
//
//	slot := storage.NewMemory()
//	if err := slot.SetItem("accounts", "[]"); err != nil {
//	    return err
//	}
//	raw, ok, err := slot.GetItem("accounts")
package storage
