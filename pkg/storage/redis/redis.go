// Package redis provides a Redis-backed implementation of storage.Storage.
// Keys are namespaced with a prefix so several stores can share a database.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/GhCauther101/UserRecordStore/pkg/storage"
)

// DefaultPrefix namespaces keys written by this package
const DefaultPrefix = "userrecordstore:"

// Ensure Storage implements storage.Storage
var _ storage.Storage = (*Storage)(nil)

// Storage implements storage.Storage on a Redis client
type Storage struct {
	client  *goredis.Client
	prefix  string
	timeout time.Duration
}

// New wraps an existing client. An empty prefix means DefaultPrefix.
func New(client *goredis.Client, prefix string) *Storage {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Storage{client: client, prefix: prefix, timeout: 3 * time.Second}
}

// Dial parses a redis:// URL, connects, and checks the server with PING.
func Dial(url, prefix string) (*Storage, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := goredis.NewClient(opts)
	s := New(client, prefix)

	ctx, cancel := s.context()
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return s, nil
}

// Close closes the underlying client
func (s *Storage) Close() error {
	return s.client.Close()
}

// GetItem retrieves a value by key
func (s *Storage) GetItem(key string) (string, bool, error) {
	ctx, cancel := s.context()
	defer cancel()

	value, err := s.client.Get(ctx, s.itemKey(key)).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// SetItem stores a value under key with no expiry
func (s *Storage) SetItem(key, value string) error {
	ctx, cancel := s.context()
	defer cancel()

	return s.client.Set(ctx, s.itemKey(key), value, 0).Err()
}

// RemoveItem deletes a key
func (s *Storage) RemoveItem(key string) error {
	ctx, cancel := s.context()
	defer cancel()

	return s.client.Del(ctx, s.itemKey(key)).Err()
}

func (s *Storage) itemKey(key string) string {
	return s.prefix + key
}

func (s *Storage) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.timeout)
}
