package redis

import (
	"os"
	"testing"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemKey(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		key      string
		expected string
	}{
		{"default prefix", "", "accounts", "userrecordstore:accounts"},
		{"custom prefix", "app1:", "accounts", "app1:accounts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(goredis.NewClient(&goredis.Options{Addr: "localhost:0"}), tt.prefix)
			defer func() { _ = s.Close() }()
			assert.Equal(t, tt.expected, s.itemKey(tt.key))
		})
	}
}

func TestDial_InvalidURL(t *testing.T) {
	_, err := Dial("http://not-redis", "")
	assert.Error(t, err)
}

// TestStorage_Live runs against a real server when REDIS_URL is set.
func TestStorage_Live(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("Skipping redis tests. Set REDIS_URL to run.")
	}

	s, err := Dial(url, "userrecordstore-test:")
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	require.NoError(t, s.RemoveItem("accounts"))

	_, ok, err := s.GetItem("accounts")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.SetItem("accounts", "[]"))
	value, ok, err := s.GetItem("accounts")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", value)

	require.NoError(t, s.RemoveItem("accounts"))
}
