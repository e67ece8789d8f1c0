package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GhCauther101/UserRecordStore/pkg/audit"
	"github.com/GhCauther101/UserRecordStore/pkg/config"
	"github.com/GhCauther101/UserRecordStore/pkg/storage/file"
)

// setupEnv points configuration at an empty directory and clears overrides
func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("ACCOUNTS_CONFIG_PATH", dir)
	for _, env := range []string{
		"ACCOUNTS_STORAGE_BACKEND",
		"ACCOUNTS_STORAGE_PATH",
		"ACCOUNTS_STORAGE_KEY",
		"ACCOUNTS_DATABASE_URL",
		"ACCOUNTS_REDIS_URL",
		"ACCOUNTS_REDIS_PREFIX",
		"ACCOUNTS_AUDIT_ENABLED",
		"ACCOUNTS_AUDIT_DATABASE_URL",
		"ACCOUNTS_LOG_LEVEL",
	} {
		t.Setenv(env, "")
	}
	return dir
}

func TestOpenApp_FileBackend(t *testing.T) {
	dir := setupEnv(t)
	dataDir := filepath.Join(dir, "data")
	t.Setenv("ACCOUNTS_STORAGE_PATH", dataDir)
	t.Setenv("ACCOUNTS_STORAGE_KEY", "team-accounts")
	t.Setenv("ACCOUNTS_AUDIT_ENABLED", "true")

	var stderr bytes.Buffer
	err := withApp(&stderr, func(a *app) error {
		assert.Equal(t, config.BackendFile, a.cfg.StorageBackend)
		assert.Equal(t, "team-accounts", a.store.Key())
		_, err := a.store.AddEmpty()
		return err
	})
	require.NoError(t, err)

	// audit lines go to stderr
	assert.Contains(t, stderr.String(), audit.AppName)
	assert.Contains(t, stderr.String(), "account-create")

	raw, ok, err := file.NewInDir(dataDir).GetItem("team-accounts")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, raw, `"type":"local"`)

	// a second invocation sees the first one's write
	err = withApp(&stderr, func(a *app) error {
		assert.Equal(t, 1, a.store.Len())
		return nil
	})
	require.NoError(t, err)
}

func TestOpenApp_MemoryBackend(t *testing.T) {
	setupEnv(t)
	t.Setenv("ACCOUNTS_STORAGE_BACKEND", config.BackendMemory)

	a, err := openApp(&bytes.Buffer{})
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, 0, a.store.Len())
	assert.Nil(t, a.auditStore)
}

func TestOpenApp_InvalidConfig(t *testing.T) {
	setupEnv(t)
	t.Setenv("ACCOUNTS_STORAGE_BACKEND", "floppy")

	_, err := openApp(&bytes.Buffer{})
	assert.Error(t, err)
}

func TestShowConfiguration(t *testing.T) {
	setupEnv(t)
	t.Setenv("ACCOUNTS_STORAGE_BACKEND", config.BackendRedis)
	t.Setenv("ACCOUNTS_REDIS_URL", "redis://:topsecret@localhost:6379/0")

	var out bytes.Buffer
	require.NoError(t, showConfiguration(&out, "text"))
	assert.Contains(t, out.String(), "storage_backend")
	assert.Contains(t, out.String(), "environment")
	assert.NotContains(t, out.String(), "topsecret")

	out.Reset()
	require.NoError(t, showConfiguration(&out, "json"))
	assert.Contains(t, out.String(), `"redis"`)
	assert.NotContains(t, out.String(), "topsecret")
}
