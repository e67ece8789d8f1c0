package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GhCauther101/UserRecordStore/pkg/accounts"
	"github.com/GhCauther101/UserRecordStore/pkg/logging"
	"github.com/GhCauther101/UserRecordStore/pkg/storage/file"
)

func TestIsSlotChange(t *testing.T) {
	path := filepath.Join("data", file.DefaultFileName)

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"write", fsnotify.Event{Name: path, Op: fsnotify.Write}, true},
		{"rename over", fsnotify.Event{Name: path, Op: fsnotify.Create}, true},
		{"removed", fsnotify.Event{Name: path, Op: fsnotify.Remove}, true},
		{"chmod only", fsnotify.Event{Name: path, Op: fsnotify.Chmod}, false},
		{"temp file", fsnotify.Event{Name: filepath.Join("data", ".local_storage.json.tmp123"), Op: fsnotify.Write}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isSlotChange(tt.event, path))
		})
	}
}

func TestPrintSnapshot(t *testing.T) {
	slot := file.NewInDir(t.TempDir())
	store := accounts.Open(slot)
	acct, err := store.AddEmpty()
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, printSnapshot(&out, slot, accounts.StorageKey, logging.Discard(), outputText))
	assert.Contains(t, out.String(), acct.ID)

	out.Reset()
	require.NoError(t, printSnapshot(&out, slot, "other-key", logging.Discard(), outputText))
	assert.Equal(t, "No accounts\n", out.String())
}

func TestWatchAccounts_RequiresFileBackend(t *testing.T) {
	setupEnv(t)
	t.Setenv("ACCOUNTS_STORAGE_BACKEND", "memory")

	err := watchAccounts(&bytes.Buffer{}, outputText)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires the file backend")
}
