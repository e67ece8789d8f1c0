package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorage_MissingFile(t *testing.T) {
	s := NewInDir(t.TempDir())

	_, ok, err := s.GetItem("accounts")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStorage_SetGet(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "dir")
	s := NewInDir(dir)

	require.NoError(t, s.SetItem("accounts", `[{"id":"1"}]`))
	require.NoError(t, s.SetItem("other", "x"))

	value, ok, err := s.GetItem("accounts")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"1"}]`, value)

	info, err := os.Stat(s.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestStorage_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, NewInDir(dir).SetItem("accounts", "[]"))

	value, ok, err := NewInDir(dir).GetItem("accounts")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", value)
}

func TestStorage_Remove(t *testing.T) {
	s := NewInDir(t.TempDir())
	require.NoError(t, s.SetItem("a", "1"))
	require.NoError(t, s.SetItem("b", "2"))

	require.NoError(t, s.RemoveItem("a"))
	require.NoError(t, s.RemoveItem("missing"))

	_, ok, err := s.GetItem("a")
	require.NoError(t, err)
	assert.False(t, ok)

	value, ok, err := s.GetItem("b")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "2", value)
}

func TestStorage_CorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	s := New(path)

	_, _, err := s.GetItem("accounts")
	assert.Error(t, err)
	assert.Error(t, s.SetItem("accounts", "[]"))
}

func TestStorage_NoTemporaryFilesLeft(t *testing.T) {
	dir := t.TempDir()
	s := NewInDir(dir)

	for i := 0; i < 3; i++ {
		require.NoError(t, s.SetItem("accounts", "[]"))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, DefaultFileName, entries[0].Name())
}
