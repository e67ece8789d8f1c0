package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_GetSet(t *testing.T) {
	m := NewMemory()

	_, ok, err := m.GetItem("accounts")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.SetItem("accounts", "[]"))

	value, ok, err := m.GetItem("accounts")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", value)
}

func TestMemory_Overwrite(t *testing.T) {
	m := NewMemory()

	require.NoError(t, m.SetItem("k", "one"))
	require.NoError(t, m.SetItem("k", "two"))

	value, _, err := m.GetItem("k")
	require.NoError(t, err)
	assert.Equal(t, "two", value)
}

func TestMemory_EmptyValueIsPresent(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.SetItem("k", ""))

	value, ok, err := m.GetItem("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "", value)
}

func TestMemory_Remove(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.SetItem("k", "v"))

	require.NoError(t, m.RemoveItem("k"))
	require.NoError(t, m.RemoveItem("missing"))

	_, ok, err := m.GetItem("k")
	require.NoError(t, err)
	assert.False(t, ok)
}
