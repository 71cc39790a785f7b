package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NotNil(t, store)

	_, ok := store.Get(KeyBaseURL)
	assert.False(t, ok)
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set(KeyBaseURL, "http://rag.local:9000"))
	require.NoError(t, store.Set(KeyResultCount, 5))
	require.NoError(t, store.Set("experimental", true))

	assert.Equal(t, "http://rag.local:9000", store.GetString(KeyBaseURL))
	assert.Equal(t, 5, store.GetInt(KeyResultCount))
	assert.True(t, store.GetBool("experimental"))
}

func TestConfigStore_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set(KeyBaseURL, "http://rag.local:9000"))
	require.NoError(t, store.Set(KeyResultCount, 7))

	reopened, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "http://rag.local:9000", reopened.GetString(KeyBaseURL))
	// TOML round-trips integers as int64.
	assert.Equal(t, 7, reopened.GetInt(KeyResultCount))
}

func TestConfigStore_MissingKeys(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "", store.GetString("nope"))
	assert.Equal(t, 0, store.GetInt("nope"))
	assert.False(t, store.GetBool("nope"))
}

func TestConfigStore_WrongTypes(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("key", 42))
	assert.Equal(t, "", store.GetString("key"))
	assert.False(t, store.GetBool("key"))
}

func TestConfigStore_FilePermissions(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set(KeyBaseURL, "http://localhost:8000"))

	info, err := os.Stat(filepath.Join(dir, "config.toml"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}
