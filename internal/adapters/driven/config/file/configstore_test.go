package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestNewConfigStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "config")

	_, err := NewConfigStore(dir)

	require.NoError(t, err)
	assert.DirExists(t, dir)
}

func TestNewConfigStore_InvalidTOML(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, FileName), []byte("not = [valid"), 0600))

	_, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("server.addr", ":9000"))

	val, ok := store.Get("server.addr")
	assert.True(t, ok)
	assert.Equal(t, ":9000", val)
	assert.Equal(t, ":9000", store.GetString("server.addr"))
}

func TestConfigStore_PersistsAsTables(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("server.addr", ":9000"))
	require.NoError(t, store.Set("server.rate_limit", 5))
	require.NoError(t, store.Set("storage.backend", "memory"))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "[server]")
	assert.Contains(t, string(data), "[storage]")

	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, ":9000", reloaded.GetString("server.addr"))
	assert.Equal(t, 5, reloaded.GetInt("server.rate_limit"))
	assert.Equal(t, "memory", reloaded.GetString("storage.backend"))
}

func TestConfigStore_LoadHandWrittenFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := `
[storage]
backend = "sqlite"
data_dir = "/var/lib/dash"

[server]
addr = ":8080"
rate_limit = 0

[watch]
enabled = true
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, FileName), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", store.GetString("storage.backend"))
	assert.Equal(t, "/var/lib/dash", store.GetString("storage.data_dir"))
	assert.Equal(t, ":8080", store.GetString("server.addr"))
	_, ok := store.Get("server.rate_limit")
	assert.True(t, ok)
	assert.Equal(t, 0, store.GetInt("server.rate_limit"))
	assert.True(t, store.GetBool("watch.enabled"))
}

func TestConfigStore_TypeMismatch(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("k", "text"))

	assert.Equal(t, 0, store.GetInt("k"))
	assert.False(t, store.GetBool("k"))
	assert.Equal(t, "", store.GetString("missing"))
}

func TestConfigStore_Concurrent(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("server.rate_limit", n)
			_ = store.GetInt("server.rate_limit")
		}(i)
	}
	wg.Wait()

	_, ok := store.Get("server.rate_limit")
	assert.True(t, ok)
}

func TestFlattenAndNest(t *testing.T) {
	flat := map[string]any{"a.b": 1, "a.c": "x", "d": true}

	nested := nestMap(flat)

	assert.Equal(t, map[string]any{
		"a": map[string]any{"b": 1, "c": "x"},
		"d": true,
	}, nested)
	assert.Equal(t, flat, flattenMap(nested, ""))
}
