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
	assert.Equal(t, filepath.Join(tmpDir, SettingsFileName), store.Path())
}

func TestNewConfigStore_CreatesNestedDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	_, err := NewConfigStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, os.FileMode(0700), info.Mode().Perm())
}

func TestNewConfigStore_MkdirAllError(t *testing.T) {
	store, err := NewConfigStore("/dev/null/cannot/create/dirs")

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNewConfigStore_LoadCorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	err := os.WriteFile(filepath.Join(tmpDir, SettingsFileName), []byte("this is not valid TOML {{{[["), 0600)
	require.NoError(t, err)

	store, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("api.base_url", "https://example.test/api/v1"))
	require.NoError(t, store.Set("api.timeout_seconds", 30))
	require.NoError(t, store.Set("api.requests_per_second", 1.5))
	require.NoError(t, store.Set("history.enabled", false))

	assert.Equal(t, "https://example.test/api/v1", store.GetString("api.base_url"))
	assert.Equal(t, 30, store.GetInt("api.timeout_seconds"))
	assert.InDelta(t, 1.5, store.GetFloat("api.requests_per_second"), 0.0001)
	assert.False(t, store.GetBool("history.enabled"))

	_, ok := store.Get("history.enabled")
	assert.True(t, ok)
	_, ok = store.Get("missing")
	assert.False(t, ok)
	assert.Empty(t, store.GetString("api.timeout_seconds"))
}

func TestConfigStore_Persistence_WritesNestedTables(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("account.key", "18745"))
	require.NoError(t, store.Set("account.division", 0))
	require.NoError(t, store.Set("api.timeout_seconds", 100))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "[account]")
	assert.Contains(t, content, "[api]")
	assert.NotContains(t, content, `"account.key"`)

	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "18745", reloaded.GetString("account.key"))
	assert.Equal(t, 100, reloaded.GetInt("api.timeout_seconds"))
	assert.InDelta(t, 100.0, reloaded.GetFloat("api.timeout_seconds"), 0.0001)
}

func TestConfigStore_Load_HandEditedFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := `
[api]
requests_per_second = 4

[onboarding]
default_region = "eu-west-1"
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, SettingsFileName), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.InDelta(t, 4.0, store.GetFloat("api.requests_per_second"), 0.0001)
	assert.Equal(t, "eu-west-1", store.GetString("onboarding.default_region"))
}

func TestConfigStore_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, SettingsFileName), []byte{}, 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	_, ok := store.Get("any_key")
	assert.False(t, ok)
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("account.name", "Prod"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_Set_ConflictingKeys(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("api", "flat"))
	assert.Error(t, store.Set("api.base_url", "https://example.test"))
}

func TestConfigStore_SetWithUnmarshallableValue(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, store.Set("channel", make(chan int)))
}

func TestConfigStore_Load_ReloadsExternalChanges(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("account.name", "Prod"))

	require.NoError(t, os.WriteFile(store.Path(), []byte("[account]\nname = \"Staging\"\n"), 0600))
	require.NoError(t, store.Load())

	assert.Equal(t, "Staging", store.GetString("account.name"))
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			key := "key.n" + string(rune('0'+id))
			_ = store.Set(key, id)
			_ = store.GetInt(key)
			_, _ = store.Get(key)
		}(i)
	}
	wg.Wait()

	for i := 0; i < 10; i++ {
		assert.Equal(t, i, store.GetInt("key.n"+string(rune('0'+i))))
	}
}

func TestUnflattenMap(t *testing.T) {
	nested, err := unflattenMap(map[string]any{
		"a.b.c": 1,
		"a.d":   "x",
		"e":     true,
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"a": map[string]any{
			"b": map[string]any{"c": 1},
			"d": "x",
		},
		"e": true,
	}, nested)
	assert.Equal(t, map[string]any{"a.b.c": 1, "a.d": "x", "e": true}, flattenMap(nested, ""))
}

func TestConfigStore_Set_FailedWriteIsDiscarded(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, store.Set("channel", make(chan int)))
	_, ok := store.Get("channel")
	assert.False(t, ok)

	require.NoError(t, store.Set("account.name", "Prod"))
}
