package iocache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dustyposa/github-stars-mcp-server/internal/contract"
	"github.com/Dustyposa/github-stars-mcp-server/schema"
)

func TestFingerprintDeterminism(t *testing.T) {
	a := Fingerprint("bundle", map[string]any{"username": "octocat", "max": 100})
	b := Fingerprint("bundle", map[string]any{"max": 100, "username": "octocat"})
	assert.Equal(t, a, b)

	c := Fingerprint("bundle", map[string]any{"username": "octocat", "max": 50})
	assert.NotEqual(t, a, c)

	d := Fingerprint("list", map[string]any{"username": "octocat", "max": 100})
	assert.NotEqual(t, a, d)
}

// exerciseStore runs the shared store contract against any backend.
func exerciseStore(t *testing.T, store contract.CacheStore) {
	t.Helper()

	_, err := store.Get("absent")
	assert.ErrorIs(t, err, contract.ErrCacheMiss)

	require.NoError(t, store.Set("key-1", []byte("value-1"), time.Minute))
	got, err := store.Get("key-1")
	require.NoError(t, err)
	assert.Equal(t, []byte("value-1"), got)

	// Overwrite replaces the previous value
	require.NoError(t, store.Set("key-1", []byte("value-2"), time.Minute))
	got, err = store.Get("key-1")
	require.NoError(t, err)
	assert.Equal(t, []byte("value-2"), got)

	require.NoError(t, store.Set("key-2", []byte("other"), time.Minute))
	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, int64(2), status.TotalEntries)

	removed, err := store.Clear()
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	_, err = store.Get("key-1")
	assert.ErrorIs(t, err, contract.ErrCacheMiss)
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	defer func() { _ = store.Close() }()
	exerciseStore(t, store)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Set("ephemeral", []byte("x"), 10*time.Millisecond))

	time.Sleep(30 * time.Millisecond)
	_, err := store.Get("ephemeral")
	assert.ErrorIs(t, err, contract.ErrCacheMiss)
}

func TestSQLiteStore(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cache.db")
	store, err := NewSQLStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	exerciseStore(t, store)
}

func TestSQLiteStoreExpiry(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cache.db")
	store, err := NewSQLStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	// Zero TTL expires immediately since expiry uses second granularity
	require.NoError(t, store.Set("ephemeral", []byte("x"), 0))
	_, err = store.Get("ephemeral")
	assert.ErrorIs(t, err, contract.ErrCacheMiss)
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	store, err := NewRedisStore(mr.Addr())
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	exerciseStore(t, store)
}

func TestRedisStoreExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	store, err := NewRedisStore(mr.Addr())
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	require.NoError(t, store.Set("ephemeral", []byte("x"), time.Second))
	mr.FastForward(2 * time.Second)

	_, err = store.Get("ephemeral")
	assert.ErrorIs(t, err, contract.ErrCacheMiss)
}

func TestRedisClearOnlyTouchesPrefix(t *testing.T) {
	mr := miniredis.RunT(t)
	store, err := NewRedisStore(mr.Addr())
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	require.NoError(t, mr.Set("unrelated", "keep"))
	require.NoError(t, store.Set("mine", []byte("x"), time.Minute))

	removed, err := store.Clear()
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
	assert.True(t, mr.Exists("unrelated"))
}

func TestManagerBackends(t *testing.T) {
	t.Run("memory", func(t *testing.T) {
		mgr, err := NewManager(schema.MemoryBackend, "")
		require.NoError(t, err)
		defer func() { _ = mgr.Close() }()
		assert.Equal(t, schema.MemoryBackend, mgr.Backend())
		require.NotNil(t, mgr.GetResponseStore())
	})

	t.Run("none misses everything", func(t *testing.T) {
		mgr, err := NewManager(schema.NoneBackend, "")
		require.NoError(t, err)
		defer func() { _ = mgr.Close() }()

		store := mgr.GetResponseStore()
		require.NoError(t, store.Set("k", []byte("v"), time.Minute))
		_, err = store.Get("k")
		assert.ErrorIs(t, err, contract.ErrCacheMiss)
	})

	t.Run("unsupported backend", func(t *testing.T) {
		_, err := NewManager(schema.CacheBackend("memcached"), "")
		assert.Error(t, err)
	})
}
