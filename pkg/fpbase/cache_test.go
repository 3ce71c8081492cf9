package fpbase_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tlambert03/fpbase-go/pkg/fpbase"
)

func TestMemoryCache_SetAndGet(t *testing.T) {
	t.Parallel()

	cache := fpbase.NewMemoryCache(10)
	ctx := context.Background()

	entry := &fpbase.CacheEntry{
		Data:      []byte(`{"data": {}}`),
		ExpiresAt: time.Now().Add(1 * time.Hour),
	}

	err := cache.Set(ctx, "key1", entry)
	require.NoError(t, err)

	retrieved, err := cache.Get(ctx, "key1")
	require.NoError(t, err)
	assert.Equal(t, entry.Data, retrieved.Data)
	assert.True(t, cache.Has(ctx, "key1"))
}

func TestMemoryCache_GetNonExistent(t *testing.T) {
	t.Parallel()

	cache := fpbase.NewMemoryCache(10)

	_, err := cache.Get(context.Background(), "nonexistent")
	require.Error(t, err)
	require.ErrorIs(t, err, fpbase.ErrCacheKeyNotFound)
}

func TestMemoryCache_GetExpired(t *testing.T) {
	t.Parallel()

	cache := fpbase.NewMemoryCache(10)
	ctx := context.Background()

	entry := &fpbase.CacheEntry{
		Data:      []byte("stale"),
		ExpiresAt: time.Now().Add(-1 * time.Hour),
	}

	err := cache.Set(ctx, "key1", entry)
	require.NoError(t, err)

	_, err = cache.Get(ctx, "key1")
	require.Error(t, err)
	require.ErrorIs(t, err, fpbase.ErrCacheEntryExpired)
	assert.False(t, cache.Has(ctx, "key1"))
}

func TestMemoryCache_UnboundedByDefault(t *testing.T) {
	t.Parallel()

	cache := fpbase.NewMemoryCache(0)
	ctx := context.Background()

	for i := 0; i < 500; i++ {
		err := cache.Set(ctx, fmt.Sprintf("key%d", i), &fpbase.CacheEntry{Data: []byte("x")})
		require.NoError(t, err)
	}

	assert.Equal(t, 500, cache.Len())
}

func TestMemoryCache_EvictsOldestWhenBounded(t *testing.T) {
	t.Parallel()

	cache := fpbase.NewMemoryCache(2)
	ctx := context.Background()

	base := time.Now()
	require.NoError(t, cache.Set(ctx, "oldest", &fpbase.CacheEntry{Data: []byte("a"), StoredAt: base.Add(-2 * time.Minute)}))
	require.NoError(t, cache.Set(ctx, "middle", &fpbase.CacheEntry{Data: []byte("b"), StoredAt: base.Add(-1 * time.Minute)}))
	require.NoError(t, cache.Set(ctx, "newest", &fpbase.CacheEntry{Data: []byte("c"), StoredAt: base}))

	assert.Equal(t, 2, cache.Len())
	assert.False(t, cache.Has(ctx, "oldest"))
	assert.True(t, cache.Has(ctx, "middle"))
	assert.True(t, cache.Has(ctx, "newest"))
}

func TestMemoryCache_DeleteAndClear(t *testing.T) {
	t.Parallel()

	cache := fpbase.NewMemoryCache(10)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "key1", &fpbase.CacheEntry{Data: []byte("a")}))
	require.NoError(t, cache.Set(ctx, "key2", &fpbase.CacheEntry{Data: []byte("b")}))

	require.NoError(t, cache.Delete(ctx, "key1"))
	assert.False(t, cache.Has(ctx, "key1"))
	assert.True(t, cache.Has(ctx, "key2"))

	require.NoError(t, cache.Clear(ctx))
	assert.Equal(t, 0, cache.Len())
}

func TestMemoryCache_Cleanup(t *testing.T) {
	t.Parallel()

	cache := fpbase.NewMemoryCache(10)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "fresh", &fpbase.CacheEntry{Data: []byte("a")}))
	require.NoError(t, cache.Set(ctx, "stale", &fpbase.CacheEntry{
		Data:      []byte("b"),
		ExpiresAt: time.Now().Add(-time.Second),
	}))

	cache.Cleanup()

	assert.Equal(t, 1, cache.Len())
	assert.True(t, cache.Has(ctx, "fresh"))
}

func TestCacheManager_KeyDeterminism(t *testing.T) {
	t.Parallel()

	manager := fpbase.NewCacheManager(fpbase.NewMemoryCache(0), nil)

	key1 := manager.GetCacheKey("https://example.org/graphql/", "{ dyes { id } }", map[string]interface{}{"a": 1, "b": 2})
	key2 := manager.GetCacheKey("https://example.org/graphql/", "{ dyes { id } }", map[string]interface{}{"b": 2, "a": 1})
	assert.Equal(t, key1, key2)

	key3 := manager.GetCacheKey("https://example.org/graphql/", "{ dyes { id } }", map[string]interface{}{"a": 2})
	assert.NotEqual(t, key1, key3)

	key4 := manager.GetCacheKey("https://other.example.org/graphql/", "{ dyes { id } }", map[string]interface{}{"a": 1, "b": 2})
	assert.NotEqual(t, key1, key4)

	// Nil and empty variables hash identically.
	key5 := manager.GetCacheKey("https://example.org/graphql/", "{ dyes { id } }", nil)
	key6 := manager.GetCacheKey("https://example.org/graphql/", "{ dyes { id } }", map[string]interface{}{})
	assert.Equal(t, key5, key6)
}

func TestCacheManager_Stats(t *testing.T) {
	t.Parallel()

	manager := fpbase.NewCacheManager(fpbase.NewMemoryCache(0), nil)
	ctx := context.Background()

	_, err := manager.Get(ctx, "key")
	require.Error(t, err)

	require.NoError(t, manager.Set(ctx, "key", []byte("body"), 0))

	body, err := manager.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte("body"), body)

	stats := manager.GetStats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, int64(1), stats.Sets)
	assert.InDelta(t, 0.5, stats.GetHitRate(), 1e-9)
}

func TestCacheManager_TTLDefaulting(t *testing.T) {
	t.Parallel()

	manager := fpbase.NewCacheManager(fpbase.NewMemoryCache(0), &fpbase.CacheOptions{
		DefaultTTL: 10 * time.Millisecond,
	})
	ctx := context.Background()

	require.NoError(t, manager.Set(ctx, "key", []byte("body"), 0))

	_, err := manager.Get(ctx, "key")
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)

	_, err = manager.Get(ctx, "key")
	require.Error(t, err)
}

func TestCacheManager_MaxEntrySize(t *testing.T) {
	t.Parallel()

	manager := fpbase.NewCacheManager(fpbase.NewMemoryCache(0), &fpbase.CacheOptions{
		MaxEntrySize: 4,
	})

	err := manager.Set(context.Background(), "key", []byte("too large"), 0)
	require.Error(t, err)
	require.ErrorIs(t, err, fpbase.ErrCacheValueTooLarge)
}

func TestCachingPolicy(t *testing.T) {
	t.Parallel()

	policy := fpbase.DefaultCachingPolicy()
	assert.True(t, policy.ShouldCache("getProtein"))

	policy.ExcludeOperations = []string{"getProtein"}
	assert.False(t, policy.ShouldCache("getProtein"))
	assert.True(t, policy.ShouldCache("getDye"))

	disabled := &fpbase.CachingPolicy{}
	assert.False(t, disabled.ShouldCache("getDye"))
}

func TestNoOpCache(t *testing.T) {
	t.Parallel()

	cache := fpbase.NewNoOpCache()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "key", &fpbase.CacheEntry{Data: []byte("a")}))

	_, err := cache.Get(ctx, "key")
	require.Error(t, err)
	assert.False(t, cache.Has(ctx, "key"))
}
