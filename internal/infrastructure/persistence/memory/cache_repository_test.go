package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAndGet(t *testing.T) {
	ctx := context.Background()
	cache := NewCacheRepository()

	require.NoError(t, cache.Set(ctx, "k", []byte("v"), 0))

	got, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)
}

func TestGetMissingKey(t *testing.T) {
	cache := NewCacheRepository()

	_, err := cache.Get(context.Background(), "nope")

	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestTTLExpiry(t *testing.T) {
	ctx := context.Background()
	cache := NewCacheRepository()

	require.NoError(t, cache.Set(ctx, "k", []byte("v"), 10*time.Millisecond))

	_, err := cache.Get(ctx, "k")
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)

	_, err = cache.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	exists, err := cache.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	cache := NewCacheRepository()

	require.NoError(t, cache.Set(ctx, "k", []byte("v"), 0))
	require.NoError(t, cache.Delete(ctx, "k"))

	_, err := cache.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestExists(t *testing.T) {
	ctx := context.Background()
	cache := NewCacheRepository()

	exists, err := cache.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, cache.Set(ctx, "k", []byte("v"), 0))

	exists, err = cache.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestSetNX(t *testing.T) {
	ctx := context.Background()
	cache := NewCacheRepository()

	set, err := cache.SetNX(ctx, "lock", []byte("1"), 0)
	require.NoError(t, err)
	assert.True(t, set)

	set, err = cache.SetNX(ctx, "lock", []byte("2"), 0)
	require.NoError(t, err)
	assert.False(t, set, "second SetNX on a live key must not set")

	// The original value survives
	got, err := cache.Get(ctx, "lock")
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), got)
}

func TestSetNXAfterExpiry(t *testing.T) {
	ctx := context.Background()
	cache := NewCacheRepository()

	set, err := cache.SetNX(ctx, "lock", []byte("1"), 10*time.Millisecond)
	require.NoError(t, err)
	require.True(t, set)

	time.Sleep(20 * time.Millisecond)

	set, err = cache.SetNX(ctx, "lock", []byte("2"), 0)
	require.NoError(t, err)
	assert.True(t, set, "expired key behaves as absent")
}

func TestGetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	cache := NewCacheRepository()

	require.NoError(t, cache.Set(ctx, "k", []byte("abc"), 0))

	got, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	got[0] = 'z'

	again, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again, "mutating a returned value must not affect the store")
}
