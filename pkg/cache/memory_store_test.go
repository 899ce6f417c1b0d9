package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/codingraft/FlowHaven/pkg/cache"

	"github.com/stretchr/testify/require"
)

func TestMemoryStoreSetGet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := cache.NewMemoryStore(0)
	defer store.Close()

	_, err := store.Get(ctx, "missing")
	require.ErrorIs(t, err, cache.ErrCacheMiss)

	require.NoError(t, store.Set(ctx, "k", []byte("v"), time.Minute))
	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("v"), got)
}

func TestMemoryStoreTTLExpiry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := cache.NewMemoryStore(0)
	defer store.Close()

	require.NoError(t, store.Set(ctx, "k", []byte("v"), time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	_, err := store.Get(ctx, "k")
	require.ErrorIs(t, err, cache.ErrCacheMiss)
}

func TestMemoryStoreDeletePrefix(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := cache.NewMemoryStore(0)
	defer store.Close()

	require.NoError(t, store.Set(ctx, "tasks:u1:10:0", []byte("a"), time.Minute))
	require.NoError(t, store.Set(ctx, "tasks:u1:10:10", []byte("b"), time.Minute))
	require.NoError(t, store.Set(ctx, "tasks:u2:10:0", []byte("c"), time.Minute))
	require.NoError(t, store.Set(ctx, "habits:u1", []byte("d"), time.Minute))

	require.NoError(t, store.DeletePrefix(ctx, "tasks:u1"))

	_, err := store.Get(ctx, "tasks:u1:10:0")
	require.ErrorIs(t, err, cache.ErrCacheMiss)
	_, err = store.Get(ctx, "tasks:u1:10:10")
	require.ErrorIs(t, err, cache.ErrCacheMiss)

	// Other users and other entities are untouched.
	_, err = store.Get(ctx, "tasks:u2:10:0")
	require.NoError(t, err)
	_, err = store.Get(ctx, "habits:u1")
	require.NoError(t, err)
}

func TestMemoryStoreIncrExpire(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := cache.NewMemoryStore(0)
	defer store.Close()

	n, err := store.Incr(ctx, "counter")
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	n, err = store.Incr(ctx, "counter")
	require.NoError(t, err)
	require.EqualValues(t, 2, n)

	require.NoError(t, store.Expire(ctx, "counter", time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	// Expired counter restarts the window.
	n, err = store.Incr(ctx, "counter")
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
}

func TestMemoryStoreCleanupLoop(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := cache.NewMemoryStore(10 * time.Millisecond)
	defer store.Close()

	require.NoError(t, store.Set(ctx, "k", []byte("v"), time.Millisecond))
	require.Eventually(t, func() bool {
		_, err := store.Get(ctx, "k")
		return err != nil
	}, time.Second, 5*time.Millisecond)
}
