package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/codingraft/FlowHaven/pkg/cache"

	"github.com/stretchr/testify/require"
)

type testTask struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// failingStore errors on every operation, standing in for a dead backend.
type failingStore struct{}

var errBackendDown = errors.New("backend down")

func (failingStore) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, errBackendDown
}
func (failingStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return errBackendDown
}
func (failingStore) Delete(ctx context.Context, keys ...string) error { return errBackendDown }
func (failingStore) DeletePrefix(ctx context.Context, prefix string) error {
	return errBackendDown
}
func (failingStore) Incr(ctx context.Context, key string) (int64, error) {
	return 0, errBackendDown
}
func (failingStore) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return errBackendDown
}
func (failingStore) Ping(ctx context.Context) error { return errBackendDown }

func newTestCache(t *testing.T, opts ...cache.CacheOption) *cache.Cache {
	t.Helper()
	store := cache.NewMemoryStore(0)
	t.Cleanup(store.Close)
	return cache.New(store, opts...)
}

func TestQueryReadThrough(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := newTestCache(t)

	calls := 0
	fn := func(ctx context.Context) ([]testTask, error) {
		calls++
		return []testTask{{ID: "t1", Title: "Buy milk"}}, nil
	}

	key := cache.Key("tasks", "u1", 50, 0)

	first, err := cache.Query(ctx, c, "tasks", key, fn)
	require.NoError(t, err)
	require.Equal(t, 1, calls, "first call must hit the source")
	require.Equal(t, "Buy milk", first[0].Title)

	second, err := cache.Query(ctx, c, "tasks", key, fn)
	require.NoError(t, err)
	require.Equal(t, 1, calls, "second call must be served from cache")
	require.Equal(t, first, second)
}

func TestQueryExpiredEntryRefetches(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := newTestCache(t, cache.WithTTL("tasks", time.Millisecond))

	calls := 0
	fn := func(ctx context.Context) (int, error) {
		calls++
		return calls, nil
	}

	key := cache.Key("tasks", "u1", 10, 0)
	_, err := cache.Query(ctx, c, "tasks", key, fn)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	got, err := cache.Query(ctx, c, "tasks", key, fn)
	require.NoError(t, err)
	require.Equal(t, 2, got, "entry past TTL must be refetched")
}

func TestQuerySourceErrorPropagates(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := newTestCache(t)

	errSource := errors.New("relation does not exist")
	_, err := cache.Query(ctx, c, "tasks", "tasks:u1:10:0", func(ctx context.Context) ([]testTask, error) {
		return nil, errSource
	})
	require.ErrorIs(t, err, errSource)
}

func TestQuerySurvivesDeadBackend(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := cache.New(failingStore{})

	calls := 0
	fn := func(ctx context.Context) (string, error) {
		calls++
		return "fresh", nil
	}

	got, err := cache.Query(ctx, c, "tasks", "tasks:u1:10:0", fn)
	require.NoError(t, err, "cache failures must never surface")
	require.Equal(t, "fresh", got)
	require.Equal(t, 1, calls)

	// Every call degrades to a miss against a dead backend.
	_, err = cache.Query(ctx, c, "tasks", "tasks:u1:10:0", fn)
	require.NoError(t, err)
	require.Equal(t, 2, calls)
}

func TestInvalidateEntityClearsAllPages(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := newTestCache(t)

	calls := 0
	fn := func(ctx context.Context) (int, error) {
		calls++
		return calls, nil
	}

	pages := []string{
		cache.Key("tasks", "u1", 10, 0),
		cache.Key("tasks", "u1", 10, 10),
		cache.Key("tasks", "u1", 50, 0),
	}
	for _, key := range pages {
		_, err := cache.Query(ctx, c, "tasks", key, fn)
		require.NoError(t, err)
	}
	require.Equal(t, 3, calls)

	c.InvalidateEntity(ctx, "tasks", "u1")

	for _, key := range pages {
		_, err := cache.Query(ctx, c, "tasks", key, fn)
		require.NoError(t, err)
	}
	require.Equal(t, 6, calls, "every pagination variant must be refetched after invalidation")
}

func TestInvalidateEntityIsScopedPerUser(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := newTestCache(t)

	calls := map[string]int{}
	query := func(user string) (int, error) {
		_, err := cache.Query(ctx, c, "tasks", cache.Key("tasks", user, 10, 0),
			func(ctx context.Context) (int, error) {
				calls[user]++
				return calls[user], nil
			})
		return calls[user], err
	}

	_, err := query("u1")
	require.NoError(t, err)
	_, err = query("u2")
	require.NoError(t, err)

	c.InvalidateEntity(ctx, "tasks", "u1")

	_, err = query("u1")
	require.NoError(t, err)
	_, err = query("u2")
	require.NoError(t, err)

	require.Equal(t, 2, calls["u1"], "u1 must be refetched after invalidation")
	require.Equal(t, 1, calls["u2"], "u2 must stay cached, invalidation is per user")
}

func TestKeyScheme(t *testing.T) {
	t.Parallel()

	require.Equal(t, "tasks:u1:50:100", cache.Key("tasks", "u1", 50, 100))
	require.Equal(t, "pomodoro:u1", cache.EntityKey("pomodoro", "u1"))
	require.Equal(t, "tasks:u1", cache.EntityPrefix("tasks", "u1"))
}
