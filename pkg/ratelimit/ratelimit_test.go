package ratelimit_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/codingraft/FlowHaven/pkg/cache"
	"github.com/codingraft/FlowHaven/pkg/ratelimit"

	"github.com/stretchr/testify/require"
)

func newLimiter(t *testing.T, limit int, window time.Duration) *ratelimit.Limiter {
	t.Helper()
	store := cache.NewMemoryStore(0)
	t.Cleanup(store.Close)
	limiter, err := ratelimit.New(store, limit, window)
	require.NoError(t, err)
	return limiter
}

func TestNewValidation(t *testing.T) {
	t.Parallel()
	store := cache.NewMemoryStore(0)
	defer store.Close()

	tests := []struct {
		name   string
		store  cache.Store
		limit  int
		window time.Duration
		want   error
	}{
		{"nil store", nil, 3, time.Minute, ratelimit.ErrStoreRequired},
		{"zero limit", store, 0, time.Minute, ratelimit.ErrInvalidLimit},
		{"zero window", store, 3, 0, ratelimit.ErrInvalidWindow},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ratelimit.New(tt.store, tt.limit, tt.window)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestWindowLimiting(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	limiter := newLimiter(t, 3, 50*time.Millisecond)
	key := ratelimit.UserKey("entities", "u1")

	for i := 1; i <= 3; i++ {
		res := limiter.Allow(ctx, key)
		require.True(t, res.Allowed, "call %d must be allowed", i)
		require.Equal(t, 3-i, res.Remaining)
	}

	res := limiter.Allow(ctx, key)
	require.False(t, res.Allowed, "4th call in the window must be denied")
	require.Zero(t, res.Remaining)
	require.Positive(t, res.RetryAfter())

	// After the window elapses the counter restarts.
	time.Sleep(60 * time.Millisecond)
	res = limiter.Allow(ctx, key)
	require.True(t, res.Allowed)
	require.Equal(t, 2, res.Remaining)
}

func TestKeysAreIndependent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	limiter := newLimiter(t, 1, time.Minute)

	require.True(t, limiter.Allow(ctx, ratelimit.UserKey("entities", "u1")).Allowed)
	require.False(t, limiter.Allow(ctx, ratelimit.UserKey("entities", "u1")).Allowed)

	// A different user and a different scope are untouched.
	require.True(t, limiter.Allow(ctx, ratelimit.UserKey("entities", "u2")).Allowed)
	require.True(t, limiter.Allow(ctx, ratelimit.UserKey("writes", "u1")).Allowed)
	require.True(t, limiter.Allow(ctx, ratelimit.IPKey("entities", "10.0.0.1")).Allowed)
}

func TestFailOpenOnBackendError(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	limiter, err := ratelimit.New(erroringStore{}, 3, time.Minute)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		res := limiter.Allow(ctx, ratelimit.UserKey("entities", "u1"))
		require.True(t, res.Allowed, "backend errors must fail open")
	}
}

func TestReset(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	limiter := newLimiter(t, 1, time.Minute)
	key := ratelimit.IPKey("signup", "10.0.0.1")

	require.True(t, limiter.Allow(ctx, key).Allowed)
	require.False(t, limiter.Allow(ctx, key).Allowed)

	require.NoError(t, limiter.Reset(ctx, key))
	require.True(t, limiter.Allow(ctx, key).Allowed)
}

func TestKeyScheme(t *testing.T) {
	t.Parallel()
	require.Equal(t, "rl:entities:ip:10.0.0.1", ratelimit.IPKey("entities", "10.0.0.1"))
	require.Equal(t, "rl:entities:user:u1", ratelimit.UserKey("entities", "u1"))
}

func TestMiddleware(t *testing.T) {
	t.Parallel()
	limiter := newLimiter(t, 2, time.Minute)

	handler := ratelimit.Middleware(limiter, func(r *http.Request) string {
		return ratelimit.IPKey("api", r.RemoteAddr)
	})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	do := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	require.Equal(t, http.StatusOK, do().Code)
	require.Equal(t, http.StatusOK, do().Code)

	rec := do()
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.NotEmpty(t, rec.Header().Get("Retry-After"))
	require.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
}

func TestMiddlewareSkipsEmptyKey(t *testing.T) {
	t.Parallel()
	limiter := newLimiter(t, 1, time.Minute)

	handler := ratelimit.Middleware(limiter, func(r *http.Request) string {
		return ""
	})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	}
}

// erroringStore fails every operation, standing in for an unreachable
// backend.
type erroringStore struct{}

var errDown = errors.New("connection refused")

func (erroringStore) Get(ctx context.Context, key string) ([]byte, error) { return nil, errDown }
func (erroringStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return errDown
}
func (erroringStore) Delete(ctx context.Context, keys ...string) error        { return errDown }
func (erroringStore) DeletePrefix(ctx context.Context, prefix string) error   { return errDown }
func (erroringStore) Incr(ctx context.Context, key string) (int64, error)     { return 0, errDown }
func (erroringStore) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return errDown
}
func (erroringStore) Ping(ctx context.Context) error { return errDown }
