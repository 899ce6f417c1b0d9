package ratelimit

import (
	"context"
	"log/slog"
	"time"

	"github.com/codingraft/FlowHaven/pkg/cache"
)

// Result contains the outcome of a rate limit check.
type Result struct {
	// Allowed indicates whether the request is allowed.
	Allowed bool

	// Limit is the maximum number of requests allowed in the window.
	Limit int

	// Remaining is the number of requests remaining in the current window.
	Remaining int

	// ResetAt is the time when the rate limit window resets.
	ResetAt time.Time
}

// RetryAfter returns how long to wait before the next request is allowed.
// Returns 0 if the current request was allowed.
func (r *Result) RetryAfter() time.Duration {
	if r.Allowed {
		return 0
	}
	return time.Until(r.ResetAt)
}

// Limiter is a counting-window rate limiter on top of the cache store. The
// first increment in a window establishes the key's expiry; the counter then
// accumulates until the window elapses.
//
// The limiter fails open: when the backend errors the request is allowed and
// the error logged, favoring availability over strict throttling.
type Limiter struct {
	store  cache.Store
	log    *slog.Logger
	limit  int
	window time.Duration
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithLogger sets the logger for fail-open diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(l *Limiter) {
		if log != nil {
			l.log = log
		}
	}
}

// New creates a limiter allowing limit requests per window.
func New(store cache.Store, limit int, window time.Duration, opts ...Option) (*Limiter, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}
	if window <= 0 {
		return nil, ErrInvalidWindow
	}

	l := &Limiter{
		store:  store,
		log:    slog.Default(),
		limit:  limit,
		window: window,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Allow checks and consumes one request slot for the given key. A rejected
// request is an ordinary result, not an error; backend errors fail open.
func (l *Limiter) Allow(ctx context.Context, key string) *Result {
	now := time.Now()

	count, err := l.store.Incr(ctx, key)
	if err != nil {
		l.log.WarnContext(ctx, "rate limit backend unavailable, failing open", "key", key, "error", err)
		return &Result{Allowed: true, Limit: l.limit, Remaining: l.limit, ResetAt: now.Add(l.window)}
	}

	// The first increment in a window owns the expiry.
	if count == 1 {
		if err := l.store.Expire(ctx, key, l.window); err != nil {
			l.log.WarnContext(ctx, "rate limit expiry not set", "key", key, "error", err)
		}
	}

	return &Result{
		Allowed:   count <= int64(l.limit),
		Limit:     l.limit,
		Remaining: max(0, l.limit-int(count)),
		ResetAt:   now.Add(l.window),
	}
}

// Reset clears the counter for the given key.
func (l *Limiter) Reset(ctx context.Context, key string) error {
	return l.store.Delete(ctx, key)
}
