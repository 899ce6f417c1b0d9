package cache

import (
	"context"
	"time"
)

// Store is the uniform interface in front of the cache backend. Reads and
// writes go through it regardless of whether the shared Redis backend or the
// in-process fallback is active.
//
// Incr and Expire exist so the rate limiter can share the same backend and
// the same fallback behavior as the read-through cache.
type Store interface {
	// Get returns the value stored under key, or ErrCacheMiss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key with the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes the given keys. Missing keys are ignored.
	Delete(ctx context.Context, keys ...string) error

	// DeletePrefix removes every key that starts with prefix.
	DeletePrefix(ctx context.Context, prefix string) error

	// Incr atomically increments the integer counter under key and returns
	// the new value. A missing counter starts at zero.
	Incr(ctx context.Context, key string) (int64, error)

	// Expire sets the TTL for an existing key.
	Expire(ctx context.Context, key string, ttl time.Duration) error

	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error
}
