package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"
)

// Cache is the read-through layer in front of per-user entity queries. It
// owns per-entity TTLs and the logger for swallowed backend errors.
type Cache struct {
	store      Store
	log        *slog.Logger
	ttls       map[string]time.Duration
	defaultTTL time.Duration
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithTTL sets the TTL for one entity type.
func WithTTL(entity string, ttl time.Duration) CacheOption {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttls[entity] = ttl
		}
	}
}

// WithDefaultTTL sets the TTL used for entities without a dedicated one.
func WithDefaultTTL(ttl time.Duration) CacheOption {
	return func(c *Cache) {
		if ttl > 0 {
			c.defaultTTL = ttl
		}
	}
}

// WithCacheLogger sets the logger for swallowed cache errors.
func WithCacheLogger(log *slog.Logger) CacheOption {
	return func(c *Cache) {
		if log != nil {
			c.log = log
		}
	}
}

// New creates a read-through cache over the given store.
func New(store Store, opts ...CacheOption) *Cache {
	c := &Cache{
		store:      store,
		log:        slog.Default(),
		ttls:       make(map[string]time.Duration),
		defaultTTL: 5 * time.Minute,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TTL returns the configured TTL for an entity type.
func (c *Cache) TTL(entity string) time.Duration {
	if ttl, ok := c.ttls[entity]; ok {
		return ttl
	}
	return c.defaultTTL
}

// Store exposes the underlying store, shared with the rate limiter.
func (c *Cache) Store() Store {
	return c.store
}

// InvalidateEntity removes every cached page of one user's entity queries so
// the next read goes to the source of truth. It must run synchronously after
// the persistence write of any create/update/delete. Backend errors are
// logged and swallowed.
func (c *Cache) InvalidateEntity(ctx context.Context, entity, userID string) {
	if err := c.store.DeletePrefix(ctx, EntityPrefix(entity, userID)); err != nil {
		c.log.WarnContext(ctx, "cache invalidation failed",
			"entity", entity, "user_id", userID, "error", err)
	}
}

// Query is the read-through path: serve from cache on hit; on miss or any
// backend error, run fn, best-effort write the fresh result back under key
// with the entity's TTL, and return the fresh result either way.
//
// The cache is never a hard dependency — every cache error is logged and
// swallowed. Errors from fn itself propagate untouched.
func Query[T any](ctx context.Context, c *Cache, entity, key string, fn func(context.Context) (T, error)) (T, error) {
	var zero T

	cached, err := c.store.Get(ctx, key)
	if err == nil {
		var result T
		if err := json.Unmarshal(cached, &result); err == nil {
			return result, nil
		}
		// Undecodable entry: drop it and fall through to the source.
		c.log.WarnContext(ctx, "discarding undecodable cache entry", "key", key, "error", err)
		_ = c.store.Delete(ctx, key)
	} else if !errors.Is(err, ErrCacheMiss) {
		c.log.WarnContext(ctx, "cache read failed", "key", key, "error", err)
	}

	result, err := fn(ctx)
	if err != nil {
		return zero, err
	}

	if data, err := json.Marshal(result); err == nil {
		if err := c.store.Set(ctx, key, data, c.TTL(entity)); err != nil {
			c.log.WarnContext(ctx, "cache write failed", "key", key, "error", err)
		}
	}

	return result, nil
}
