package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// defaultScanBatchSize bounds SCAN page size so prefix invalidation never
// blocks Redis the way KEYS would.
const defaultScanBatchSize = 1000

// RedisStore implements Store on top of a shared Redis backend.
type RedisStore struct {
	db            redis.UniversalClient
	scanBatchSize int64
}

// NewRedisStore wraps an established Redis client.
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{
		db:            client,
		scanBatchSize: defaultScanBatchSize,
	}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.db.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	return value, err
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.db.Set(ctx, key, value, ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.db.Del(ctx, keys...).Err()
}

// DeletePrefix removes all keys starting with prefix using SCAN batches.
func (s *RedisStore) DeletePrefix(ctx context.Context, prefix string) error {
	var cursor uint64
	for {
		batch, next, err := s.db.Scan(ctx, cursor, prefix+"*", s.scanBatchSize).Result()
		if err != nil {
			return err
		}
		if len(batch) > 0 {
			if err := s.db.Del(ctx, batch...).Err(); err != nil {
				return err
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

func (s *RedisStore) Incr(ctx context.Context, key string) (int64, error) {
	return s.db.Incr(ctx, key).Result()
}

func (s *RedisStore) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return s.db.Expire(ctx, key, ttl).Err()
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx).Err()
}
