// Package cache provides the read-through cache sitting in front of per-user
// entity queries, with transparent fallback from a shared Redis backend to an
// in-process store.
//
// # Architecture
//
//   - Store — the uniform backend interface (get/set/delete/delete-by-prefix/
//     incr/expire). Two implementations: RedisStore over go-redis and
//     MemoryStore over a TTL map.
//   - FallbackStore — a circuit breaker wrapping both: the Redis backend is
//     demoted to the in-process store after N consecutive failures, then
//     re-probed through disconnected → connecting → connected with a bounded
//     number of attempts before the fallback becomes permanent.
//   - Cache + Query — the read-through layer. On hit the cached JSON is
//     deserialized and returned; on miss (or any backend error, logged and
//     swallowed) the query function runs and its result is written back
//     best-effort under the entity's TTL.
//
// The cache is never a hard dependency: a slow or dead backend degrades to
// "always miss", never to a failed request. The Incr/Expire operations exist
// so the rate limiter shares the same backend and the same fallback behavior.
//
// # Key scheme
//
// Paginated entities cache under "<entity>:<userID>:<limit>:<offset>",
// non-paginated ones under "<entity>:<userID>". Invalidation always removes
// the whole "<entity>:<userID>" prefix so no stale pagination variant
// survives a write.
//
// # Usage
//
//	store := cache.NewFallbackStore(cache.NewRedisStore(client), cache.NewMemoryStore(time.Minute))
//	c := cache.New(store, cache.WithTTL("tasks", 2*time.Minute))
//
//	tasks, err := cache.Query(ctx, c, "tasks", cache.Key("tasks", userID, 50, 0),
//	    func(ctx context.Context) ([]Task, error) {
//	        return repo.List(ctx, userID, 50, 0)
//	    })
//
//	// after any task write:
//	c.InvalidateEntity(ctx, "tasks", userID)
package cache
