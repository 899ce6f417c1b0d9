package cache

import "fmt"

// Key builds the cache key for a paginated per-user entity query:
// "<entity>:<userID>:<limit>:<offset>".
func Key(entity, userID string, limit, offset int) string {
	return fmt.Sprintf("%s:%s:%d:%d", entity, userID, limit, offset)
}

// EntityKey builds the cache key for a non-paginated per-user entity query:
// "<entity>:<userID>".
func EntityKey(entity, userID string) string {
	return entity + ":" + userID
}

// EntityPrefix is the invalidation prefix covering every pagination variant
// of one user's entity queries. Writes to an entity must clear this whole
// prefix, never individual pages.
func EntityPrefix(entity, userID string) string {
	return entity + ":" + userID
}
