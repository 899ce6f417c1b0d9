package cache

import "errors"

var (
	// ErrCacheMiss indicates no live entry exists under the requested key.
	ErrCacheMiss = errors.New("cache miss")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("cache store closed")
)
