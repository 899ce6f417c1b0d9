package ratelimit

import "errors"

var (
	ErrInvalidLimit  = errors.New("invalid limit")
	ErrInvalidWindow = errors.New("invalid window")
	ErrStoreRequired = errors.New("store is required")
)
