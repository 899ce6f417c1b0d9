package sessionkey

import "errors"

var (
	// ErrNotFound indicates no persisted value exists under the given storage key
	ErrNotFound = errors.New("sessionkey.not_found")

	// ErrKeyUnavailable indicates no key is resident and recovery failed
	ErrKeyUnavailable = errors.New("sessionkey.key_unavailable")

	// ErrNoStorage indicates the store was constructed without durable storage
	ErrNoStorage = errors.New("sessionkey.no_storage")

	// ErrCorruptStorage indicates the persisted key material could not be decoded
	ErrCorruptStorage = errors.New("sessionkey.corrupt_storage")
)
