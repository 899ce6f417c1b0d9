package sessionkey

import (
	"context"
	"encoding/base64"
	"log/slog"
	"sync"

	"github.com/codingraft/FlowHaven/pkg/fieldcrypt"
)

// Namespaced storage keys for the persisted key material. The exported key
// and the salt are always written and erased as a pair.
const (
	storageKeyEncKey = "flowhaven:session:enc_key"
	storageKeySalt   = "flowhaven:session:enc_salt"
)

// Store holds the current session's derived encryption key for one
// authenticated user on one device. At most one key is resident at a time;
// it is installed on login, recovered from durable storage on app start, and
// dropped on logout.
//
// The store is safe for concurrent use: encrypt/decrypt paths only read the
// resident key, while Set/Restore/Clear mutate it.
type Store struct {
	mu      sync.RWMutex
	key     *fieldcrypt.Key
	storage Storage
	log     *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for recovery diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// New creates a session key store backed by the given durable storage.
func New(storage Storage, opts ...Option) *Store {
	s := &Store{
		storage: storage,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Set installs key as the current session key and persists the exported key
// material together with the user's salt, so a later Restore can recover the
// key without re-prompting for the password.
func (s *Store) Set(ctx context.Context, key *fieldcrypt.Key, salt []byte) error {
	if s.storage == nil {
		return ErrNoStorage
	}

	s.mu.Lock()
	s.key = key
	s.mu.Unlock()

	if err := s.storage.Set(ctx, storageKeyEncKey, base64.StdEncoding.EncodeToString(key.Export())); err != nil {
		return err
	}
	return s.storage.Set(ctx, storageKeySalt, base64.StdEncoding.EncodeToString(salt))
}

// Restore recovers the session key from durable storage. It is idempotent:
// if a key is already resident it returns true without touching storage.
// Returns false when nothing was persisted or the persisted material cannot
// be re-imported.
//
// Restore must complete before the first DecryptField of a session, otherwise
// encrypted fields pass through as ciphertext.
func (s *Store) Restore(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.key != nil {
		return true
	}
	if s.storage == nil {
		return false
	}

	encoded, err := s.storage.Get(ctx, storageKeyEncKey)
	if err != nil {
		return false
	}

	material, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		s.log.WarnContext(ctx, "persisted session key is corrupt", "error", err)
		return false
	}

	key, err := fieldcrypt.ImportKey(material)
	if err != nil {
		s.log.WarnContext(ctx, "persisted session key cannot be imported", "error", err)
		return false
	}

	s.key = key
	return true
}

// Clear drops the resident key and erases both persisted entries. It must be
// called on logout; leaving key material behind would let the next user of
// the device recover the previous user's key.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.key = nil
	s.mu.Unlock()

	if s.storage == nil {
		return nil
	}
	if err := s.storage.Delete(ctx, storageKeyEncKey); err != nil {
		return err
	}
	return s.storage.Delete(ctx, storageKeySalt)
}

// Has reports whether a key is resident. It never attempts recovery.
func (s *Store) Has() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.key != nil
}

// Key returns the resident key, if any. It never attempts recovery.
func (s *Store) Key() (*fieldcrypt.Key, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.key, s.key != nil
}

// Salt returns the persisted user salt, if present.
func (s *Store) Salt(ctx context.Context) ([]byte, error) {
	if s.storage == nil {
		return nil, ErrNoStorage
	}
	encoded, err := s.storage.Get(ctx, storageKeySalt)
	if err != nil {
		return nil, err
	}
	salt, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, ErrCorruptStorage
	}
	return salt, nil
}
