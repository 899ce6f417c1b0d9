package sessionkey

import (
	"context"
	"log/slog"

	"github.com/codingraft/FlowHaven/pkg/fieldcrypt"
)

// Status tags a Codec result so callers can tell a successful crypto
// operation from a plaintext passthrough without inspecting the value.
type Status string

const (
	// StatusEncrypted means the value was encrypted with the session key.
	StatusEncrypted Status = "encrypted"
	// StatusDecrypted means the value was decrypted with the session key.
	StatusDecrypted Status = "decrypted"
	// StatusDegraded means the value passed through unchanged because no key
	// was available or the crypto operation failed.
	StatusDegraded Status = "degraded"
)

// Result is the outcome of a field codec operation. Value always holds
// something usable; Reason is set only when Status is StatusDegraded.
type Result struct {
	Value  string
	Status Status
	Reason error
}

// Degraded reports whether the value passed through without crypto.
func (r Result) Degraded() bool {
	return r.Status == StatusDegraded
}

// Codec encrypts and decrypts single fields with whatever key is currently
// resident in the Store, recovering it from durable storage on demand.
//
// Both operations degrade to plaintext passthrough instead of failing: a
// missing key must not block writes, and one undecryptable field must not
// take down an entire list view. Degradations are logged so the condition is
// monitorable rather than silent.
type Codec struct {
	store *Store
	log   *slog.Logger
}

// NewCodec creates a field codec on top of the given session key store.
// Diagnostics go to the store's logger.
func NewCodec(store *Store) *Codec {
	return &Codec{store: store, log: store.log}
}

// EncryptField encrypts value under the current session key. If no key is
// resident it attempts recovery once; if still absent, the plaintext is
// returned unchanged with StatusDegraded.
func (c *Codec) EncryptField(ctx context.Context, value string) Result {
	key, ok := c.resolveKey(ctx)
	if !ok {
		c.log.WarnContext(ctx, "encrypting without session key, storing plaintext")
		return Result{Value: value, Status: StatusDegraded, Reason: ErrKeyUnavailable}
	}

	blob, err := fieldcrypt.Encrypt(value, key)
	if err != nil {
		c.log.ErrorContext(ctx, "field encryption failed, storing plaintext", "error", err)
		return Result{Value: value, Status: StatusDegraded, Reason: err}
	}
	return Result{Value: blob, Status: StatusEncrypted}
}

// DecryptField decrypts value with the current session key. If no key can be
// recovered, or the value fails authenticated decryption (wrong key,
// corrupted blob, or a historical plaintext row), the stored value is
// returned unchanged with StatusDegraded.
func (c *Codec) DecryptField(ctx context.Context, value string) Result {
	key, ok := c.resolveKey(ctx)
	if !ok {
		c.log.WarnContext(ctx, "decrypting without session key, returning stored value")
		return Result{Value: value, Status: StatusDegraded, Reason: ErrKeyUnavailable}
	}

	plain, err := fieldcrypt.Decrypt(value, key)
	if err != nil {
		c.log.WarnContext(ctx, "field decryption failed, returning stored value", "error", err)
		return Result{Value: value, Status: StatusDegraded, Reason: err}
	}
	return Result{Value: plain, Status: StatusDecrypted}
}

func (c *Codec) resolveKey(ctx context.Context) (*fieldcrypt.Key, bool) {
	if key, ok := c.store.Key(); ok {
		return key, true
	}
	if !c.store.Restore(ctx) {
		return nil, false
	}
	return c.store.Key()
}
