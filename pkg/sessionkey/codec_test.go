package sessionkey_test

import (
	"context"
	"testing"

	"github.com/codingraft/FlowHaven/pkg/fieldcrypt"
	"github.com/codingraft/FlowHaven/pkg/sessionkey"

	"github.com/stretchr/testify/require"
)

func TestCodecRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := sessionkey.New(sessionkey.NewMemoryStorage())
	key, salt := deriveTestKey(t)
	require.NoError(t, store.Set(ctx, key, salt))

	codec := sessionkey.NewCodec(store)

	enc := codec.EncryptField(ctx, "Buy milk")
	require.Equal(t, sessionkey.StatusEncrypted, enc.Status)
	require.NotEqual(t, "Buy milk", enc.Value)

	dec := codec.DecryptField(ctx, enc.Value)
	require.Equal(t, sessionkey.StatusDecrypted, dec.Status)
	require.Equal(t, "Buy milk", dec.Value)
}

func TestCodecRecoversKeyFromStorage(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	storage := sessionkey.NewMemoryStorage()
	key, salt := deriveTestKey(t)

	seed := sessionkey.New(storage)
	require.NoError(t, seed.Set(ctx, key, salt))
	blob, err := fieldcrypt.Encrypt("secret goal", key)
	require.NoError(t, err)

	// Fresh store with no resident key: the codec must restore on demand.
	store := sessionkey.New(storage)
	require.False(t, store.Has())

	dec := sessionkey.NewCodec(store).DecryptField(ctx, blob)
	require.Equal(t, sessionkey.StatusDecrypted, dec.Status)
	require.Equal(t, "secret goal", dec.Value)
	require.True(t, store.Has())
}

func TestCodecDegradesWithoutKey(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := sessionkey.New(sessionkey.NewMemoryStorage())
	codec := sessionkey.NewCodec(store)

	enc := codec.EncryptField(ctx, "Buy milk")
	require.True(t, enc.Degraded())
	require.Equal(t, "Buy milk", enc.Value)
	require.ErrorIs(t, enc.Reason, sessionkey.ErrKeyUnavailable)

	dec := codec.DecryptField(ctx, "whatever was stored")
	require.True(t, dec.Degraded())
	require.Equal(t, "whatever was stored", dec.Value)
	require.ErrorIs(t, dec.Reason, sessionkey.ErrKeyUnavailable)
}

func TestCodecDegradesOnUndecryptableValue(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := sessionkey.New(sessionkey.NewMemoryStorage())
	key, salt := deriveTestKey(t)
	require.NoError(t, store.Set(ctx, key, salt))

	codec := sessionkey.NewCodec(store)

	tests := []struct {
		name   string
		stored string
	}{
		{"historical plaintext row", "never was encrypted"},
		{"corrupted blob", "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA="},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			dec := codec.DecryptField(ctx, tt.stored)
			require.True(t, dec.Degraded())
			require.Equal(t, tt.stored, dec.Value, "stored value must pass through unchanged")
			require.Error(t, dec.Reason)
		})
	}
}

func TestCodecDegradesUnderWrongKey(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	key1, _ := deriveTestKey(t)
	blob, err := fieldcrypt.Encrypt("private note", key1)
	require.NoError(t, err)

	salt2, err := fieldcrypt.GenerateSalt()
	require.NoError(t, err)
	key2, err := fieldcrypt.DeriveKey("другой пароль", salt2)
	require.NoError(t, err)

	store := sessionkey.New(sessionkey.NewMemoryStorage())
	require.NoError(t, store.Set(ctx, key2, salt2))

	dec := sessionkey.NewCodec(store).DecryptField(ctx, blob)
	require.True(t, dec.Degraded())
	require.Equal(t, blob, dec.Value)
	require.ErrorIs(t, dec.Reason, fieldcrypt.ErrDecryptionFailed)
}
