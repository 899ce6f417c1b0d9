package fieldcrypt

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// KeySize is the size of the derived symmetric key in bytes (AES-256).
	KeySize = 32

	// SaltSize is the size of key-derivation and per-value salts in bytes.
	SaltSize = 16

	// Iterations is the PBKDF2 iteration count. Deliberately slow to resist
	// offline brute-force of weak passwords.
	Iterations = 100_000
)

// Key is an opaque symmetric key handle usable with Encrypt and Decrypt.
// The raw material is not exposed except through Export.
type Key struct {
	material []byte
	aead     cipher.AEAD
}

// DeriveKey derives a symmetric key from a password and a 16-byte salt using
// PBKDF2-SHA256. Deterministic for a fixed (password, salt) pair.
func DeriveKey(password string, salt []byte) (*Key, error) {
	if len(salt) != SaltSize {
		return nil, ErrInvalidSalt
	}

	material := pbkdf2.Key([]byte(password), salt, Iterations, KeySize, sha256.New)
	key, err := ImportKey(material)
	if err != nil {
		return nil, errors.Join(ErrKeyDerivationFailed, err)
	}
	return key, nil
}

// ImportKey wraps raw 32-byte key material into a usable key handle.
func ImportKey(material []byte) (*Key, error) {
	if len(material) != KeySize {
		return nil, ErrInvalidKey
	}

	block, err := aes.NewCipher(material)
	if err != nil {
		return nil, errors.Join(ErrInvalidKey, err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, errors.Join(ErrInvalidKey, err)
	}

	m := make([]byte, KeySize)
	copy(m, material)
	return &Key{material: m, aead: aead}, nil
}

// Export returns a copy of the raw key material for persistence.
// The returned bytes can be re-imported with ImportKey.
func (k *Key) Export() []byte {
	out := make([]byte, len(k.material))
	copy(out, k.material)
	return out
}

// GenerateSalt returns a fresh random 16-byte salt. Fails loudly if the
// entropy source is unavailable; a zeroed salt is never returned.
func GenerateSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, errors.Join(ErrKeyDerivationFailed, err)
	}
	return salt, nil
}
