package fieldcrypt

import "errors"

var (
	// Key and salt validation errors
	ErrInvalidKey  = errors.New("invalid key: must be 32 bytes")
	ErrInvalidSalt = errors.New("invalid salt: must be 16 bytes")

	// Encryption/decryption errors
	ErrEncryptionFailed  = errors.New("encryption failed")
	ErrDecryptionFailed  = errors.New("decryption failed")
	ErrInvalidCiphertext = errors.New("invalid ciphertext format")

	// Key derivation errors
	ErrKeyDerivationFailed = errors.New("key derivation failed")
)
