package fieldcrypt

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"
)

// NonceSize is the size of the AES-GCM nonce in bytes.
const NonceSize = 12

// Encrypt encrypts a single field value with the given key and returns a
// base64-encoded blob in the format: salt[16] + nonce[12] + ciphertext.
//
// A fresh salt and nonce are generated on every call, so encrypting the same
// plaintext twice yields different blobs. The per-value salt is carried for
// format stability and is not consumed by the cipher itself.
func Encrypt(plaintext string, key *Key) (string, error) {
	if key == nil || key.aead == nil {
		return "", ErrInvalidKey
	}

	buf := make([]byte, SaltSize+NonceSize)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return "", errors.Join(ErrEncryptionFailed, err)
	}
	nonce := buf[SaltSize:]

	// Seal appends ciphertext+tag after the salt+nonce header.
	packed := key.aead.Seal(buf, nonce, []byte(plaintext), nil)

	return base64.StdEncoding.EncodeToString(packed), nil
}

// Decrypt reverses Encrypt. Authenticated decryption rejects tampered or
// truncated blobs and wrong keys with ErrDecryptionFailed; garbage plaintext
// is never returned.
func Decrypt(blob string, key *Key) (string, error) {
	if key == nil || key.aead == nil {
		return "", ErrInvalidKey
	}

	packed, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return "", errors.Join(ErrInvalidCiphertext, err)
	}
	if len(packed) < SaltSize+NonceSize {
		return "", ErrInvalidCiphertext
	}

	nonce := packed[SaltSize : SaltSize+NonceSize]
	ciphertext := packed[SaltSize+NonceSize:]

	plaintext, err := key.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", errors.Join(ErrDecryptionFailed, err)
	}

	return string(plaintext), nil
}
