// Package fieldcrypt provides end-to-end encryption for individual string
// fields before they reach the persistence layer.
//
// A symmetric key is derived from the user's password and a per-user salt
// using PBKDF2-SHA256 with 100,000 iterations, and used with AES-256 in GCM
// mode to protect single values (task titles, notes, journal content).
//
// # Wire format
//
// Encrypted values are stored as base64(StdEncoding) of:
//
//	salt[16] + nonce[12] + ciphertext
//
// The salt and nonce are freshly generated per call, so two encryptions of
// the same plaintext never produce the same blob. This format is stable:
// changing it is a breaking migration for every previously stored field.
//
// # Usage
//
//	salt, _ := fieldcrypt.GenerateSalt()
//	key, _ := fieldcrypt.DeriveKey("correct horse battery staple", salt)
//
//	blob, err := fieldcrypt.Encrypt("Buy milk", key)
//	if err != nil {
//	    // handle error
//	}
//
//	plain, err := fieldcrypt.Decrypt(blob, key)
//	if err != nil {
//	    // wrong key, tampered or truncated blob
//	}
//
// # Error Handling
//
// All public functions return rich errors that wrap a sentinel package error
// such as ErrDecryptionFailed or ErrInvalidCiphertext. Use errors.Is to match
// against these sentinels. Authenticated decryption guarantees that a wrong
// key or altered ciphertext fails loudly rather than yielding garbage.
package fieldcrypt
