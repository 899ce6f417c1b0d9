// Package sessionkey owns the lifecycle of the per-session field encryption
// key: uninitialized → keyed → cleared.
//
// On login the key derived from the user's password is installed with
// Store.Set, which also persists the exported key material and the user's
// salt into durable storage so that an app restart can recover the key with
// Store.Restore instead of re-prompting for the password. Logout must call
// Store.Clear, which wipes both the resident key and the persisted pair.
//
// The Codec facade encrypts and decrypts single fields against whatever key
// is resident, recovering it from storage on demand. It never fails: when no
// key is available or a blob cannot be decrypted, the value passes through
// unchanged and the result is tagged StatusDegraded. This availability-over-
// confidentiality tradeoff is deliberate — it keeps list views rendering when
// one field is bad and tolerates historical plaintext rows — and every
// degradation is logged so it can be monitored.
//
// # Usage
//
//	storage, _ := sessionkey.NewFileStorage(path)
//	store := sessionkey.New(storage, sessionkey.WithLogger(log))
//
//	// login
//	key, _ := fieldcrypt.DeriveKey(password, salt)
//	_ = store.Set(ctx, key, salt)
//
//	// app start: must complete before the first DecryptField
//	_ = store.Restore(ctx)
//
//	codec := sessionkey.NewCodec(store)
//	res := codec.DecryptField(ctx, storedBlob)
//	if res.Degraded() {
//	    // res.Value is the raw stored value; res.Reason says why
//	}
//
//	// logout
//	_ = store.Clear(ctx)
//
// The Store is an injected dependency, not package-level state: construct one
// per authenticated session (or per test) and pass it where needed.
package sessionkey
