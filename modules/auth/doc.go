// Package auth bridges the external identity provider into the application:
// it carries the authenticated user id on the request context and owns the
// per-user encryption salt on the profile record.
//
// Authentication itself (credentials, session cookies) lives in the identity
// service; this package only consumes the stable user id it issues. The salt
// is provisioned once at signup, stored base64-encoded in the single
// canonical users.encryption_salt column, and never rotated.
package auth
