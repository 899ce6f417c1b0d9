// Package journal manages dated journal entries. Content is encrypted
// unconditionally, unlike the optional note fields elsewhere.
package journal
