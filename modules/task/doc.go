// Package task manages the user's to-do items. Reads go through the
// per-user rate limiter and the read-through cache, and sensitive fields
// (title, notes) are encrypted before they ever reach storage.
package task
