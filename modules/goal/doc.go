// Package goal manages longer-term objectives with percentage progress.
package goal
