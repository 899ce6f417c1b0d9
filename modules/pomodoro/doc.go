// Package pomodoro records completed focus sessions and serves a cached
// seven-day feed per user.
package pomodoro
