// Package habit tracks recurring practices with streak counting.
// It follows the same composition as the task module, plus a CheckIn
// operation that bumps the streak atomically in the database.
package habit
