package handlers

import (
	"slices"
	"time"
)

// newestFirst orders list entries by timestamp, newest first. Entries with the
// same timestamp keep last-appended-first order. A nil list becomes empty.
func newestFirst[T any](items []T, at func(T) time.Time) []T {
	out := make([]T, len(items))
	copy(out, items)
	slices.Reverse(out)
	slices.SortStableFunc(out, func(a, b T) int {
		return at(b).Compare(at(a))
	})
	return out
}
