// Package kv holds the durable, string-keyed media the planner persists into.
//
// Every backend enforces an optional capacity ceiling measured as the sum of
// len(key)+len(value) over all entries. A write that would cross the ceiling
// fails with ErrQuotaExceeded and leaves the previous value untouched.
package kv

import (
	"context"
	"errors"
)

// ErrQuotaExceeded is returned when a write would exceed the store capacity.
var ErrQuotaExceeded = errors.New("kv: quota exceeded")

// ErrClosed is returned when a store is used after Close.
var ErrClosed = errors.New("kv: store closed")

// Store is a synchronous string-keyed medium.
type Store interface {
	// Get returns the value stored under key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	// SetMany writes every entry or none of them.
	SetMany(ctx context.Context, entries map[string]string) error
	// Remove deletes key. Removing an absent key is a no-op.
	Remove(ctx context.Context, key string) error
	// Keys returns every key in ascending order.
	Keys(ctx context.Context) ([]string, error)
	Close() error
}

func entrySize(key, value string) int64 {
	return int64(len(key) + len(value))
}

// fits reports whether replacing the entries in delta keeps usage within capacity.
// current maps a key to its existing size, or is missing the key when absent.
func fits(capacity, used int64, current map[string]int64, delta map[string]string) bool {
	if capacity <= 0 {
		return true
	}
	next := used
	for k, v := range delta {
		next -= current[k]
		next += entrySize(k, v)
	}
	return next <= capacity
}
