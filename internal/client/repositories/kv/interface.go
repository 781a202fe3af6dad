// Package kv is the keyed byte store holding the JSON documents of gophtodo.
// The persistent tier lives in SQLite, the transient tier in process memory.
package kv

import (
	"context"
)

// UpdateFunc receives the current value of a key (nil when absent) and
// returns the value to store. Returning a nil slice leaves the key untouched.
type UpdateFunc func(old []byte) ([]byte, error)

// Repository is a flat string-keyed store. Get returns (nil, nil) for a
// missing key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error

	// Clear removes every key.
	Clear(ctx context.Context) error

	// Update performs an atomic read-modify-write of key. If fn fails
	// nothing is written and its error is returned unchanged.
	Update(ctx context.Context, key string, fn UpdateFunc) error
}
