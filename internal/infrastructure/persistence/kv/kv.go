// Package kv provides the key-value media the entity store persists its
// collections in. Every medium stores opaque byte values under string keys
// and reports absence separately from failure.
package kv

import (
	"context"
	"errors"
)

// ErrClosed is returned by operations on a closed store
var ErrClosed = errors.New("kv: store closed")

// Store is a key-value medium
type Store interface {
	// Get returns the value stored under key. A missing key yields
	// (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases the medium's resources.
	Close() error
}
