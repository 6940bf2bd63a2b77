// Package cache stores encoded concatenation results between runs.
//
// The CLI uses a [FileCache] under the user cache directory so that running
// the same command twice on unchanged inputs skips decoding and encoding
// entirely. Keys are derived from the SHA-256 of every input file plus every
// option that changes the output bytes; see [Keyer].
//
// A [NullCache] disables caching without changing call sites.
package cache

import (
	"context"
	"time"
)

// TTLOutput is how long an encoded output stays valid.
const TTLOutput = 7 * 24 * time.Hour

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is a miss,
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}
