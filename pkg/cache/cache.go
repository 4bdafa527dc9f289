// Package cache provides byte caches with expiration.
//
// The caches back short-lived artifacts such as download blobs. Three
// implementations share the [Cache] interface:
//   - [FileCache]: one JSON file per entry, for the CLI and single-node servers
//   - [MemoryCache]: process-local map, for development and tests
//   - [RedisCache]: Redis-backed, for multi-instance deployments
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys.
type Cache interface {
	// Get returns the value for key and whether it was found.
	// Expired entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}
