// Package cache defines the vendor-agnostic cache interface used to keep
// API responses warm between calls. Implementations live in the memory and
// redis subpackages.
package cache

import (
	"context"
	"time"
)

// Cache is the storage contract for cached API responses.
// All implementations must be thread-safe and context-aware.
type Cache interface {
	// Get retrieves a value by key.
	// Returns ErrNotFound if the key doesn't exist or has expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with the specified TTL, overwriting any
	// existing value. A ttl of 0 stores the value without expiration.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// DeletePrefix removes every key that starts with prefix and
	// returns how many keys were removed. Used to invalidate all
	// cached pages of a resource at once.
	DeletePrefix(ctx context.Context, prefix string) (int64, error)

	// Health checks the health of the cache backend.
	// Should be fast and safe to call frequently.
	Health(ctx context.Context) error

	// Close releases resources. The cache must not be used afterwards.
	Close() error
}
