package service

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Cache.Get when the key is absent or its entry
// has expired.
var ErrCacheMiss = errors.New("cache miss")

// Cache is an explicit TTL cache with insertion-time expiry. Entries never
// refresh themselves; mutating operations invalidate the keys they affect by
// calling Delete. Get on an expired entry behaves exactly like a miss.
type Cache interface {
	// Get returns the cached value for key or ErrCacheMiss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key for the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes the given keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error

	// Close releases any resources held by the cache.
	Close() error
}
