package cache

import (
	"context"
	"time"
)

// BasicOps defines the key-value operations the service needs from a cache.
// The abstraction keeps business logic independent of the concrete backend
// and lets tests substitute an in-process implementation.
type BasicOps interface {
	// Get retrieves the value for the given key.
	// A missing key returns "" with a nil error.
	Get(ctx context.Context, key string) (string, error)

	// Set stores a key-value pair with optional TTL.
	// If ttl is 0, the key will not expire.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Del deletes one or more keys
	Del(ctx context.Context, keys ...string) error

	// Incr increments the integer value of a key by 1
	Incr(ctx context.Context, key string) (int64, error)

	// Expire sets a timeout on a key
	Expire(ctx context.Context, key string, ttl time.Duration) error
}

// Cache is BasicOps plus connection lifecycle.
type Cache interface {
	BasicOps

	// Ping verifies the cache connection is alive
	Ping(ctx context.Context) error

	// Close closes the cache connection
	Close() error
}
