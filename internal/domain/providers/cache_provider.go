package providers

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Get when the key is absent or expired.
var ErrCacheMiss = errors.New("cache: key not found")

// CacheProvider is a byte-oriented key/value store with per-key expiry.
// It holds admin sessions.
type CacheProvider interface {
	// Get returns ErrCacheMiss for absent or expired keys. Any other error
	// means the backend could not be reached.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value for ttl; a non-positive ttl keeps it until deleted.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	Delete(ctx context.Context, key string) error
}
