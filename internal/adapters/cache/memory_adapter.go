package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/zatekoja/satisfaction-feedback/internal/domain/providers"
)

// MemoryAdapter implements the CacheProvider interface in process. Values
// do not survive a restart.
type MemoryAdapter struct {
	store *gocache.Cache
}

// NewMemoryAdapter creates an in-process cache that sweeps expired items
// every cleanupInterval.
func NewMemoryAdapter(cleanupInterval time.Duration) *MemoryAdapter {
	return &MemoryAdapter{store: gocache.New(gocache.NoExpiration, cleanupInterval)}
}

var _ providers.CacheProvider = (*MemoryAdapter)(nil)

// Get retrieves a value from cache
func (a *MemoryAdapter) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := a.store.Get(key)
	if !ok {
		return nil, providers.ErrCacheMiss
	}
	b, ok := v.([]byte)
	if !ok {
		return nil, providers.ErrCacheMiss
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

// Set stores a value; a non-positive expiration keeps it until deleted
func (a *MemoryAdapter) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	a.store.Set(key, stored, ttl)
	return nil
}

// Delete removes a value from cache
func (a *MemoryAdapter) Delete(_ context.Context, key string) error {
	a.store.Delete(key)
	return nil
}
