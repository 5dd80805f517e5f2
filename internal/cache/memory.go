package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto/v2"
)

// MemoryCache is an in-process cache backed by ristretto.
// Every entry costs 1, so maxEntries bounds the number of keys.
type MemoryCache struct {
	store *ristretto.Cache[string, []byte]
}

// NewMemoryCache creates an in-process cache holding up to maxEntries keys.
func NewMemoryCache(maxEntries int64) (*MemoryCache, error) {
	store, err := ristretto.NewCache(&ristretto.Config[string, []byte]{
		NumCounters:        maxEntries * 10,
		MaxCost:            maxEntries,
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create memory cache: %w", err)
	}
	return &MemoryCache{store: store}, nil
}

// Get implements Cache.
func (c *MemoryCache) Get(_ context.Context, key string, dst any) (bool, error) {
	data, ok := c.store.Get(key)
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("failed to decode cached value for %s: %w", key, err)
	}
	return true, nil
}

// Set implements Cache. The write is applied before Set returns so that a
// following Get observes it.
func (c *MemoryCache) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode value for %s: %w", key, err)
	}
	c.store.SetWithTTL(key, data, 1, ttl)
	c.store.Wait()
	return nil
}

// Ping implements Cache.
func (c *MemoryCache) Ping(_ context.Context) error {
	return nil
}

// Close implements Cache.
func (c *MemoryCache) Close() error {
	c.store.Close()
	return nil
}

// Backend implements Cache.
func (c *MemoryCache) Backend() string {
	return "memory"
}
