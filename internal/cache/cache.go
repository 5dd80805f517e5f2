// Package cache provides the short-TTL key-value store that sits in front of
// the market-data API. Values are stored as JSON so the in-process and Redis
// backends behave identically.
package cache

import (
	"context"
	"time"
)

// Cache is a capacity and time bounded key-value store.
type Cache interface {
	// Get decodes the value stored under key into dst.
	// It reports false, nil on a miss or an expired entry.
	Get(ctx context.Context, key string, dst any) (bool, error)
	// Set stores value under key for ttl.
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error
	// Close releases the backend's resources.
	Close() error
	// Backend names the implementation, for health and version output.
	Backend() string
}

// QuoteKey returns the cache key for a normalized symbol's quote.
func QuoteKey(symbol string) string {
	return "quote:" + symbol
}

// MetricsKey returns the cache key for a normalized symbol's metrics.
func MetricsKey(symbol string) string {
	return "metrics:" + symbol
}
