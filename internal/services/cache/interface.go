package cache

import (
	"context"
	"time"
)

// Cache stores rendered responses keyed by request
type Cache interface {
	// Get retrieves a value from the cache
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores a value in the cache with a TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value from the cache
	Delete(ctx context.Context, key string) error

	// Clear removes all values from the cache
	Clear(ctx context.Context) error

	// Has checks if a live key exists in the cache
	Has(ctx context.Context, key string) bool
}

// Stats provides statistics about cache usage
type Stats struct {
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Sets      int64 `json:"sets"`
	Deletes   int64 `json:"deletes"`
	Evictions int64 `json:"evictions"`
	Entries   int   `json:"entries"`
	Size      int64 `json:"sizeBytes"`
	MaxSize   int64 `json:"maxSizeBytes"`
}

// StatsProvider is implemented by caches that report statistics
type StatsProvider interface {
	Stats() Stats
}
