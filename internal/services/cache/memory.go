package cache

import (
	"context"
	"sort"
	"sync"
	"time"
)

// DefaultTTL is used when Set is called without a positive TTL
const DefaultTTL = 5 * time.Minute

// MemoryCache is a size-bounded in-memory cache with expiring entries. A
// background goroutine sweeps expired entries until Stop is called.
type MemoryCache struct {
	mu          sync.RWMutex
	items       map[string]*cacheItem
	maxSize     int64
	currentSize int64
	stats       Stats
	now         func() time.Time

	stopOnce sync.Once
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

type cacheItem struct {
	value  []byte
	expiry time.Time
	size   int64
}

// NewMemoryCache creates a cache holding at most maxSizeMB megabytes; zero
// or less means unbounded. Expired entries are swept every cleanupInterval.
func NewMemoryCache(maxSizeMB int64, cleanupInterval time.Duration) *MemoryCache {
	if cleanupInterval <= 0 {
		cleanupInterval = time.Minute
	}
	mc := &MemoryCache{
		items:   make(map[string]*cacheItem),
		maxSize: maxSizeMB * 1024 * 1024,
		now:     time.Now,
		stopCh:  make(chan struct{}),
	}

	mc.wg.Add(1)
	go mc.cleanupExpired(cleanupInterval)

	return mc
}

// Get retrieves a value from the cache
func (mc *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	item, exists := mc.items[key]
	if !exists {
		mc.stats.Misses++
		return nil, false
	}
	if !mc.now().Before(item.expiry) {
		mc.remove(key, item)
		mc.stats.Evictions++
		mc.stats.Misses++
		return nil, false
	}

	mc.stats.Hits++
	return item.value, true
}

// Set stores a value in the cache with a TTL. Values larger than the whole
// cache are dropped silently.
func (mc *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	size := int64(len(key) + len(value))

	mc.mu.Lock()
	defer mc.mu.Unlock()

	if mc.maxSize > 0 && size > mc.maxSize {
		return nil
	}
	if old, exists := mc.items[key]; exists {
		mc.remove(key, old)
	}
	mc.makeRoom(size)

	mc.items[key] = &cacheItem{
		value:  value,
		expiry: mc.now().Add(ttl),
		size:   size,
	}
	mc.currentSize += size
	mc.stats.Sets++
	return nil
}

// Delete removes a value from the cache
func (mc *MemoryCache) Delete(ctx context.Context, key string) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	if item, exists := mc.items[key]; exists {
		mc.remove(key, item)
		mc.stats.Deletes++
	}
	return nil
}

// Clear removes all values from the cache
func (mc *MemoryCache) Clear(ctx context.Context) error {
	mc.mu.Lock()
	mc.items = make(map[string]*cacheItem)
	mc.currentSize = 0
	mc.mu.Unlock()
	return nil
}

// Has checks if a live key exists in the cache
func (mc *MemoryCache) Has(ctx context.Context, key string) bool {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	item, exists := mc.items[key]
	return exists && mc.now().Before(item.expiry)
}

// Stats returns cache statistics
func (mc *MemoryCache) Stats() Stats {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	stats := mc.stats
	stats.Entries = len(mc.items)
	stats.Size = mc.currentSize
	stats.MaxSize = mc.maxSize
	return stats
}

// Stop shuts down the cleanup goroutine. It is safe to call more than once.
func (mc *MemoryCache) Stop() {
	mc.stopOnce.Do(func() {
		close(mc.stopCh)
	})
	mc.wg.Wait()
}

func (mc *MemoryCache) cleanupExpired(interval time.Duration) {
	defer mc.wg.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			mc.mu.Lock()
			mc.removeExpired()
			mc.mu.Unlock()
		case <-mc.stopCh:
			return
		}
	}
}

// removeExpired drops every expired entry. Caller holds mu.
func (mc *MemoryCache) removeExpired() {
	now := mc.now()
	for key, item := range mc.items {
		if !now.Before(item.expiry) {
			mc.remove(key, item)
			mc.stats.Evictions++
		}
	}
}

// makeRoom evicts expired entries, then the entries closest to expiry,
// until size more bytes fit. Caller holds mu.
func (mc *MemoryCache) makeRoom(size int64) {
	if mc.maxSize <= 0 || mc.currentSize+size <= mc.maxSize {
		return
	}

	mc.removeExpired()
	if mc.currentSize+size <= mc.maxSize {
		return
	}

	keys := make([]string, 0, len(mc.items))
	for key := range mc.items {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		return mc.items[keys[i]].expiry.Before(mc.items[keys[j]].expiry)
	})

	for _, key := range keys {
		if mc.currentSize+size <= mc.maxSize {
			break
		}
		mc.remove(key, mc.items[key])
		mc.stats.Evictions++
	}
}

func (mc *MemoryCache) remove(key string, item *cacheItem) {
	delete(mc.items, key)
	mc.currentSize -= item.size
}

var (
	_ Cache         = (*MemoryCache)(nil)
	_ StatsProvider = (*MemoryCache)(nil)
)
