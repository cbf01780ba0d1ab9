package cache

import (
	"context"
	"sync"
	"time"

	"github.com/pawtrack/backend/internal/domain"
)

// cacheItem represents a cached standards list with expiration
type cacheItem struct {
	standards  []domain.NutritionalStandard
	expiration time.Time
}

// MemoryCache is a thread-safe in-memory TTL cache for nutritional standards
// fetched from the upstream API
type MemoryCache struct {
	data  map[string]cacheItem
	mutex sync.RWMutex
}

// NewMemoryCache creates a new in-memory standards cache
func NewMemoryCache() *MemoryCache {
	cache := &MemoryCache{
		data: make(map[string]cacheItem),
	}

	// Start cleanup goroutine to remove expired entries every 10 minutes
	go cache.cleanupExpired()

	return cache
}

// Get retrieves a standards list from the cache
func (c *MemoryCache) Get(ctx context.Context, key string) ([]domain.NutritionalStandard, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	item, exists := c.data[key]
	if !exists {
		return nil, domain.ErrCacheMiss
	}

	// Check if expired
	if time.Now().After(item.expiration) {
		return nil, domain.ErrCacheMiss
	}

	// Copy so the caller's slice and the cached one stay independent
	standards := make([]domain.NutritionalStandard, len(item.standards))
	copy(standards, item.standards)
	return standards, nil
}

// Set stores a standards list in the cache with TTL
func (c *MemoryCache) Set(ctx context.Context, key string, standards []domain.NutritionalStandard, ttl time.Duration) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	stored := make([]domain.NutritionalStandard, len(standards))
	copy(stored, standards)

	c.data[key] = cacheItem{
		standards:  stored,
		expiration: time.Now().Add(ttl),
	}

	return nil
}

// Delete removes a standards list from the cache
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.data, key)
	return nil
}

// cleanupExpired removes expired entries from the cache periodically
func (c *MemoryCache) cleanupExpired() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.mutex.Lock()
		now := time.Now()
		for key, item := range c.data {
			if now.After(item.expiration) {
				delete(c.data, key)
			}
		}
		c.mutex.Unlock()
	}
}

// Size returns the current number of items in the cache (for debugging/monitoring)
func (c *MemoryCache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.data)
}

// Clear removes all items from the cache
func (c *MemoryCache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.data = make(map[string]cacheItem)
}
