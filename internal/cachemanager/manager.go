// Package cachemanager wraps go-cache with typed accessors.
package cachemanager

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/zjrosen/polyslot/internal/log"
)

const (
	// NoExpiration keeps entries for the life of the process.
	NoExpiration = gocache.NoExpiration
	// DefaultExpiration uses the expiration given to New.
	DefaultExpiration = gocache.DefaultExpiration

	DefaultCleanupInterval = 30 * time.Minute
)

// Cache is a typed in-memory cache keyed by string.
type Cache[V any] struct {
	useCase string
	cache   *gocache.Cache
}

// New initializes a cache. useCase only labels log entries.
func New[V any](useCase string, defaultExpiration, cleanupInterval time.Duration) *Cache[V] {
	return &Cache[V]{
		useCase: useCase,
		cache:   gocache.New(defaultExpiration, cleanupInterval),
	}
}

// Get retrieves an item from the cache by its key.
func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V

	value, found := c.cache.Get(key)
	if !found {
		return zero, false
	}

	v, ok := value.(V)
	if !ok {
		log.Error(log.CatCache, "wrong type assertion when getting value", "cache", c.useCase, "key", key)
		return zero, false
	}

	return v, true
}

// GetOrCreate returns the cached value for key, building and storing it
// with create on a miss.
func (c *Cache[V]) GetOrCreate(key string, create func() V) V {
	if v, ok := c.Get(key); ok {
		return v
	}
	v := create()
	c.cache.Set(key, v, DefaultExpiration)
	log.Debug(log.CatCache, "cache fill", "cache", c.useCase, "key", key)
	return v
}

// Set stores value under key with ttl.
func (c *Cache[V]) Set(key string, value V, ttl time.Duration) {
	c.cache.Set(key, value, ttl)
}

// Delete removes the given keys.
func (c *Cache[V]) Delete(keys ...string) {
	for _, key := range keys {
		c.cache.Delete(key)
	}
}

// Len returns the number of cached items, including expired ones not yet cleaned.
func (c *Cache[V]) Len() int {
	return c.cache.ItemCount()
}

// Flush removes every item.
func (c *Cache[V]) Flush() {
	c.cache.Flush()
}
