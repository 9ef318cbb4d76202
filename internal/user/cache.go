package user

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Cache configuration
const (
	DefaultCacheSize = 1000
	DefaultCacheTTL  = 5 * time.Minute
)

// playerCache remembers player ids that recently authenticated so token
// checks do not hit the database on every request
type playerCache struct {
	lru *expirable.LRU[string, struct{}]
}

// newPlayerCache creates a cache with the specified size and TTL
func newPlayerCache(size int, ttl time.Duration) *playerCache {
	return &playerCache{
		lru: expirable.NewLRU[string, struct{}](size, nil, ttl),
	}
}

// Known reports whether playerID was recently confirmed to exist
func (c *playerCache) Known(playerID string) bool {
	_, ok := c.lru.Get(playerID)
	return ok
}

// Remember marks playerID as existing
func (c *playerCache) Remember(playerID string) {
	c.lru.Add(playerID, struct{}{})
}

// Invalidate removes a player from the cache
func (c *playerCache) Invalidate(playerID string) {
	c.lru.Remove(playerID)
}

// Len returns the number of cached entries
func (c *playerCache) Len() int {
	return c.lru.Len()
}
