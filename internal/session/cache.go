package session

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/avelins/tapcore/internal/engine"
)

// sessionCache holds the live engines for hot sessions. Entries expire TTL
// after their last Add, so an idle user's engine is torn down (final flush,
// final persist) without any per-session timer. The evict callback runs
// synchronously under the cache lock and so must never block on the network;
// Reset relies on the callback's persist having completed when Remove returns.
type sessionCache struct {
	lru *expirable.LRU[string, *engine.Session]
}

// newSessionCache creates a session cache with the specified size and TTL.
// onEvict fires for every removal: capacity eviction, TTL expiry, explicit
// Remove and Purge.
func newSessionCache(size int, ttl time.Duration, onEvict func(userID string, eng *engine.Session)) *sessionCache {
	return &sessionCache{
		lru: expirable.NewLRU[string, *engine.Session](size, onEvict, ttl),
	}
}

// Get retrieves a live engine from the cache.
func (c *sessionCache) Get(userID string) (*engine.Session, bool) {
	return c.lru.Get(userID)
}

// Add stores a live engine, resetting its TTL.
func (c *sessionCache) Add(userID string, eng *engine.Session) {
	c.lru.Add(userID, eng)
}

// Remove evicts one engine, firing the evict callback.
func (c *sessionCache) Remove(userID string) {
	c.lru.Remove(userID)
}

// Values returns the live engines in LRU order, skipping expired entries.
func (c *sessionCache) Values() []*engine.Session {
	return c.lru.Values()
}

// Len reports the number of live sessions.
func (c *sessionCache) Len() int {
	return c.lru.Len()
}

// Purge evicts every engine, firing the evict callback for each.
func (c *sessionCache) Purge() {
	c.lru.Purge()
}
