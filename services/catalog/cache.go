package catalog

import (
	"sync"
	"time"
)

type cacheEntry[V any] struct {
	expiresAt time.Time
	value     V
}

// ttlCache is a process-lifetime key/value store with absolute per-entry
// expiry. Eviction is lazy: an expired entry is removed by the read that
// observes it. Key cardinality is bounded by the small discover parameter
// cross-product, so no background sweeper is needed.
type ttlCache[V any] struct {
	mu      sync.Mutex
	entries map[string]cacheEntry[V]
	now     func() time.Time
}

func newTTLCache[V any]() *ttlCache[V] {
	return &ttlCache[V]{
		entries: make(map[string]cacheEntry[V]),
		now:     time.Now,
	}
}

// set stores value under key until now+ttl, overwriting any existing entry.
func (c *ttlCache[V]) set(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry[V]{expiresAt: c.now().Add(ttl), value: value}
}

// get returns the unexpired value for key. An entry whose expiry has been
// reached is deleted and reported as a miss.
func (c *ttlCache[V]) get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if !c.now().Before(entry.expiresAt) {
		delete(c.entries, key)
		var zero V
		return zero, false
	}
	return entry.value, true
}
