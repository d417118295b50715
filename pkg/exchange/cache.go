package exchange

import (
	"sync"
	"time"
)

// DefaultPairTTL is how long a cached pair listing stays fresh.
const DefaultPairTTL = 60 * time.Second

// PairCache memoizes pair listings per market type for one adapter
// instance. Entries expire lazily: a stale entry is treated as absent and
// overwritten by the next store. The cache is never shared across
// instances.
type PairCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	entries map[MarketType]cachedPairs
}

type cachedPairs struct {
	List    *PairList
	Fetched time.Time
}

// CacheOption customises a PairCache.
type CacheOption func(*PairCache)

// WithClock substitutes the cache's time source.
func WithClock(now func() time.Time) CacheOption {
	return func(c *PairCache) {
		if now != nil {
			c.now = now
		}
	}
}

// NewPairCache builds a cache with the given TTL; non-positive values
// fall back to DefaultPairTTL.
func NewPairCache(ttl time.Duration, opts ...CacheOption) *PairCache {
	if ttl <= 0 {
		ttl = DefaultPairTTL
	}
	c := &PairCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[MarketType]cachedPairs),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load returns a copy of the cached listing for market when one exists
// and is younger than the TTL.
func (c *PairCache) Load(market MarketType) (*PairList, bool) {
	c.mu.RLock()
	entry, ok := c.entries[market]
	c.mu.RUnlock()
	if !ok || entry.List == nil || c.now().Sub(entry.Fetched) >= c.ttl {
		return nil, false
	}
	return entry.List.clone(), true
}

// Store captures a copy of list for market, stamped with the current
// time. A nil list is ignored.
func (c *PairCache) Store(market MarketType, list *PairList) {
	if list == nil {
		return
	}
	c.mu.Lock()
	c.entries[market] = cachedPairs{List: list.clone(), Fetched: c.now()}
	c.mu.Unlock()
}
