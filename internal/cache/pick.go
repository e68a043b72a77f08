package cache

import (
	"fmt"

	"github.com/globemeasure/measure/pkg/core"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultPickCacheSize bounds the picks remembered within one frame.
const DefaultPickCacheSize = 4096

// PickFunc resolves a viewport point to the terrain beneath it.
type PickFunc func(core.ViewportPoint) (core.WorldPoint, bool)

type pickEntry struct {
	point core.WorldPoint
	ok    bool
}

// PickCache memoizes terrain picks by pixel. Viewport points are only valid
// for the frame they were computed in, so the cache must be Reset before
// every recomputation. Misses are cached as well.
type PickCache struct {
	entries *lru.Cache[core.ViewportPoint, pickEntry]
	hits    int
}

// NewPickCache creates a cache holding at most size picks.
func NewPickCache(size int) (*PickCache, error) {
	if size <= 0 {
		size = DefaultPickCacheSize
	}
	entries, err := lru.New[core.ViewportPoint, pickEntry](size)
	if err != nil {
		return nil, fmt.Errorf("creating pick cache: %w", err)
	}
	return &PickCache{entries: entries}, nil
}

// Pick returns the cached result for p, calling pick on a cache miss.
func (c *PickCache) Pick(p core.ViewportPoint, pick PickFunc) (core.WorldPoint, bool) {
	if e, ok := c.entries.Get(p); ok {
		c.hits++
		return e.point, e.ok
	}
	w, ok := pick(p)
	c.entries.Add(p, pickEntry{point: w, ok: ok})
	return w, ok
}

// Reset drops every cached pick and the hit count.
func (c *PickCache) Reset() {
	c.entries.Purge()
	c.hits = 0
}

// Len returns the number of cached picks.
func (c *PickCache) Len() int {
	return c.entries.Len()
}

// Hits returns how many lookups since the last Reset were served from cache.
func (c *PickCache) Hits() int {
	return c.hits
}
