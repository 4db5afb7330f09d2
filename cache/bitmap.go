package cache

import (
	"sync"
	"sync/atomic"

	"github.com/gogpu/gg"

	"github.com/gogpu/markers"
	"github.com/gogpu/markers/internal/telemetry"
)

// BitmapCache is a thread-safe LRU cache of pixmaps bounded by a memory
// budget in KiB.
//
// Invariants:
//   - Cost() <= Budget() after every operation
//   - the entry evicted on overflow is the least recently accessed one
//   - Get returns an independent copy, never the stored pixmap
type BitmapCache struct {
	mu      sync.Mutex
	entries map[string]*bitmapEntry
	lru     lruList
	cost    int64
	budget  int64

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

// bitmapEntry holds a cached pixmap with its LRU node and cost.
type bitmapEntry struct {
	pixmap *gg.Pixmap
	cost   int64
	node   *lruNode
}

// New creates a cache with the given budget in KiB.
// A budget <= 0 yields a cache that stores nothing.
func New(budgetKiB int64) *BitmapCache {
	if budgetKiB < 0 {
		budgetKiB = 0
	}
	return &BitmapCache{
		entries: make(map[string]*bitmapEntry),
		budget:  budgetKiB,
	}
}

// SizeOf returns the cost of a pixmap in KiB: its byte count divided by
// 1024, rounded up so that even tiny bitmaps count against the budget.
func SizeOf(pm *gg.Pixmap) int64 {
	if pm == nil {
		return 0
	}
	n := int64(len(pm.Data()))
	return (n + 1023) / 1024
}

// Clone returns a deep copy of pm. A nil pixmap clones to nil.
func Clone(pm *gg.Pixmap) *gg.Pixmap {
	if pm == nil {
		return nil
	}
	out := gg.NewPixmap(pm.Width(), pm.Height())
	copy(out.Data(), pm.Data())
	return out
}

// Get returns a copy of the pixmap stored under key.
// A hit marks the entry as most recently used.
func (c *BitmapCache) Get(key string) (*gg.Pixmap, bool) {
	c.mu.Lock()
	entry, ok := c.entries[key]
	if !ok {
		c.mu.Unlock()
		c.misses.Add(1)
		telemetry.Inc(telemetry.Get().CacheMisses)
		markers.Logger().Debug("bitmap cache miss", "key", key)
		return nil, false
	}
	c.lru.MoveToFront(entry.node)
	// The stored pixmap is never written after insertion, so copying
	// outside the lock is safe.
	pm := entry.pixmap
	c.mu.Unlock()

	c.hits.Add(1)
	telemetry.Inc(telemetry.Get().CacheHits)
	return Clone(pm), true
}

// Contains reports whether key is cached without counting as a use.
func (c *BitmapCache) Contains(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok
}

// Put stores a copy of pm under key if the key is absent.
// It returns false when the key already existed or pm alone exceeds the
// whole budget. Least recently used entries are evicted to make room.
func (c *BitmapCache) Put(key string, pm *gg.Pixmap) bool {
	if pm == nil {
		return false
	}
	cost := SizeOf(pm)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; ok {
		return false
	}
	if cost > c.budget {
		return false
	}

	for c.cost+cost > c.budget {
		oldest := c.lru.Oldest()
		if oldest == nil {
			break
		}
		c.removeLocked(oldest.key)
		c.evictions.Add(1)
		telemetry.Inc(telemetry.Get().CacheEvictions)
	}

	node := c.lru.PushFront(key)
	c.entries[key] = &bitmapEntry{
		pixmap: Clone(pm),
		cost:   cost,
		node:   node,
	}
	c.cost += cost
	return true
}

// Delete removes an entry. Returns true if it was present.
func (c *BitmapCache) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; !ok {
		return false
	}
	c.removeLocked(key)
	return true
}

// Clear removes all entries. Statistics are kept.
func (c *BitmapCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*bitmapEntry)
	c.lru.Clear()
	c.cost = 0
}

// Len returns the number of cached entries.
func (c *BitmapCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Cost returns the total cost of all entries in KiB.
func (c *BitmapCache) Cost() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cost
}

// Budget returns the configured budget in KiB.
func (c *BitmapCache) Budget() int64 {
	return c.budget
}

// Keys returns the cached keys from most to least recently used.
func (c *BitmapCache) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Keys()
}

// Stats returns current cache statistics.
func (c *BitmapCache) Stats() Stats {
	hits := c.hits.Load()
	misses := c.misses.Load()

	var hitRate float64
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	c.mu.Lock()
	n, cost := len(c.entries), c.cost
	c.mu.Unlock()

	return Stats{
		Len:       n,
		Cost:      cost,
		Budget:    c.budget,
		Hits:      hits,
		Misses:    misses,
		HitRate:   hitRate,
		Evictions: c.evictions.Load(),
	}
}

// removeLocked drops key from the map and list. Caller must hold c.mu.
func (c *BitmapCache) removeLocked(key string) {
	entry := c.entries[key]
	c.lru.Remove(entry.node)
	c.cost -= entry.cost
	delete(c.entries, key)
}

// Stats contains cache statistics.
type Stats struct {
	// Len is the current number of entries.
	Len int
	// Cost is the current total cost in KiB.
	Cost int64
	// Budget is the maximum total cost in KiB.
	Budget int64
	// Hits is the number of Get calls that found an entry.
	Hits uint64
	// Misses is the number of Get calls that found nothing.
	Misses uint64
	// HitRate is Hits / (Hits + Misses), 0 when unused.
	HitRate float64
	// Evictions is the number of entries dropped to make room.
	Evictions uint64
}
