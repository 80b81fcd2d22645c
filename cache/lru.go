// Package cache provides a bounded, thread-safe LRU cache used for
// rendered tiles and decoded resources.
package cache

import (
	"sync"
	"sync/atomic"
)

// DefaultCapacity is the default maximum number of entries.
const DefaultCapacity = 256

// LRU is a thread-safe, bounded cache with least-recently-used
// eviction.
//
// Features:
//   - LRU eviction with configurable capacity
//   - Optional eviction callback, for releasing backing storage
//   - Atomic hit/miss statistics for monitoring
type LRU[K comparable, V any] struct {
	mu       sync.Mutex
	entries  map[K]*lruNode[K, V]
	head     *lruNode[K, V] // most recently used
	tail     *lruNode[K, V] // least recently used
	capacity int
	onEvict  func(K, V)

	// Statistics (atomic for lock-free reads)
	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

type lruNode[K comparable, V any] struct {
	key        K
	value      V
	prev, next *lruNode[K, V]
}

// New creates an LRU cache holding at most capacity entries.
// If capacity <= 0, DefaultCapacity is used.
func New[K comparable, V any](capacity int) *LRU[K, V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &LRU[K, V]{
		entries:  make(map[K]*lruNode[K, V]),
		capacity: capacity,
	}
}

// OnEvict registers a callback invoked for every entry removed by
// eviction, Delete or Clear. The callback runs while the cache lock is
// held; it must not call back into the cache.
func (c *LRU[K, V]) OnEvict(fn func(K, V)) {
	c.mu.Lock()
	c.onEvict = fn
	c.mu.Unlock()
}

// Get retrieves a cached value by key, marking it most recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	node, ok := c.entries[key]
	if !ok {
		c.mu.Unlock()
		c.misses.Add(1)
		var zero V
		return zero, false
	}
	c.moveToFront(node)
	v := node.value
	c.mu.Unlock()
	c.hits.Add(1)
	return v, true
}

// Contains reports whether key is cached without updating recency or
// statistics.
func (c *LRU[K, V]) Contains(key K) bool {
	c.mu.Lock()
	_, ok := c.entries[key]
	c.mu.Unlock()
	return ok
}

// Set inserts or replaces a value. When the cache is full, the least
// recently used entry is evicted first.
func (c *LRU[K, V]) Set(key K, value V) {
	c.mu.Lock()
	if node, ok := c.entries[key]; ok {
		old := node.value
		node.value = value
		c.moveToFront(node)
		fn := c.onEvict
		c.mu.Unlock()
		if fn != nil {
			fn(key, old)
		}
		return
	}

	if len(c.entries) >= c.capacity {
		c.evictOldest()
	}

	node := &lruNode[K, V]{key: key, value: value}
	c.entries[key] = node
	c.pushFront(node)
	c.mu.Unlock()
}

// Delete removes an entry, invoking the eviction callback on it.
func (c *LRU[K, V]) Delete(key K) {
	c.mu.Lock()
	node, ok := c.entries[key]
	if !ok {
		c.mu.Unlock()
		return
	}
	c.unlink(node)
	delete(c.entries, key)
	fn := c.onEvict
	c.mu.Unlock()
	if fn != nil {
		fn(node.key, node.value)
	}
}

// Clear removes all entries, invoking the eviction callback on each.
func (c *LRU[K, V]) Clear() {
	c.mu.Lock()
	nodes := make([]*lruNode[K, V], 0, len(c.entries))
	for _, node := range c.entries {
		nodes = append(nodes, node)
	}
	c.entries = make(map[K]*lruNode[K, V])
	c.head, c.tail = nil, nil
	fn := c.onEvict
	c.mu.Unlock()
	if fn != nil {
		for _, node := range nodes {
			fn(node.key, node.value)
		}
	}
}

// Len returns the number of cached entries.
func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	n := len(c.entries)
	c.mu.Unlock()
	return n
}

// Capacity returns the maximum number of entries.
func (c *LRU[K, V]) Capacity() int { return c.capacity }

// Stats holds cumulative cache counters.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// Stats returns a snapshot of the cumulative counters.
func (c *LRU[K, V]) Stats() Stats {
	return Stats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}

// HitRate returns hits / (hits + misses), or 0 before any lookup.
func (c *LRU[K, V]) HitRate() float64 {
	hits := c.hits.Load()
	total := hits + c.misses.Load()
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}

// evictOldest removes the tail entry. Caller holds the lock.
func (c *LRU[K, V]) evictOldest() {
	node := c.tail
	if node == nil {
		return
	}
	c.unlink(node)
	delete(c.entries, node.key)
	c.evictions.Add(1)
	if c.onEvict != nil {
		c.onEvict(node.key, node.value)
	}
}

func (c *LRU[K, V]) pushFront(node *lruNode[K, V]) {
	node.prev = nil
	node.next = c.head
	if c.head != nil {
		c.head.prev = node
	}
	c.head = node
	if c.tail == nil {
		c.tail = node
	}
}

func (c *LRU[K, V]) unlink(node *lruNode[K, V]) {
	if node.prev != nil {
		node.prev.next = node.next
	} else {
		c.head = node.next
	}
	if node.next != nil {
		node.next.prev = node.prev
	} else {
		c.tail = node.prev
	}
	node.prev, node.next = nil, nil
}

func (c *LRU[K, V]) moveToFront(node *lruNode[K, V]) {
	if c.head == node {
		return
	}
	c.unlink(node)
	c.pushFront(node)
}
