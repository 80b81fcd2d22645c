package cache

import (
	"strconv"
	"sync"
	"testing"
)

func TestNew(t *testing.T) {
	c := New[string, int](100)
	if c == nil {
		t.Fatal("New returned nil")
	}
	if c.Capacity() != 100 {
		t.Errorf("expected capacity 100, got %d", c.Capacity())
	}
	if c.Len() != 0 {
		t.Errorf("expected empty cache, got %d entries", c.Len())
	}
}

func TestDefaultCapacity(t *testing.T) {
	c := New[string, int](0)
	if c.Capacity() != DefaultCapacity {
		t.Errorf("expected capacity %d, got %d", DefaultCapacity, c.Capacity())
	}
}

func TestGetSet(t *testing.T) {
	c := New[string, int](10)

	c.Set("key1", 42)

	val, ok := c.Get("key1")
	if !ok {
		t.Error("expected key1 to exist")
	}
	if val != 42 {
		t.Errorf("expected 42, got %d", val)
	}

	_, ok = c.Get("nonexistent")
	if ok {
		t.Error("expected nonexistent key to not exist")
	}
}

func TestEvictionOrder(t *testing.T) {
	c := New[int, string](3)
	c.Set(1, "a")
	c.Set(2, "b")
	c.Set(3, "c")

	// Touch 1 so 2 becomes the oldest.
	c.Get(1)
	c.Set(4, "d")

	if _, ok := c.Get(2); ok {
		t.Error("expected 2 to be evicted")
	}
	for _, k := range []int{1, 3, 4} {
		if _, ok := c.Get(k); !ok {
			t.Errorf("expected %d to survive", k)
		}
	}
}

func TestCapacityBound(t *testing.T) {
	c := New[int, int](5)
	for i := 0; i < 100; i++ {
		c.Set(i, i)
	}
	if c.Len() != 5 {
		t.Errorf("expected 5 entries, got %d", c.Len())
	}
}

func TestOnEvictCallback(t *testing.T) {
	c := New[int, string](2)
	var evicted []int
	c.OnEvict(func(k int, v string) {
		evicted = append(evicted, k)
	})

	c.Set(1, "a")
	c.Set(2, "b")
	c.Set(3, "c") // evicts 1

	if len(evicted) != 1 || evicted[0] != 1 {
		t.Errorf("evicted = %v, want [1]", evicted)
	}

	c.Delete(2)
	if len(evicted) != 2 || evicted[1] != 2 {
		t.Errorf("evicted = %v, want [1 2]", evicted)
	}
}

func TestSetReplaceReleasesOldValue(t *testing.T) {
	c := New[int, string](4)
	var released []string
	c.OnEvict(func(k int, v string) {
		released = append(released, v)
	})

	c.Set(1, "old")
	c.Set(1, "new")

	if len(released) != 1 || released[0] != "old" {
		t.Errorf("released = %v, want [old]", released)
	}
	if v, _ := c.Get(1); v != "new" {
		t.Errorf("value = %q, want new", v)
	}
	if c.Len() != 1 {
		t.Errorf("len = %d, want 1", c.Len())
	}
}

func TestClear(t *testing.T) {
	c := New[int, int](10)
	evictions := 0
	c.OnEvict(func(int, int) { evictions++ })

	for i := 0; i < 5; i++ {
		c.Set(i, i)
	}
	c.Clear()

	if c.Len() != 0 {
		t.Errorf("expected empty cache after Clear, got %d", c.Len())
	}
	if evictions != 5 {
		t.Errorf("expected 5 eviction callbacks, got %d", evictions)
	}

	// Cache remains usable after Clear.
	c.Set(42, 42)
	if _, ok := c.Get(42); !ok {
		t.Error("cache unusable after Clear")
	}
}

func TestStats(t *testing.T) {
	c := New[string, int](10)
	c.Set("a", 1)

	c.Get("a")
	c.Get("a")
	c.Get("missing")

	s := c.Stats()
	if s.Hits != 2 {
		t.Errorf("hits = %d, want 2", s.Hits)
	}
	if s.Misses != 1 {
		t.Errorf("misses = %d, want 1", s.Misses)
	}
	if got := c.HitRate(); got < 0.66 || got > 0.67 {
		t.Errorf("hit rate = %v, want ~0.667", got)
	}
}

func TestHitRateEmpty(t *testing.T) {
	c := New[string, int](10)
	if got := c.HitRate(); got != 0 {
		t.Errorf("hit rate on empty cache = %v, want 0", got)
	}
}

func TestConcurrentAccess(t *testing.T) {
	c := New[string, int](64)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := strconv.Itoa(i % 100)
				c.Set(key, i)
				c.Get(key)
			}
		}(g)
	}
	wg.Wait()

	if c.Len() > c.Capacity() {
		t.Errorf("len %d exceeds capacity %d", c.Len(), c.Capacity())
	}
}
