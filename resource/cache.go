// Package resource caches decoded image resources. Decodes run
// asynchronously; completions within a short window are coalesced into
// a single invalidation callback so a burst of finished images causes
// one repaint, not one per image.
package resource

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/image/webp"

	"github.com/tilescape/tilescape"
)

// DebounceWindow is how long completions are coalesced before the
// invalidation callback fires.
const DebounceWindow = 100 * time.Millisecond

// State describes a cache entry's lifecycle. A key moves
// absent → pending → ready | failed. Failed is permanent: the broken
// image placeholder stays and the key is never retried automatically.
type State int

const (
	StateAbsent State = iota
	StatePending
	StateReady
	StateFailed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	}
	return "absent"
}

type entry struct {
	state State
	img   image.Image // immutable once ready, shared by all readers
}

// Cache is the asynchronous decoded-image cache. Safe for concurrent
// use.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry
	timer   *time.Timer

	onInvalidate func()
	closed       atomic.Bool
	wg           sync.WaitGroup
}

// NewCache creates a cache. onInvalidate fires at most once per
// debounce window after one or more decodes complete; pass nil to
// disable notifications.
func NewCache(onInvalidate func()) *Cache {
	return &Cache{
		entries:      make(map[string]*entry),
		onInvalidate: onInvalidate,
	}
}

// Get returns the decoded image for a key, if ready, and the key's
// current state.
func (c *Cache) Get(key string) (image.Image, State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, StateAbsent
	}
	return e.img, e.state
}

// Request starts an asynchronous decode of data under key, unless the
// key is already pending, ready or permanently failed. The raw bytes
// are validated against the supported signatures before any decoder
// runs; unrecognized bytes fail immediately and permanently.
//
// Request returns the key's state after the call: StatePending when a
// decode was started or is in flight.
func (c *Cache) Request(key string, data []byte) State {
	if c.closed.Load() {
		return StateAbsent
	}

	c.mu.Lock()
	if e, ok := c.entries[key]; ok {
		state := e.state
		c.mu.Unlock()
		return state
	}

	format := Sniff(data)
	if format == FormatUnknown {
		c.entries[key] = &entry{state: StateFailed}
		c.mu.Unlock()
		tilescape.Logger().Warn("resource bytes unrecognized", "key", key, "size", len(data))
		c.scheduleNotify()
		return StateFailed
	}

	c.entries[key] = &entry{state: StatePending}
	c.mu.Unlock()

	c.wg.Add(1)
	go c.decode(key, data, format)
	return StatePending
}

func (c *Cache) decode(key string, data []byte, format Format) {
	defer c.wg.Done()

	img, err := decodeImage(data, format)

	c.mu.Lock()
	e, ok := c.entries[key]
	if !ok || e.state != StatePending {
		c.mu.Unlock()
		return
	}
	if err != nil {
		// Not a permanent failure: drop the entry so a fresh request
		// may retry.
		delete(c.entries, key)
		c.mu.Unlock()
		tilescape.Logger().Warn("resource decode failed",
			"key", key, "format", format.String(), "error", err)
		return
	}
	e.img = img
	e.state = StateReady
	c.mu.Unlock()

	tilescape.Logger().Debug("resource decoded",
		"key", key, "format", format.String(),
		"bounds", img.Bounds().String())
	c.scheduleNotify()
}

// scheduleNotify schedules the debounced invalidation callback. Multiple
// completions inside the window collapse into one call.
func (c *Cache) scheduleNotify() {
	if c.onInvalidate == nil || c.closed.Load() {
		return
	}
	c.mu.Lock()
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(DebounceWindow, func() {
		if c.closed.Load() {
			return
		}
		c.onInvalidate()
	})
	c.mu.Unlock()
}

// Len returns the number of entries in any state.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Close stops callback delivery and waits for in-flight decodes. The
// cache may still serve Get afterwards; new Requests are ignored.
func (c *Cache) Close() {
	if !c.closed.CompareAndSwap(false, true) {
		return
	}
	c.mu.Lock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.mu.Unlock()
	c.wg.Wait()
}

func decodeImage(data []byte, format Format) (img image.Image, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("decoder panic: %v", r)
		}
	}()

	r := bytes.NewReader(data)
	switch format {
	case FormatPNG:
		return png.Decode(r)
	case FormatJPEG:
		return jpeg.Decode(r)
	case FormatGIF:
		return gif.Decode(r)
	case FormatWebP:
		return webp.Decode(r)
	}
	return nil, fmt.Errorf("unsupported format %v", format)
}
