package tilescape

import (
	"sync"
	"sync/atomic"
	"time"
)

// View drives asynchronous tile rendering for one on-screen viewport.
// It owns a Backend, tracks which tile coordinates are already in
// flight, and debounces viewport changes so continuous pan/zoom
// gestures do not flood the backend with redundant work.
//
// The caller never blocks on a render: it paints placeholders
// immediately and repaints when the OnTile callback delivers each
// completed tile. Completions arrive on renderer goroutines in any
// order.
type View struct {
	backend Backend
	cfg     Config

	onTile atomic.Pointer[func(*RenderedTile)]

	mu       sync.Mutex
	pending  map[TileCoord]struct{}
	viewport Viewport
	hasVP    bool
	timer    *time.Timer

	disposed atomic.Bool
	wg       sync.WaitGroup
}

// NewView creates a view over an initialized backend.
func NewView(b Backend, opts ...Option) *View {
	return &View{
		backend: b,
		cfg:     ApplyOptions(opts...),
		pending: make(map[TileCoord]struct{}),
	}
}

// OnTile registers the completion callback. It is invoked once per
// finished tile, on a renderer goroutine. Pass nil to drop delivery.
func (v *View) OnTile(fn func(*RenderedTile)) {
	if fn == nil {
		v.onTile.Store(nil)
		return
	}
	v.onTile.Store(&fn)
}

// SetViewport records a viewport change. Recomputing and requesting
// visible tiles is deferred by the configured debounce window; rapid
// successive changes collapse into one recomputation of the final
// viewport.
func (v *View) SetViewport(vp Viewport) {
	if v.disposed.Load() {
		return
	}
	v.mu.Lock()
	v.viewport = vp
	v.hasVP = true
	if v.cfg.ViewportDebounce <= 0 {
		v.mu.Unlock()
		v.requestVisible()
		return
	}
	if v.timer != nil {
		v.timer.Stop()
	}
	v.timer = time.AfterFunc(v.cfg.ViewportDebounce, v.requestVisible)
	v.mu.Unlock()
}

// requestVisible computes the tiles covering the last recorded
// viewport and requests any that are not already in flight.
func (v *View) requestVisible() {
	if v.disposed.Load() {
		return
	}
	v.mu.Lock()
	if !v.hasVP {
		v.mu.Unlock()
		return
	}
	vp := v.viewport
	v.mu.Unlock()

	for _, coord := range v.backend.VisibleTiles(vp) {
		v.RequestTile(coord)
	}
}

// RequestTile renders one tile asynchronously. A coordinate already in
// flight enqueues nothing. The completed tile is delivered through the
// OnTile callback unless the view was disposed meanwhile.
func (v *View) RequestTile(coord TileCoord) {
	if v.disposed.Load() {
		return
	}
	v.mu.Lock()
	if _, inFlight := v.pending[coord]; inFlight {
		v.mu.Unlock()
		return
	}
	v.pending[coord] = struct{}{}
	v.mu.Unlock()

	v.wg.Add(1)
	go v.renderTile(coord)
}

func (v *View) renderTile(coord TileCoord) {
	defer v.wg.Done()
	tile, err := v.backend.RenderTile(coord)

	v.mu.Lock()
	delete(v.pending, coord)
	v.mu.Unlock()

	if v.disposed.Load() {
		return
	}
	if err != nil {
		Logger().Warn("tile render failed", "coord", coord.String(), "error", err)
		return
	}
	if fn := v.onTile.Load(); fn != nil {
		(*fn)(tile)
	}
}

// InvalidateNodes drops tiles affected by the changed nodes and
// re-requests the currently visible ones.
func (v *View) InvalidateNodes(nodeIDs []string) {
	if v.disposed.Load() {
		return
	}
	v.backend.InvalidateTiles(nodeIDs)
	v.requestVisible()
}

// Pending returns the number of tile renders currently in flight.
func (v *View) Pending() int {
	v.mu.Lock()
	n := len(v.pending)
	v.mu.Unlock()
	return n
}

// Dispose tears the view down. In-flight renders finish but their
// results are dropped; no callback fires after Dispose returns the
// flag flipped. The backend itself is left to its owner.
func (v *View) Dispose() {
	if !v.disposed.CompareAndSwap(false, true) {
		return
	}
	v.mu.Lock()
	if v.timer != nil {
		v.timer.Stop()
		v.timer = nil
	}
	v.mu.Unlock()
}

// Wait blocks until all in-flight renders complete. Intended for tests
// and orderly shutdown.
func (v *View) Wait() {
	v.wg.Wait()
}
