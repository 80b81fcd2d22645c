package tilescape

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// fakeBackend counts render requests and can hold them until released.
type fakeBackend struct {
	mu      sync.Mutex
	renders map[TileCoord]int
	hold    chan struct{} // when non-nil, RenderTile blocks on it
	fail    bool
	calls   atomic.Int64
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{renders: make(map[TileCoord]int)}
}

func (f *fakeBackend) Name() string                        { return "fake" }
func (f *fakeBackend) Initialize(Source, string) error     { return nil }
func (f *fakeBackend) IsReady() bool                       { return true }
func (f *fakeBackend) VisibleTiles(v Viewport) []TileCoord { return VisibleTiles(v, 0) }
func (f *fakeBackend) InvalidateTiles([]string)            {}
func (f *fakeBackend) ClearCache()                         {}
func (f *fakeBackend) Stats() Stats                        { return Stats{} }
func (f *fakeBackend) Dispose()                            {}

func (f *fakeBackend) RenderTile(coord TileCoord) (*RenderedTile, error) {
	f.calls.Add(1)
	if f.hold != nil {
		<-f.hold
	}
	if f.fail {
		return nil, errors.New("boom")
	}
	f.mu.Lock()
	f.renders[coord]++
	f.mu.Unlock()
	return &RenderedTile{Coord: coord, Pixels: NewPixmap(1, 1)}, nil
}

func (f *fakeBackend) renderCount(coord TileCoord) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.renders[coord]
}

func TestViewDeliversTiles(t *testing.T) {
	fb := newFakeBackend()
	v := NewView(fb, WithViewportDebounce(0))
	defer v.Dispose()

	var got atomic.Int64
	v.OnTile(func(tile *RenderedTile) {
		got.Add(1)
	})

	v.RequestTile(TileCoord{X: 0, Y: 0})
	v.RequestTile(TileCoord{X: 1, Y: 0})
	v.Wait()

	if got.Load() != 2 {
		t.Errorf("delivered %d tiles, want 2", got.Load())
	}
}

func TestViewDedupesInFlightRequests(t *testing.T) {
	fb := newFakeBackend()
	fb.hold = make(chan struct{})
	v := NewView(fb, WithViewportDebounce(0))
	defer v.Dispose()

	coord := TileCoord{X: 5, Y: 5}
	v.RequestTile(coord)
	for v.Pending() == 0 {
		time.Sleep(time.Millisecond)
	}
	// The same coordinate while in flight is a no-op.
	v.RequestTile(coord)
	v.RequestTile(coord)

	close(fb.hold)
	v.Wait()

	if n := fb.renderCount(coord); n != 1 {
		t.Errorf("rendered %d times, want 1", n)
	}
}

func TestViewSetViewportDebounce(t *testing.T) {
	fb := newFakeBackend()
	v := NewView(fb, WithViewportDebounce(30*time.Millisecond))
	defer v.Dispose()

	vp := Viewport{X: 0, Y: 0, Width: 100, Height: 100, Scale: 1}
	// A burst of viewport changes collapses into one recomputation.
	for i := 0; i < 10; i++ {
		v.SetViewport(vp)
		time.Sleep(2 * time.Millisecond)
	}

	time.Sleep(100 * time.Millisecond)
	v.Wait()

	// The 100x100 viewport at scale 1 fits in tile (0,0); the burst
	// must collapse into a single recomputation of that one tile.
	if calls := fb.calls.Load(); calls != 1 {
		t.Errorf("backend saw %d renders, want 1", calls)
	}
}

func TestViewImmediateViewportWithoutDebounce(t *testing.T) {
	fb := newFakeBackend()
	v := NewView(fb, WithViewportDebounce(0))
	defer v.Dispose()

	v.SetViewport(Viewport{X: 0, Y: 0, Width: 10, Height: 10, Scale: 1})
	v.Wait()

	if fb.calls.Load() == 0 {
		t.Error("zero debounce should request immediately")
	}
}

func TestViewDisposeDropsResults(t *testing.T) {
	fb := newFakeBackend()
	fb.hold = make(chan struct{})
	v := NewView(fb, WithViewportDebounce(0))

	var delivered atomic.Int64
	v.OnTile(func(*RenderedTile) { delivered.Add(1) })

	v.RequestTile(TileCoord{X: 0, Y: 0})
	v.Dispose()
	close(fb.hold)
	v.Wait()

	if delivered.Load() != 0 {
		t.Errorf("delivered %d tiles after dispose, want 0", delivered.Load())
	}
	// A disposed view accepts no further work.
	v.RequestTile(TileCoord{X: 1, Y: 1})
	v.Wait()
	if fb.calls.Load() != 1 {
		t.Errorf("backend saw %d calls, want 1", fb.calls.Load())
	}
}

func TestViewRenderErrorDoesNotDeliver(t *testing.T) {
	fb := newFakeBackend()
	fb.fail = true
	v := NewView(fb, WithViewportDebounce(0))
	defer v.Dispose()

	var delivered atomic.Int64
	v.OnTile(func(*RenderedTile) { delivered.Add(1) })

	v.RequestTile(TileCoord{X: 0, Y: 0})
	v.Wait()

	if delivered.Load() != 0 {
		t.Errorf("delivered %d tiles for a failed render", delivered.Load())
	}
	if v.Pending() != 0 {
		t.Errorf("failed render left %d pending entries", v.Pending())
	}
}

func TestViewNilCallbackIsSafe(t *testing.T) {
	fb := newFakeBackend()
	v := NewView(fb, WithViewportDebounce(0))
	defer v.Dispose()

	v.OnTile(nil)
	v.RequestTile(TileCoord{X: 0, Y: 0})
	v.Wait() // must not panic
}
