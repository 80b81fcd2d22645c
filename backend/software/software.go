// Package software implements the portable CPU rendering backend. It
// rasterizes tiles with a scanline filler, caches them under an LRU
// bound, and resolves image fills through the asynchronous resource
// cache.
package software

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"github.com/tilescape/tilescape"
	"github.com/tilescape/tilescape/backend"
	"github.com/tilescape/tilescape/cache"
	"github.com/tilescape/tilescape/resource"
)

func init() {
	backend.Register(backend.Software, func(cfg tilescape.Config) tilescape.Backend {
		return New(cfg)
	})
}

// Backend is the software rasterizer. Create one through the backend
// registry or with New; bind it to a document with Initialize.
type Backend struct {
	cfg tilescape.Config

	// mu guards document binding and index rebuilds. Tile renders hold
	// it read-side: the document is treated as frozen while any render
	// is in flight, so rebuilds wait for renders and vice versa.
	mu     sync.RWMutex
	doc    tilescape.Document
	rootID string
	index  *tilescape.SpatialIndex

	tiles     *cache.LRU[tilescape.TileCoord, *tilescape.RenderedTile]
	resources *resource.Cache
	lod       *tilescape.LODSelector

	ready     atomic.Bool
	rendering atomic.Int64
}

// New creates an uninitialized software backend.
func New(cfg tilescape.Config) *Backend {
	if cfg.TileSize <= 0 {
		cfg.TileSize = tilescape.BaseTileSize
	}
	if cfg.MaxCachedTiles <= 0 {
		cfg.MaxCachedTiles = tilescape.DefaultMaxCachedTiles
	}
	b := &Backend{
		cfg:   cfg,
		index: tilescape.NewSpatialIndex(),
		lod:   tilescape.NewLODSelector(),
	}
	b.tiles = cache.New[tilescape.TileCoord, *tilescape.RenderedTile](cfg.MaxCachedTiles)
	b.tiles.OnEvict(func(_ tilescape.TileCoord, t *tilescape.RenderedTile) {
		if t.Pixels != nil {
			t.Pixels.Release()
		}
	})
	return b
}

// Name returns the backend identifier.
func (b *Backend) Name() string { return backend.Software }

// Initialize binds the backend to an in-process document and builds
// the spatial index. Native handles are not renderable here.
func (b *Backend) Initialize(src tilescape.Source, rootID string) error {
	if src.Document == nil {
		return fmt.Errorf("software: in-process document required")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if rootID == "" {
		root, ok := src.Document.RootNode("")
		if !ok {
			return fmt.Errorf("software: document has no default page")
		}
		rootID = root
	}
	if _, ok := src.Document.NodeByID(rootID); !ok {
		return fmt.Errorf("software: root node %q not found", rootID)
	}

	b.doc = src.Document
	b.rootID = rootID
	b.index.Rebuild(b.doc, rootID)

	// Re-initialization replaces the resource cache; the old one must
	// stop its debounce timer and in-flight decodes first.
	if b.resources != nil {
		b.resources.Close()
	}

	// A burst of finished image decodes repaints through one
	// conservative cache clear.
	b.resources = resource.NewCache(func() {
		tilescape.Logger().Debug("resources ready, clearing tile cache")
		b.tiles.Clear()
	})

	b.lod.Reset()
	b.ready.Store(true)
	return nil
}

// IsReady reports whether Initialize has succeeded.
func (b *Backend) IsReady() bool { return b.ready.Load() }

// RenderTile rasterizes one tile, serving repeated coordinates from
// the cache with identical pixels.
func (b *Backend) RenderTile(coord tilescape.TileCoord) (*tilescape.RenderedTile, error) {
	if !b.ready.Load() {
		return nil, backend.ErrNotInitialized
	}

	if cached, ok := b.tiles.Get(coord); ok {
		return &tilescape.RenderedTile{
			Coord:     cached.Coord,
			Pixels:    cached.Pixels,
			NodeCount: cached.NodeCount,
			FromCache: true,
		}, nil
	}

	b.rendering.Add(1)
	defer b.rendering.Add(-1)

	b.mu.RLock()
	tile := b.renderLocked(coord)
	b.mu.RUnlock()

	b.tiles.Set(coord, tile)
	return tile, nil
}

// VisibleTiles returns the tiles covering the viewport at its
// hysteresis-stabilized LOD.
func (b *Backend) VisibleTiles(v tilescape.Viewport) []tilescape.TileCoord {
	lod := b.lod.Select(v.Scale)
	return b.visibleTiles(v, lod)
}

func (b *Backend) visibleTiles(v tilescape.Viewport, lod uint8) []tilescape.TileCoord {
	size := float64(b.effectiveTileSize(lod))
	r := v.Rect()

	x0 := int32(floorDiv(r.X, size))
	y0 := int32(floorDiv(r.Y, size))
	x1 := int32(floorDiv(r.MaxX(), size))
	y1 := int32(floorDiv(r.MaxY(), size))

	tiles := make([]tilescape.TileCoord, 0, (x1-x0+1)*(y1-y0+1))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			tiles = append(tiles, tilescape.TileCoord{X: x, Y: y, LOD: lod})
		}
	}
	return tiles
}

// effectiveTileSize is the tile edge in world units at a LOD, based on
// the configured base size.
func (b *Backend) effectiveTileSize(lod uint8) int {
	return b.cfg.TileSize * int(tilescape.LODMultiplier(lod))
}

// tileBounds is the world rectangle a tile covers.
func (b *Backend) tileBounds(coord tilescape.TileCoord) tilescape.Rect {
	size := float64(b.effectiveTileSize(coord.LOD))
	return tilescape.Rect{
		X: float64(coord.X) * size,
		Y: float64(coord.Y) * size,
		W: size,
		H: size,
	}
}

// InvalidateTiles handles changed nodes: the spatial index is rebuilt
// and the whole tile cache dropped. Per-node tile tracking is not
// worth the bookkeeping; render cost is bounded by the viewport.
func (b *Backend) InvalidateTiles(nodeIDs []string) {
	if !b.ready.Load() {
		return
	}
	b.mu.Lock()
	b.index.Rebuild(b.doc, b.rootID)
	b.mu.Unlock()
	b.tiles.Clear()
	tilescape.Logger().Debug("tiles invalidated", "changed", len(nodeIDs))
}

// ClearCache drops every cached tile.
func (b *Backend) ClearCache() {
	b.tiles.Clear()
}

// Stats returns cache occupancy and cumulative counters.
func (b *Backend) Stats() tilescape.Stats {
	s := b.tiles.Stats()
	return tilescape.Stats{
		CachedTiles:  b.tiles.Len(),
		PendingTiles: int(b.rendering.Load()),
		MaxTiles:     b.tiles.Capacity(),
		Hits:         s.Hits,
		Misses:       s.Misses,
		HitRate:      b.tiles.HitRate(),
	}
}

// Dispose releases caches and detaches from the document.
func (b *Backend) Dispose() {
	if !b.ready.CompareAndSwap(true, false) {
		return
	}
	if b.resources != nil {
		b.resources.Close()
	}
	b.tiles.Clear()
	b.mu.Lock()
	b.doc = nil
	b.mu.Unlock()
}

func floorDiv(v, size float64) float64 {
	return math.Floor(v / size)
}
