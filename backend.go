package tilescape

// Backend renders tiles from a document. It abstracts the rendering
// implementation so the library can ship interchangeable backends
// (portable software rasterizer, optional native companion).
//
// Backends are registered in the backend package and selected through
// its Selector, which itself implements this interface.
type Backend interface {
	// Name returns the backend identifier (e.g. "software", "native").
	Name() string

	// Initialize binds the backend to a document and the node id
	// rendering starts from, resolving the source once. It must be
	// called before any rendering operation.
	Initialize(src Source, rootID string) error

	// IsReady reports whether Initialize has succeeded.
	IsReady() bool

	// RenderTile rasterizes one tile synchronously. A cached tile is
	// returned with FromCache set and identical pixels. Calling
	// RenderTile before Initialize is a caller bug and returns an
	// error.
	RenderTile(coord TileCoord) (*RenderedTile, error)

	// VisibleTiles returns the tile coordinates covering the viewport
	// at its hysteresis-stabilized LOD.
	VisibleTiles(v Viewport) []TileCoord

	// InvalidateTiles drops cached tiles affected by the given node
	// ids and rebuilds the spatial index.
	InvalidateTiles(nodeIDs []string)

	// ClearCache drops every cached tile.
	ClearCache()

	// Stats returns a snapshot of cache occupancy and hit counters.
	Stats() Stats

	// Dispose releases all backend resources. The backend must not be
	// used afterwards.
	Dispose()
}

// RenderedTile is the result of rasterizing one tile coordinate.
// Pixels are owned by the backend's tile cache and released when the
// entry is evicted or invalidated; callers must not retain the pixmap
// past the next cache mutation.
type RenderedTile struct {
	Coord     TileCoord
	Pixels    *Pixmap
	NodeCount int
	FromCache bool
}

// Stats is a snapshot of a backend's cache state.
type Stats struct {
	CachedTiles  int
	PendingTiles int
	MaxTiles     int
	Hits         uint64
	Misses       uint64
	HitRate      float64
}
