// Package native registers the "native" backend slot, reserved for a
// companion renderer linked in by embedders. This build carries no
// native library, so initialization always fails and the selector
// falls through to the software backend.
package native

import (
	"errors"

	"github.com/tilescape/tilescape"
	"github.com/tilescape/tilescape/backend"
)

// ErrNoNativeLibrary is returned by Initialize in builds without the
// native companion library.
var ErrNoNativeLibrary = errors.New("native: companion library not linked")

func init() {
	backend.Register(backend.Native, func(cfg tilescape.Config) tilescape.Backend {
		return &Backend{}
	})
}

// Backend is the placeholder for the native renderer.
type Backend struct{}

// Name returns the backend identifier.
func (b *Backend) Name() string { return backend.Native }

// Initialize always fails in builds without the companion library.
func (b *Backend) Initialize(src tilescape.Source, rootID string) error {
	return ErrNoNativeLibrary
}

// IsReady always reports false.
func (b *Backend) IsReady() bool { return false }

// RenderTile fails; the backend never initializes.
func (b *Backend) RenderTile(coord tilescape.TileCoord) (*tilescape.RenderedTile, error) {
	return nil, backend.ErrNotInitialized
}

// VisibleTiles falls back to the package-level tile math.
func (b *Backend) VisibleTiles(v tilescape.Viewport) []tilescape.TileCoord {
	return tilescape.VisibleTiles(v, 0)
}

// InvalidateTiles is a no-op.
func (b *Backend) InvalidateTiles(nodeIDs []string) {}

// ClearCache is a no-op.
func (b *Backend) ClearCache() {}

// Stats returns zeros.
func (b *Backend) Stats() tilescape.Stats { return tilescape.Stats{} }

// Dispose is a no-op.
func (b *Backend) Dispose() {}
