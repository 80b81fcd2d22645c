// Package tilescape is a tile-based rendering and caching engine for
// vector design documents.
//
// # Overview
//
// tilescape lets a design-document viewer display very large scenes
// (tens of thousands of shapes) interactively at any zoom level. It
// decomposes an unbounded 2D canvas into fixed-size spatial tiles,
// rasterizes each tile lazily and asynchronously on the CPU, and caches
// the results under bounded memory. While panning or zooming, cached
// tiles are reused and placeholders fill the slots of tiles that are
// still being computed, so the viewport never shows a blank hole.
//
// # Quick Start
//
//	import (
//	    "github.com/tilescape/tilescape"
//	    "github.com/tilescape/tilescape/backend"
//	    _ "github.com/tilescape/tilescape/backend/software"
//	)
//
//	sel := backend.NewSelector(tilescape.ApplyOptions(
//	    tilescape.WithPreferredBackend(backend.Software),
//	))
//	if err := sel.Initialize(tilescape.DocumentSource(doc), rootID); err != nil {
//	    log.Fatal(err)
//	}
//	view := tilescape.NewView(sel)
//	view.OnTile(func(t *tilescape.RenderedTile) { /* repaint */ })
//
//	vp, err := tilescape.ViewportFromScreen(1920, 1080, 0, 0, 1.0)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	view.SetViewport(vp)
//
// # Architecture
//
// The library is organized into:
//   - Public API: Viewport, TileCoord, LODSelector, Node, Paint, Path, Pixmap, View
//   - Backends: backend (selector/registry), backend/software (CPU rasterizer),
//     backend/native (companion high-performance backend, when available)
//   - Caching: cache (bounded LRU), resource (async decoded-image cache)
//   - Internal: raster (scanline), blend (compositing), filter (blur)
//
// # Coordinate System
//
// World coordinates use the document's own units with the origin at the
// canvas top-left, X increasing right and Y increasing down. A tile is a
// fixed-size square region of the world canvas; its pixel output is a
// pure function of the document state, the spatial index and the level
// of detail, so any cached tile may be evicted and recomputed at will.
//
// # Rendering Model
//
// The document is treated as read-only during a render pass. Editing
// tools mutate the document elsewhere and notify the engine through
// Backend.InvalidateTiles with the changed node ids; the engine responds
// with a conservative cache clear and re-renders lazily.
package tilescape
