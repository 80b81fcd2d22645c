package tilescape

import (
	"errors"
	"math"
)

// ErrInvalidScale is returned when a viewport is constructed with a zero
// or negative zoom scale. This indicates a caller bug: screen transforms
// must be clamped before they reach the engine.
var ErrInvalidScale = errors.New("tilescape: viewport scale must be positive")

// Viewport describes the world-space region currently visible on screen.
// It is an immutable value, recreated whenever the screen transform
// changes.
type Viewport struct {
	// X, Y is the world-space position of the viewport's top-left corner.
	X, Y float64
	// Width, Height is the viewport extent in world units.
	Width, Height float64
	// Scale is the zoom factor (1.0 = 100%, 0.5 = 50%).
	Scale float64
}

// ViewportFromScreen derives the world-space viewport from the screen
// size and the pan/zoom transform applied to the canvas.
func ViewportFromScreen(screenW, screenH, translateX, translateY, scale float64) (Viewport, error) {
	if scale <= 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		return Viewport{}, ErrInvalidScale
	}
	return Viewport{
		X:      -translateX / scale,
		Y:      -translateY / scale,
		Width:  screenW / scale,
		Height: screenH / scale,
		Scale:  scale,
	}, nil
}

// Rect returns the viewport's world-space rectangle.
func (v Viewport) Rect() Rect {
	return Rect{X: v.X, Y: v.Y, W: v.Width, H: v.Height}
}

// VisibleTiles computes the integer tile range covering the viewport at
// the given LOD: floor of each boundary, inclusive on both ends. A max
// edge landing exactly on a tile boundary includes the adjoining tile,
// a small deliberate over-fetch that avoids seams while panning. The
// software backend computes its tile range with the same formula.
func VisibleTiles(v Viewport, lod uint8) []TileCoord {
	size := float64(EffectiveTileSize(lod))

	minTX := int32(math.Floor(v.X / size))
	minTY := int32(math.Floor(v.Y / size))
	maxTX := int32(math.Floor((v.X + v.Width) / size))
	maxTY := int32(math.Floor((v.Y + v.Height) / size))

	tiles := make([]TileCoord, 0, (maxTX-minTX+1)*(maxTY-minTY+1))
	for ty := minTY; ty <= maxTY; ty++ {
		for tx := minTX; tx <= maxTX; tx++ {
			tiles = append(tiles, TileCoord{X: tx, Y: ty, LOD: lod})
		}
	}
	return tiles
}
