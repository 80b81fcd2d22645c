package tilescape

import (
	"fmt"
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	placeholderBG   = RGB(0.96, 0.96, 0.96)
	placeholderGrid = RGB(0.88, 0.88, 0.88)
	placeholderText = RGB(0.60, 0.60, 0.60)
)

// PlaceholderTile draws the stand-in shown while a tile renders (or
// after it failed): a light grid with the tile coordinate in the
// corner. A placeholder is always available, so the viewport never
// shows a hole.
func PlaceholderTile(coord TileCoord, size int) *Pixmap {
	if size <= 0 {
		size = BaseTileSize
	}
	pm := NewPixmap(size, size)
	pm.Clear(placeholderBG)

	const cell = 64
	for i := 0; i <= size; i += cell {
		for j := 0; j < size; j++ {
			pm.SetPixel(i, j, placeholderGrid)
			pm.SetPixel(j, i, placeholderGrid)
		}
	}

	DrawLabel(pm, coord.String(), 8, 20, placeholderText)
	return pm
}

// DrawLabel draws a small single-line text label onto the pixmap at
// the given baseline position using the built-in bitmap face.
func DrawLabel(pm *Pixmap, text string, x, y int, c RGBA) {
	img := pm.ToImage()
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c.Color()),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
	copy(pm.Data(), img.Pix)
}

// DebugOverlay draws tile boundaries and the coordinate label over an
// already rendered tile. Enabled through WithDebugOverlay.
func DebugOverlay(pm *Pixmap, coord TileCoord) {
	edge := RGBAOf(1, 0, 1, 0.6)
	w, h := pm.Width(), pm.Height()
	for x := 0; x < w; x++ {
		pm.BlendPixel(x, 0, edge, BlendNormal)
		pm.BlendPixel(x, h-1, edge, BlendNormal)
	}
	for y := 0; y < h; y++ {
		pm.BlendPixel(0, y, edge, BlendNormal)
		pm.BlendPixel(w-1, y, edge, BlendNormal)
	}
	DrawLabel(pm, fmt.Sprintf("tile %s", coord), 8, 20, RGBAOf(1, 0, 1, 1))
}
