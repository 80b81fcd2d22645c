package software

import (
	"github.com/tilescape/tilescape"
	"github.com/tilescape/tilescape/internal/filter"
	"github.com/tilescape/tilescape/internal/raster"
)

// renderLocked rasterizes one tile. The caller holds the document
// read lock.
func (b *Backend) renderLocked(coord tilescape.TileCoord) *tilescape.RenderedTile {
	size := b.cfg.TileSize
	worldRect := b.tileBounds(coord)

	var surface *tilescape.Pixmap
	if size == tilescape.BaseTileSize {
		surface = tilescape.NewTilePixmap()
	} else {
		surface = tilescape.NewPixmap(size, size)
	}
	surface.Clear(tilescape.White)

	// World to surface: translate the tile origin out, then scale so
	// the tile's world extent fills the fixed-size surface.
	scale := float64(size) / worldRect.W
	m := tilescape.Scale(scale, scale).Multiply(tilescape.Translate(-worldRect.X, -worldRect.Y))

	nodes := b.index.Intersecting(worldRect, coord.LOD)
	for _, nb := range nodes {
		props, ok := b.doc.NodeByID(nb.ID)
		if !ok {
			continue
		}
		// The decoded position is parent-relative; the index entry
		// carries the accumulated placement and ancestor opacity.
		node := tilescape.DecodeNode(nb.ID, props)
		node.X += nb.Offset.X
		node.Y += nb.Offset.Y
		b.renderNode(surface, node, m, scale, nb.Opacity)
	}

	if b.cfg.DebugOverlay {
		tilescape.DebugOverlay(surface, coord)
	}

	tilescape.Logger().Debug("tile rendered",
		"coord", coord.String(), "nodes", len(nodes))

	return &tilescape.RenderedTile{
		Coord:     coord,
		Pixels:    surface,
		NodeCount: len(nodes),
	}
}

// renderNode paints one node into its own layer and composites the
// layer onto the surface with the node's opacity and blend mode, so
// overlaps inside the node are not double-counted. inherited is the
// opacity product of the node's ancestors; a dimmed group dims every
// leaf under it.
func (b *Backend) renderNode(surface *tilescape.Pixmap, node *tilescape.Node, m tilescape.Matrix, scale, inherited float64) {
	opacity := node.Opacity * inherited
	if !node.Visible || opacity <= 0 {
		return
	}

	shape := nodeShape(node)
	layer := tilescape.NewPixmap(surface.Width(), surface.Height())

	for _, e := range node.Effects {
		if e.Visible && e.Kind == tilescape.EffectDropShadow {
			b.drawDropShadow(layer, node, shape, e, m, scale)
		}
	}

	box := m.TransformRect(node.Bounds())
	if node.Type == tilescape.NodeText {
		b.drawText(layer, node, m)
	} else if shape != nil {
		for _, p := range node.Fills {
			if !p.Visible {
				continue
			}
			if p.Kind == tilescape.PaintImage {
				b.drawImageFill(layer, node, p, shape, m)
				continue
			}
			fillPath(layer, shape, m, node.FillRule, p.Brush(box))
		}
		if len(node.Strokes) > 0 && node.StrokeWeight > 0 {
			strokeShape := shape
			if node.StrokeGeometry != nil && !node.StrokeGeometry.Empty() {
				strokeShape = worldGeometry(node, node.StrokeGeometry)
			}
			for _, p := range node.Strokes {
				if !p.Visible {
					continue
				}
				strokePath(layer, strokeShape, m, node.StrokeWeight*scale, p.Brush(box))
			}
		}
	}

	for _, e := range node.Effects {
		if e.Visible && e.Kind == tilescape.EffectInnerShadow && shape != nil {
			b.drawInnerShadow(layer, node, shape, e, m, scale)
		}
	}

	for _, e := range node.Effects {
		// Background blur needs the backdrop, which a per-node layer
		// does not see; it degrades to a layer blur.
		if e.Visible && (e.Kind == tilescape.EffectLayerBlur || e.Kind == tilescape.EffectBackgroundBlur) {
			filter.GaussianBlur(layer.Data(), layer.Width(), layer.Height(), e.Radius*scale)
		}
	}

	compositeLayer(surface, layer, opacity, node.Blend)
}

// drawDropShadow fills the node's silhouette, shifted by the shadow
// offset and inflated by its spread, then blurs it in place.
func (b *Backend) drawDropShadow(layer *tilescape.Pixmap, node *tilescape.Node, shape *tilescape.Path, e tilescape.Effect, m tilescape.Matrix, scale float64) {
	silhouette := shadowSilhouette(node, shape, e)
	if silhouette == nil {
		return
	}

	scratch := tilescape.NewPixmap(layer.Width(), layer.Height())
	fillPath(scratch, silhouette, m, tilescape.NonZero, tilescape.Solid(e.Color))
	filter.GaussianBlur(scratch.Data(), scratch.Width(), scratch.Height(), e.Radius*scale/2)
	compositeLayer(layer, scratch, 1, tilescape.BlendNormal)
}

// drawInnerShadow darkens the rim inside the shape: an oversized rect
// minus the shifted shape, blurred, then clipped to the shape.
func (b *Backend) drawInnerShadow(layer *tilescape.Pixmap, node *tilescape.Node, shape *tilescape.Path, e tilescape.Effect, m tilescape.Matrix, scale float64) {
	bounds := node.Bounds().Outset(e.Radius + 1)
	outer := tilescape.NewPath()
	outer.MoveTo(bounds.X, bounds.Y)
	outer.LineTo(bounds.MaxX(), bounds.Y)
	outer.LineTo(bounds.MaxX(), bounds.MaxY())
	outer.LineTo(bounds.X, bounds.MaxY())
	outer.Close()

	shifted := shape.Transform(tilescape.Translate(e.Offset.X, e.Offset.Y))

	// Even-odd across both subpaths leaves exactly the region outside
	// the shifted shape.
	combined := outer
	for _, el := range shifted.Elements() {
		combined = appendElement(combined, el)
	}

	scratch := tilescape.NewPixmap(layer.Width(), layer.Height())
	fillPath(scratch, combined, m, tilescape.EvenOdd, tilescape.Solid(e.Color))
	filter.GaussianBlur(scratch.Data(), scratch.Width(), scratch.Height(), e.Radius*scale/2)

	clipToShape(scratch, shape, m, node.FillRule)
	compositeLayer(layer, scratch, 1, tilescape.BlendNormal)
}

// fillPath rasterizes a world-space path onto the layer through the
// given brush, which shades in surface coordinates.
func fillPath(layer *tilescape.Pixmap, path *tilescape.Path, m tilescape.Matrix, rule tilescape.FillRule, brush tilescape.Brush) {
	tp := path.Transform(m)

	subpaths := toRasterSubpaths(tp.Flatten(tilescape.FlattenTolerance))
	if len(subpaths) == 0 {
		return
	}

	rrule := raster.FillRuleNonZero
	if rule == tilescape.EvenOdd {
		rrule = raster.FillRuleEvenOdd
	}

	r := raster.NewRasterizer()
	r.Fill(&layerSurface{layer}, subpaths, rrule, brushShader(brush))
}

// strokePath rasterizes the outline of a world-space path at the given
// surface-space width.
func strokePath(layer *tilescape.Pixmap, path *tilescape.Path, m tilescape.Matrix, width float64, brush tilescape.Brush) {
	tp := path.Transform(m)

	r := raster.NewRasterizer()
	shader := brushShader(brush)
	for _, sub := range tp.Flatten(tilescape.FlattenTolerance) {
		pts := make([]raster.Point, 0, len(sub)+1)
		for _, p := range sub {
			pts = append(pts, raster.Point{X: p.X, Y: p.Y})
		}
		if len(pts) > 1 {
			pts = append(pts, pts[0]) // subpaths are closed polylines
		}
		for _, quad := range raster.StrokePolygon(pts, width) {
			r.Fill(&layerSurface{layer}, [][]raster.Point{quad}, raster.FillRuleNonZero, shader)
		}
	}
}

// clipToShape zeroes every scratch pixel outside the shape.
func clipToShape(scratch *tilescape.Pixmap, shape *tilescape.Path, m tilescape.Matrix, rule tilescape.FillRule) {
	mask := newMask(scratch.Width(), scratch.Height())
	tp := shape.Transform(m)

	rrule := raster.FillRuleNonZero
	if rule == tilescape.EvenOdd {
		rrule = raster.FillRuleEvenOdd
	}
	r := raster.NewRasterizer()
	r.Fill(mask, toRasterSubpaths(tp.Flatten(tilescape.FlattenTolerance)), rrule,
		func(x, y float64) raster.RGBA { return raster.RGBA{A: 1} })

	data := scratch.Data()
	for i := range mask.cov {
		if !mask.cov[i] {
			o := i * 4
			data[o], data[o+1], data[o+2], data[o+3] = 0, 0, 0, 0
		}
	}
}

// compositeLayer blends a layer onto dst with an extra opacity and a
// blend mode applied once for the whole layer.
func compositeLayer(dst, layer *tilescape.Pixmap, opacity float64, mode tilescape.BlendMode) {
	w, h := dst.Width(), dst.Height()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := layer.GetPixel(x, y)
			if c.A <= 0 {
				continue
			}
			dst.BlendPixel(x, y, c.MulAlpha(opacity), mode)
		}
	}
}

// layerSurface adapts a Pixmap to the rasterizer's Surface.
type layerSurface struct {
	pm *tilescape.Pixmap
}

func (s *layerSurface) Width() int  { return s.pm.Width() }
func (s *layerSurface) Height() int { return s.pm.Height() }
func (s *layerSurface) BlendPixel(x, y int, c raster.RGBA) {
	s.pm.BlendPixel(x, y, tilescape.RGBA(c), tilescape.BlendNormal)
}

// mask records boolean coverage for clipping.
type mask struct {
	w, h int
	cov  []bool
}

func newMask(w, h int) *mask {
	return &mask{w: w, h: h, cov: make([]bool, w*h)}
}

func (m *mask) Width() int  { return m.w }
func (m *mask) Height() int { return m.h }
func (m *mask) BlendPixel(x, y int, _ raster.RGBA) {
	m.cov[y*m.w+x] = true
}

// appendElement replays one path element onto dst.
func appendElement(dst *tilescape.Path, el tilescape.PathElement) *tilescape.Path {
	switch e := el.(type) {
	case tilescape.MoveTo:
		dst.MoveTo(e.Point.X, e.Point.Y)
	case tilescape.LineTo:
		dst.LineTo(e.Point.X, e.Point.Y)
	case tilescape.QuadTo:
		dst.QuadraticTo(e.Control.X, e.Control.Y, e.Point.X, e.Point.Y)
	case tilescape.CubicTo:
		dst.CubicTo(e.Control1.X, e.Control1.Y, e.Control2.X, e.Control2.Y, e.Point.X, e.Point.Y)
	case tilescape.Close:
		dst.Close()
	}
	return dst
}

func brushShader(brush tilescape.Brush) raster.Shader {
	return func(x, y float64) raster.RGBA {
		return raster.RGBA(brush.ColorAt(x, y))
	}
}

func toRasterSubpaths(subpaths [][]tilescape.Point) [][]raster.Point {
	out := make([][]raster.Point, 0, len(subpaths))
	for _, sub := range subpaths {
		pts := make([]raster.Point, len(sub))
		for i, p := range sub {
			pts[i] = raster.Point{X: p.X, Y: p.Y}
		}
		out = append(out, pts)
	}
	return out
}
