// Package raster provides scanline rasterization for flattened 2D
// paths. Fills are shaded per pixel through a Shader callback so the
// same scan machinery serves solid colors, gradients and image paints.
package raster

import (
	"math"
	"sort"
)

// Point represents a 2D point (local copy, the package has no deps).
type Point struct {
	X, Y float64
}

// RGBA represents an unmultiplied color with [0, 1] channels.
type RGBA struct {
	R, G, B, A float64
}

// Surface is the pixel sink fills are written to.
type Surface interface {
	Width() int
	Height() int
	BlendPixel(x, y int, c RGBA)
}

// Shader produces the fill color for a pixel center.
type Shader func(x, y float64) RGBA

// FillRule specifies how to determine which areas are inside a path.
type FillRule int

const (
	// FillRuleNonZero uses the non-zero winding rule.
	FillRuleNonZero FillRule = iota
	// FillRuleEvenOdd uses the even-odd rule.
	FillRuleEvenOdd
)

// edge is a non-horizontal line segment prepared for scan conversion.
type edge struct {
	y0, y1 float64 // y0 < y1
	x0     float64 // x at y0
	dxdy   float64
	dir    int // +1 descending in source order, -1 ascending
}

func newEdge(p0, p1 Point) (edge, bool) {
	dir := 1
	if p0.Y > p1.Y {
		dir = -1
		p0, p1 = p1, p0
	}
	dy := p1.Y - p0.Y
	if dy < 1e-9 {
		return edge{}, false
	}
	return edge{
		y0:   p0.Y,
		y1:   p1.Y,
		x0:   p0.X,
		dxdy: (p1.X - p0.X) / dy,
		dir:  dir,
	}, true
}

func (e *edge) xAt(y float64) float64 {
	return e.x0 + (y-e.y0)*e.dxdy
}

// Rasterizer scan-converts flattened polygons. A Rasterizer may be
// reused across fills; it is not safe for concurrent use.
type Rasterizer struct {
	edges  []edge
	active []crossing
}

type crossing struct {
	x   float64
	dir int
}

// NewRasterizer creates a rasterizer.
func NewRasterizer() *Rasterizer {
	return &Rasterizer{}
}

// Fill rasterizes the closed polylines in subpaths onto the surface,
// shading each covered pixel through shade. Subpaths interact through
// the fill rule, so a hole subpath wound the other way (non-zero) or
// any overlapping subpath (even-odd) punches out of the fill.
func (r *Rasterizer) Fill(dst Surface, subpaths [][]Point, rule FillRule, shade Shader) {
	r.edges = r.edges[:0]
	yMin := math.MaxFloat64
	yMax := -math.MaxFloat64

	for _, pts := range subpaths {
		if len(pts) < 3 {
			continue
		}
		for i := 0; i < len(pts); i++ {
			p0 := pts[i]
			p1 := pts[(i+1)%len(pts)]
			if e, ok := newEdge(p0, p1); ok {
				r.edges = append(r.edges, e)
				yMin = math.Min(yMin, e.y0)
				yMax = math.Max(yMax, e.y1)
			}
		}
	}
	if len(r.edges) == 0 {
		return
	}

	y0 := int(math.Floor(yMin))
	y1 := int(math.Ceil(yMax))
	if y0 < 0 {
		y0 = 0
	}
	if y1 > dst.Height() {
		y1 = dst.Height()
	}

	for y := y0; y < y1; y++ {
		r.scanline(dst, float64(y)+0.5, y, rule, shade)
	}
}

func (r *Rasterizer) scanline(dst Surface, scanY float64, y int, rule FillRule, shade Shader) {
	r.active = r.active[:0]
	for i := range r.edges {
		e := &r.edges[i]
		if e.y0 <= scanY && scanY < e.y1 {
			r.active = append(r.active, crossing{x: e.xAt(scanY), dir: e.dir})
		}
	}
	if len(r.active) < 2 {
		return
	}
	sort.Slice(r.active, func(i, j int) bool {
		return r.active[i].x < r.active[j].x
	})

	if rule == FillRuleNonZero {
		winding := 0
		var spanStart float64
		for _, c := range r.active {
			if winding == 0 {
				spanStart = c.x
			}
			winding += c.dir
			if winding == 0 {
				r.fillSpan(dst, spanStart, c.x, y, shade)
			}
		}
		return
	}

	for i := 0; i+1 < len(r.active); i += 2 {
		r.fillSpan(dst, r.active[i].x, r.active[i+1].x, y, shade)
	}
}

// fillSpan shades pixels whose centers fall inside [x1, x2).
func (r *Rasterizer) fillSpan(dst Surface, x1, x2 float64, y int, shade Shader) {
	start := int(math.Ceil(x1 - 0.5))
	end := int(math.Ceil(x2 - 0.5))
	if start < 0 {
		start = 0
	}
	if end > dst.Width() {
		end = dst.Width()
	}
	cy := float64(y) + 0.5
	for x := start; x < end; x++ {
		dst.BlendPixel(x, y, shade(float64(x)+0.5, cy))
	}
}

// StrokePolygon returns the quad outlines covering each segment of a
// polyline stroked at the given width, for filling with the non-zero
// rule. Closed polylines should repeat their first point at the end.
func StrokePolygon(pts []Point, width float64) [][]Point {
	if len(pts) < 2 {
		return nil
	}
	if width < 1 {
		width = 1
	}
	half := width / 2

	var quads [][]Point
	for i := 0; i < len(pts)-1; i++ {
		p0, p1 := pts[i], pts[i+1]
		dx := p1.X - p0.X
		dy := p1.Y - p0.Y
		length := math.Hypot(dx, dy)
		if length < 1e-9 {
			continue
		}
		nx := -dy / length * half
		ny := dx / length * half
		quads = append(quads, []Point{
			{X: p0.X + nx, Y: p0.Y + ny},
			{X: p1.X + nx, Y: p1.Y + ny},
			{X: p1.X - nx, Y: p1.Y - ny},
			{X: p0.X - nx, Y: p0.Y - ny},
		})
	}
	return quads
}
