package tilescape

import "math"

// PaintKind identifies how a Paint fills geometry.
type PaintKind int

const (
	PaintSolid PaintKind = iota
	PaintGradientLinear
	PaintGradientRadial
	PaintGradientAngular
	PaintGradientDiamond
	PaintImage
)

// String returns the wire name of the paint kind.
func (k PaintKind) String() string {
	switch k {
	case PaintSolid:
		return "SOLID"
	case PaintGradientLinear:
		return "GRADIENT_LINEAR"
	case PaintGradientRadial:
		return "GRADIENT_RADIAL"
	case PaintGradientAngular:
		return "GRADIENT_ANGULAR"
	case PaintGradientDiamond:
		return "GRADIENT_DIAMOND"
	case PaintImage:
		return "IMAGE"
	}
	return "SOLID"
}

// ParsePaintKind maps a wire name to a PaintKind. Unknown names map to
// PaintSolid.
func ParsePaintKind(s string) PaintKind {
	switch s {
	case "GRADIENT_LINEAR":
		return PaintGradientLinear
	case "GRADIENT_RADIAL":
		return PaintGradientRadial
	case "GRADIENT_ANGULAR":
		return PaintGradientAngular
	case "GRADIENT_DIAMOND":
		return PaintGradientDiamond
	case "IMAGE":
		return PaintImage
	}
	return PaintSolid
}

// BlendMode selects how a layer combines with the pixels beneath it.
type BlendMode int

const (
	BlendNormal BlendMode = iota
	BlendMultiply
	BlendScreen
	BlendOverlay
	BlendDarken
	BlendLighten
	BlendDifference
	BlendExclusion
)

// ParseBlendMode maps a wire name to a BlendMode. Unknown or
// pass-through names map to BlendNormal.
func ParseBlendMode(s string) BlendMode {
	switch s {
	case "MULTIPLY":
		return BlendMultiply
	case "SCREEN":
		return BlendScreen
	case "OVERLAY":
		return BlendOverlay
	case "DARKEN":
		return BlendDarken
	case "LIGHTEN":
		return BlendLighten
	case "DIFFERENCE":
		return BlendDifference
	case "EXCLUSION":
		return BlendExclusion
	}
	return BlendNormal
}

// String returns the wire name of the blend mode.
func (m BlendMode) String() string {
	switch m {
	case BlendMultiply:
		return "MULTIPLY"
	case BlendScreen:
		return "SCREEN"
	case BlendOverlay:
		return "OVERLAY"
	case BlendDarken:
		return "DARKEN"
	case BlendLighten:
		return "LIGHTEN"
	case BlendDifference:
		return "DIFFERENCE"
	case BlendExclusion:
		return "EXCLUSION"
	}
	return "NORMAL"
}

// ScaleMode selects how an image paint maps into its box.
type ScaleMode int

const (
	// ScaleFill stretches the image to cover the box exactly.
	ScaleFill ScaleMode = iota
	// ScaleFit scales the image to fit entirely inside the box,
	// centered, preserving aspect ratio.
	ScaleFit
)

// ParseScaleMode maps a wire name to a ScaleMode. Unknown names map to
// ScaleFill.
func ParseScaleMode(s string) ScaleMode {
	if s == "FIT" {
		return ScaleFit
	}
	return ScaleFill
}

// Paint describes one fill (or stroke) layer of a node, decoded from
// raw properties. Gradient geometry is carried as up to three handle
// positions normalized to the node's local box: handle 0 is the
// gradient origin, handle 1 the primary axis endpoint, handle 2 the
// secondary axis endpoint (radial/diamond width).
type Paint struct {
	Kind    PaintKind
	Color   RGBA        // PaintSolid
	Stops   []ColorStop // gradient kinds
	Handles [3]Point    // gradient kinds, normalized to the local box

	ImageRef  string    // PaintImage: key into the resource cache
	ScaleMode ScaleMode // PaintImage

	Opacity float64 // 0..1, applied on top of the paint's own alpha
	Blend   BlendMode
	Visible bool
}

// defaultPaint is the neutral paint used when decoding fails: an
// opaque grey solid.
func defaultPaint() Paint {
	return Paint{Kind: PaintSolid, Color: FallbackGrey, Opacity: 1, Visible: true}
}

// Brush resolves the paint into a brush for the given local box, in
// the box's coordinate space. Gradient kinds with fewer than two stops
// degrade to a solid of the first stop's color, or transparent when
// there are none. Image paints have no intrinsic brush here; the
// backend resolves them against its resource cache and this method
// returns the fallback grey so callers always have something to draw.
func (p Paint) Brush(box Rect) Brush {
	switch p.Kind {
	case PaintSolid:
		return Solid(p.Color.MulAlpha(p.Opacity))

	case PaintGradientLinear, PaintGradientRadial,
		PaintGradientAngular, PaintGradientDiamond:
		if len(p.Stops) < 2 {
			return Solid(firstStopColor(p.Stops).MulAlpha(p.Opacity))
		}
		return p.gradientBrush(box)

	case PaintImage:
		return Solid(FallbackGrey.MulAlpha(p.Opacity))
	}
	return Solid(FallbackGrey.MulAlpha(p.Opacity))
}

func (p Paint) gradientBrush(box Rect) Brush {
	stops := make([]ColorStop, len(p.Stops))
	for i, s := range p.Stops {
		stops[i] = ColorStop{Offset: s.Offset, Color: s.Color.MulAlpha(p.Opacity)}
	}

	// Map normalized handles into the box.
	h0 := Point{X: box.X + p.Handles[0].X*box.W, Y: box.Y + p.Handles[0].Y*box.H}
	h1 := Point{X: box.X + p.Handles[1].X*box.W, Y: box.Y + p.Handles[1].Y*box.H}

	switch p.Kind {
	case PaintGradientLinear:
		g := NewLinearGradientBrush(h0.X, h0.Y, h1.X, h1.Y)
		g.Stops = stops
		return g

	case PaintGradientRadial:
		g := NewRadialGradientBrush(h0.X, h0.Y, h0.Distance(h1))
		g.Stops = stops
		return g

	case PaintGradientAngular:
		start := math.Atan2(h1.Y-h0.Y, h1.X-h0.X)
		g := NewAngularGradientBrush(h0.X, h0.Y, start)
		g.Stops = stops
		return g

	case PaintGradientDiamond:
		g := NewDiamondGradientBrush(h0.X, h0.Y, h0.Distance(h1))
		g.Stops = stops
		return g
	}
	return Solid(firstStopColor(stops))
}
