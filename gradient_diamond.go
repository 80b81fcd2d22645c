package tilescape

import "math"

// DiamondGradientBrush represents a color transition whose iso-color
// lines form diamonds around a center point. The gradient parameter is
// the Chebyshev-style diamond distance |dx| + |dy| scaled so that the
// last stop is reached at Radius along either axis.
type DiamondGradientBrush struct {
	Center Point       // Center of the diamond
	Radius float64     // Axis distance at which the last stop is reached
	Stops  []ColorStop // Color stops defining the gradient
}

// NewDiamondGradientBrush creates a new diamond gradient centered at
// (cx, cy) with the given axis radius.
func NewDiamondGradientBrush(cx, cy, radius float64) *DiamondGradientBrush {
	return &DiamondGradientBrush{
		Center: Point{X: cx, Y: cy},
		Radius: radius,
	}
}

// AddColorStop adds a color stop at the specified offset.
// Returns the gradient for method chaining.
func (g *DiamondGradientBrush) AddColorStop(offset float64, c RGBA) *DiamondGradientBrush {
	g.Stops = append(g.Stops, ColorStop{Offset: offset, Color: c})
	return g
}

// brushMarker implements the Brush interface marker.
func (*DiamondGradientBrush) brushMarker() {}

// ColorAt returns the color at the given point based on its L1 distance
// from the center.
func (g *DiamondGradientBrush) ColorAt(x, y float64) RGBA {
	if g.Radius <= 0 {
		return firstStopColor(g.Stops)
	}
	t := (math.Abs(x-g.Center.X) + math.Abs(y-g.Center.Y)) / g.Radius
	return colorAtOffset(g.Stops, t)
}
