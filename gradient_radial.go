package tilescape

import "math"

// RadialGradientBrush represents a circular color transition radiating
// from a center point out to a radius.
type RadialGradientBrush struct {
	Center Point       // Center of the gradient
	Radius float64     // Radius at which the last stop is reached
	Stops  []ColorStop // Color stops defining the gradient
}

// NewRadialGradientBrush creates a new radial gradient centered at
// (cx, cy) with the given radius.
func NewRadialGradientBrush(cx, cy, radius float64) *RadialGradientBrush {
	return &RadialGradientBrush{
		Center: Point{X: cx, Y: cy},
		Radius: radius,
	}
}

// AddColorStop adds a color stop at the specified offset.
// Returns the gradient for method chaining.
func (g *RadialGradientBrush) AddColorStop(offset float64, c RGBA) *RadialGradientBrush {
	g.Stops = append(g.Stops, ColorStop{Offset: offset, Color: c})
	return g
}

// brushMarker implements the Brush interface marker.
func (*RadialGradientBrush) brushMarker() {}

// ColorAt returns the color at the given point based on its distance
// from the center. Points beyond the radius clamp to the last stop.
func (g *RadialGradientBrush) ColorAt(x, y float64) RGBA {
	if g.Radius <= 0 {
		return firstStopColor(g.Stops)
	}
	dx := x - g.Center.X
	dy := y - g.Center.Y
	t := math.Sqrt(dx*dx+dy*dy) / g.Radius
	return colorAtOffset(g.Stops, t)
}
