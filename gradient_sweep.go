package tilescape

import "math"

// AngularGradientBrush represents a conic color transition sweeping
// around a center point. The gradient starts at the given angle and
// completes a full turn back to it.
type AngularGradientBrush struct {
	Center     Point       // Center of the sweep
	StartAngle float64     // Angle in radians where offset 0 lies
	Stops      []ColorStop // Color stops defining the gradient
}

// NewAngularGradientBrush creates a new angular gradient centered at
// (cx, cy) starting at startAngle radians.
func NewAngularGradientBrush(cx, cy, startAngle float64) *AngularGradientBrush {
	return &AngularGradientBrush{
		Center:     Point{X: cx, Y: cy},
		StartAngle: startAngle,
	}
}

// AddColorStop adds a color stop at the specified offset.
// Returns the gradient for method chaining.
func (g *AngularGradientBrush) AddColorStop(offset float64, c RGBA) *AngularGradientBrush {
	g.Stops = append(g.Stops, ColorStop{Offset: offset, Color: c})
	return g
}

// brushMarker implements the Brush interface marker.
func (*AngularGradientBrush) brushMarker() {}

// ColorAt returns the color at the given point based on its angle
// around the center, as a fraction of a full turn from StartAngle.
func (g *AngularGradientBrush) ColorAt(x, y float64) RGBA {
	dx := x - g.Center.X
	dy := y - g.Center.Y
	if dx == 0 && dy == 0 {
		return firstStopColor(g.Stops)
	}
	t := normAngle(math.Atan2(dy, dx) - g.StartAngle)
	return colorAtOffset(g.Stops, t)
}
