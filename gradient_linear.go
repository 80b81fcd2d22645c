package tilescape

// LinearGradientBrush represents a linear color transition between two points.
// It implements the Brush interface and supports multiple color stops.
//
// Example:
//
//	gradient := tilescape.NewLinearGradientBrush(0, 0, 100, 0).
//	    AddColorStop(0, tilescape.RGB(1, 0, 0)).
//	    AddColorStop(1, tilescape.RGB(0, 0, 1))
type LinearGradientBrush struct {
	Start Point       // Start point of the gradient
	End   Point       // End point of the gradient
	Stops []ColorStop // Color stops defining the gradient
}

// NewLinearGradientBrush creates a new linear gradient from (x0, y0) to (x1, y1).
func NewLinearGradientBrush(x0, y0, x1, y1 float64) *LinearGradientBrush {
	return &LinearGradientBrush{
		Start: Point{X: x0, Y: y0},
		End:   Point{X: x1, Y: y1},
	}
}

// AddColorStop adds a color stop at the specified offset.
// Offset should be in the range [0, 1].
// Returns the gradient for method chaining.
func (g *LinearGradientBrush) AddColorStop(offset float64, c RGBA) *LinearGradientBrush {
	g.Stops = append(g.Stops, ColorStop{Offset: offset, Color: c})
	return g
}

// brushMarker implements the Brush interface marker.
func (*LinearGradientBrush) brushMarker() {}

// ColorAt returns the color at the given point.
// The point is projected onto the start-end axis and the projection
// parameter selects the stop color, clamped at either end.
func (g *LinearGradientBrush) ColorAt(x, y float64) RGBA {
	dx := g.End.X - g.Start.X
	dy := g.End.Y - g.Start.Y
	lengthSq := dx*dx + dy*dy

	// Zero-length gradient (start == end) degenerates to the first stop.
	if lengthSq == 0 {
		return firstStopColor(g.Stops)
	}

	px := x - g.Start.X
	py := y - g.Start.Y
	t := (px*dx + py*dy) / lengthSq

	return colorAtOffset(g.Stops, t)
}
