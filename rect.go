package tilescape

// Rect is an axis-aligned rectangle in world coordinates, described by
// its top-left corner and extent.
type Rect struct {
	X, Y, W, H float64
}

// RectOf creates a Rect from position and extent.
func RectOf(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// MaxX returns the right edge of the rectangle.
func (r Rect) MaxX() float64 { return r.X + r.W }

// MaxY returns the bottom edge of the rectangle.
func (r Rect) MaxY() float64 { return r.Y + r.H }

// Empty reports whether the rectangle has non-positive extent.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Intersects reports whether r and other overlap. Touching edges count
// as overlapping, matching the intentional over-fetch at tile seams.
func (r Rect) Intersects(other Rect) bool {
	return !(r.MaxX() < other.X ||
		r.X > other.MaxX() ||
		r.MaxY() < other.Y ||
		r.Y > other.MaxY())
}

// Contains reports whether the point (x, y) lies within the rectangle,
// edges included.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.MaxX() && y >= r.Y && y <= r.MaxY()
}

// Union returns the smallest rectangle covering both r and other.
func (r Rect) Union(other Rect) Rect {
	if r.Empty() {
		return other
	}
	if other.Empty() {
		return r
	}
	x := min(r.X, other.X)
	y := min(r.Y, other.Y)
	return Rect{
		X: x,
		Y: y,
		W: max(r.MaxX(), other.MaxX()) - x,
		H: max(r.MaxY(), other.MaxY()) - y,
	}
}

// Outset returns the rectangle grown by d on every side. A negative d
// shrinks it.
func (r Rect) Outset(d float64) Rect {
	return Rect{X: r.X - d, Y: r.Y - d, W: r.W + 2*d, H: r.H + 2*d}
}

// Translate returns the rectangle shifted by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}
