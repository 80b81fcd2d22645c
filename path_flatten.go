package tilescape

import "math"

// FlattenTolerance is the maximum distance between a curve and its
// polyline approximation, in destination pixels.
const FlattenTolerance = 0.1

// Flatten converts the path into polylines, one per subpath. Curves are
// subdivided until they are within tolerance of a straight line. Every
// subpath is returned closed (last point equals first), which is what
// the scanline rasterizer expects; paths with holes therefore keep their
// winding intact across subpaths.
func (p *Path) Flatten(tolerance float64) [][]Point {
	if tolerance <= 0 {
		tolerance = FlattenTolerance
	}

	var subpaths [][]Point
	var pts []Point
	var start, current Point

	flush := func(closed bool) {
		if len(pts) < 2 {
			pts = nil
			return
		}
		if !closed && pts[len(pts)-1] != pts[0] {
			// Implicitly close unclosed subpaths for filling.
			pts = append(pts, pts[0])
		}
		subpaths = append(subpaths, pts)
		pts = nil
	}

	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			flush(false)
			start = e.Point
			current = e.Point
			pts = append(pts, current)
		case LineTo:
			current = e.Point
			pts = append(pts, current)
		case QuadTo:
			flattenQuad(current, e.Control, e.Point, tolerance, &pts)
			current = e.Point
		case CubicTo:
			flattenCubic(current, e.Control1, e.Control2, e.Point, tolerance, &pts)
			current = e.Point
		case Close:
			if len(pts) > 0 && current != start {
				pts = append(pts, start)
			}
			current = start
			flush(true)
		}
	}
	flush(false)
	return subpaths
}

// flattenQuad recursively subdivides a quadratic Bezier curve until it
// is within tolerance of a line.
func flattenQuad(p0, p1, p2 Point, tolerance float64, out *[]Point) {
	if distanceToSegment(p1, p0, p2) < tolerance {
		*out = append(*out, p2)
		return
	}
	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	mid := q0.Lerp(q1, 0.5)
	flattenQuad(p0, q0, mid, tolerance, out)
	flattenQuad(mid, q1, p2, tolerance, out)
}

// flattenCubic recursively subdivides a cubic Bezier curve using de
// Casteljau's algorithm.
func flattenCubic(p0, p1, p2, p3 Point, tolerance float64, out *[]Point) {
	d := math.Max(distanceToSegment(p1, p0, p3), distanceToSegment(p2, p0, p3))
	if d < tolerance {
		*out = append(*out, p3)
		return
	}
	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	q2 := p2.Lerp(p3, 0.5)
	r0 := q0.Lerp(q1, 0.5)
	r1 := q1.Lerp(q2, 0.5)
	mid := r0.Lerp(r1, 0.5)
	flattenCubic(p0, q0, r0, mid, tolerance, out)
	flattenCubic(mid, r1, q2, p3, tolerance, out)
}

// distanceToSegment returns the perpendicular distance from p to the
// segment (a, b).
func distanceToSegment(p, a, b Point) float64 {
	ab := b.Sub(a)
	abLen := ab.Length()
	if abLen < 1e-10 {
		return p.Distance(a)
	}
	t := p.Sub(a).Dot(ab) / (abLen * abLen)
	if t < 0 {
		return p.Distance(a)
	}
	if t > 1 {
		return p.Distance(b)
	}
	return p.Distance(a.Add(ab.Mul(t)))
}
