package tilescape

import "strconv"

// ParsePathString parses the textual mini path language used by some
// document exporters. Supported commands, each with an absolute
// (uppercase) and relative (lowercase) form:
//
//	M/m move, L/l line, H/h horizontal line, V/v vertical line,
//	C/c cubic, S/s smooth cubic, Q/q quadratic, T/t smooth quadratic,
//	A/a arc (degraded to a line to the endpoint), Z/z close.
//
// Smooth variants reflect the previous control point across the current
// point, per the usual convention. Parsing is best-effort: a malformed
// number ends the parse and the path built so far is returned.
func ParsePathString(s string) *Path {
	p := &pathParser{src: s, path: NewPath()}
	p.run()
	return p.path
}

type pathParser struct {
	src  string
	pos  int
	path *Path

	cur   Point // current point
	start Point // subpath start, for Z
	// last control points, for S/T reflection
	lastCubicCtrl Point
	lastQuadCtrl  Point
	lastCmd       byte
}

func (p *pathParser) run() {
	for {
		p.skipSeparators()
		if p.pos >= len(p.src) {
			return
		}
		c := p.src[p.pos]
		if isCommand(c) {
			p.pos++
			if !p.apply(c) {
				return
			}
			p.lastCmd = c
			continue
		}
		// Implicit command repetition: a number where a command is
		// expected repeats the previous command (M/m repeats as L/l).
		cmd := p.lastCmd
		switch cmd {
		case 'M':
			cmd = 'L'
		case 'm':
			cmd = 'l'
		case 0:
			return
		}
		if !p.apply(cmd) {
			return
		}
		p.lastCmd = cmd
	}
}

// apply parses the operands of one command and appends it to the path.
// It returns false when an operand is malformed or missing.
func (p *pathParser) apply(cmd byte) bool {
	rel := cmd >= 'a' && cmd <= 'z'
	switch cmd {
	case 'M', 'm':
		pt, ok := p.point(rel)
		if !ok {
			return false
		}
		p.path.MoveTo(pt.X, pt.Y)
		p.cur, p.start = pt, pt
	case 'L', 'l':
		pt, ok := p.point(rel)
		if !ok {
			return false
		}
		p.path.LineTo(pt.X, pt.Y)
		p.cur = pt
	case 'H', 'h':
		x, ok := p.number()
		if !ok {
			return false
		}
		if rel {
			x += p.cur.X
		}
		p.path.LineTo(x, p.cur.Y)
		p.cur.X = x
	case 'V', 'v':
		y, ok := p.number()
		if !ok {
			return false
		}
		if rel {
			y += p.cur.Y
		}
		p.path.LineTo(p.cur.X, y)
		p.cur.Y = y
	case 'C', 'c':
		c1, ok1 := p.point(rel)
		c2, ok2 := p.point(rel)
		pt, ok3 := p.point(rel)
		if !ok1 || !ok2 || !ok3 {
			return false
		}
		p.path.CubicTo(c1.X, c1.Y, c2.X, c2.Y, pt.X, pt.Y)
		p.cur, p.lastCubicCtrl = pt, c2
	case 'S', 's':
		c1 := p.reflectedCubicCtrl()
		c2, ok1 := p.point(rel)
		pt, ok2 := p.point(rel)
		if !ok1 || !ok2 {
			return false
		}
		p.path.CubicTo(c1.X, c1.Y, c2.X, c2.Y, pt.X, pt.Y)
		p.cur, p.lastCubicCtrl = pt, c2
	case 'Q', 'q':
		c1, ok1 := p.point(rel)
		pt, ok2 := p.point(rel)
		if !ok1 || !ok2 {
			return false
		}
		p.path.QuadraticTo(c1.X, c1.Y, pt.X, pt.Y)
		p.cur, p.lastQuadCtrl = pt, c1
	case 'T', 't':
		c1 := p.reflectedQuadCtrl()
		pt, ok := p.point(rel)
		if !ok {
			return false
		}
		p.path.QuadraticTo(c1.X, c1.Y, pt.X, pt.Y)
		p.cur, p.lastQuadCtrl = pt, c1
	case 'A', 'a':
		// rx ry rotation large-arc sweep x y; the arc itself is
		// degraded to a straight line to the endpoint.
		for i := 0; i < 5; i++ {
			if _, ok := p.number(); !ok {
				return false
			}
		}
		pt, ok := p.point(rel)
		if !ok {
			return false
		}
		p.path.LineTo(pt.X, pt.Y)
		p.cur = pt
	case 'Z', 'z':
		p.path.Close()
		p.cur = p.start
	default:
		return false
	}

	// Reflection only carries across consecutive curve commands.
	switch cmd {
	case 'C', 'c', 'S', 's':
		p.lastQuadCtrl = p.cur
	case 'Q', 'q', 'T', 't':
		p.lastCubicCtrl = p.cur
	default:
		p.lastCubicCtrl = p.cur
		p.lastQuadCtrl = p.cur
	}
	return true
}

// reflectedCubicCtrl mirrors the previous cubic control point across
// the current point. When the previous command was not a cubic, the
// control collapses to the current point.
func (p *pathParser) reflectedCubicCtrl() Point {
	switch p.lastCmd {
	case 'C', 'c', 'S', 's':
		return Point{X: 2*p.cur.X - p.lastCubicCtrl.X, Y: 2*p.cur.Y - p.lastCubicCtrl.Y}
	}
	return p.cur
}

func (p *pathParser) reflectedQuadCtrl() Point {
	switch p.lastCmd {
	case 'Q', 'q', 'T', 't':
		return Point{X: 2*p.cur.X - p.lastQuadCtrl.X, Y: 2*p.cur.Y - p.lastQuadCtrl.Y}
	}
	return p.cur
}

func (p *pathParser) point(rel bool) (Point, bool) {
	x, ok := p.number()
	if !ok {
		return Point{}, false
	}
	y, ok := p.number()
	if !ok {
		return Point{}, false
	}
	if rel {
		x += p.cur.X
		y += p.cur.Y
	}
	return Point{X: x, Y: y}, true
}

func (p *pathParser) number() (float64, bool) {
	p.skipSeparators()
	start := p.pos
	if p.pos < len(p.src) && (p.src[p.pos] == '-' || p.src[p.pos] == '+') {
		p.pos++
	}
	seenDigit := false
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c >= '0' && c <= '9' {
			seenDigit = true
			p.pos++
			continue
		}
		if c == '.' {
			p.pos++
			continue
		}
		if (c == 'e' || c == 'E') && seenDigit {
			p.pos++
			if p.pos < len(p.src) && (p.src[p.pos] == '-' || p.src[p.pos] == '+') {
				p.pos++
			}
			continue
		}
		break
	}
	if !seenDigit {
		return 0, false
	}
	v, err := strconv.ParseFloat(p.src[start:p.pos], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func (p *pathParser) skipSeparators() {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ' ', ',', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func isCommand(c byte) bool {
	switch c {
	case 'M', 'm', 'L', 'l', 'H', 'h', 'V', 'v', 'C', 'c', 'S', 's',
		'Q', 'q', 'T', 't', 'A', 'a', 'Z', 'z':
		return true
	}
	return false
}
