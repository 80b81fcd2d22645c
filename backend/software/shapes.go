package software

import "github.com/tilescape/tilescape"

// nodeShape builds the node's fill silhouette in world coordinates.
// Returns nil for types that draw nothing (text paints glyphs instead,
// containers never reach the rasterizer).
func nodeShape(node *tilescape.Node) *tilescape.Path {
	switch node.Type {
	case tilescape.NodeRectangle, tilescape.NodeFrame,
		tilescape.NodeComponent, tilescape.NodeInstance:
		p := tilescape.NewPath()
		if node.CornerRadii == ([4]float64{}) {
			p.Rectangle(node.X, node.Y, node.Width, node.Height)
		} else {
			p.RoundedRectangle(node.X, node.Y, node.Width, node.Height, node.CornerRadii)
		}
		return rotated(p, node)

	case tilescape.NodeEllipse:
		p := tilescape.NewPath()
		p.Ellipse(node.X, node.Y, node.Width, node.Height)
		return rotated(p, node)

	case tilescape.NodeLine:
		p := tilescape.NewPath()
		p.MoveTo(node.X, node.Y)
		p.LineTo(node.X+node.Width, node.Y+node.Height)
		return rotated(p, node)

	case tilescape.NodeVector, tilescape.NodeStar, tilescape.NodeRegularPolygon:
		if node.FillGeometry != nil && !node.FillGeometry.Empty() {
			return worldGeometry(node, node.FillGeometry)
		}
		if node.StrokeGeometry != nil && !node.StrokeGeometry.Empty() {
			return worldGeometry(node, node.StrokeGeometry)
		}
		// Geometry missing or malformed: the neutral fallback is the
		// node's box, so the node still occupies its place.
		p := tilescape.NewPath()
		p.Rectangle(node.X, node.Y, node.Width, node.Height)
		return rotated(p, node)
	}
	return nil
}

// worldGeometry places node-local geometry (as decoded from the
// compact binary or textual form) at the node's world position.
func worldGeometry(node *tilescape.Node, g *tilescape.Path) *tilescape.Path {
	p := g.Transform(tilescape.Translate(node.X, node.Y))
	return rotated(p, node)
}

// rotated applies the node's rotation about its origin.
func rotated(p *tilescape.Path, node *tilescape.Node) *tilescape.Path {
	if node.Rotation == 0 {
		return p
	}
	m := tilescape.Identity().
		Translate(node.X, node.Y).
		Rotate(node.Rotation).
		Translate(-node.X, -node.Y)
	return p.Transform(m)
}

// shadowSilhouette is the shape a drop shadow casts: the fill
// silhouette shifted by the offset and inflated by the spread. Spread
// inflation is approximated by outsetting the silhouette's rounded
// box; exact Minkowski inflation is not worth it for a blurred shape.
func shadowSilhouette(node *tilescape.Node, shape *tilescape.Path, e tilescape.Effect) *tilescape.Path {
	if shape == nil {
		return nil
	}
	var p *tilescape.Path
	if e.Spread != 0 {
		r := shape.Bounds().Outset(e.Spread)
		p = tilescape.NewPath()
		radii := node.CornerRadii
		for i := range radii {
			if radii[i] > 0 {
				radii[i] += e.Spread
			}
		}
		if radii == ([4]float64{}) {
			p.Rectangle(r.X, r.Y, r.W, r.H)
		} else {
			p.RoundedRectangle(r.X, r.Y, r.W, r.H, radii)
		}
	} else {
		p = shape.Clone()
	}
	return p.Transform(tilescape.Translate(e.Offset.X, e.Offset.Y))
}
