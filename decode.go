package tilescape


// DecodeNode converts a raw property map, as exposed by a Document,
// into a renderable Node. Decoding is total: every missing or
// malformed field falls back to a neutral default (visible, opacity 1,
// identity placement, grey fill when a paint cannot be read), so one
// bad node never poisons a tile.
func DecodeNode(id string, props map[string]any) *Node {
	n := &Node{
		ID:       id,
		Type:     ParseNodeType(propString(props, "type", "")),
		Name:     propString(props, "name", ""),
		X:        propFloat(props, "x", 0),
		Y:        propFloat(props, "y", 0),
		Width:    propFloat(props, "width", 0),
		Height:   propFloat(props, "height", 0),
		Rotation: propFloat(props, "rotation", 0),
		Visible:  propBool(props, "visible", true),
		Opacity:  clamp01(propFloat(props, "opacity", 1)),
		Blend:    ParseBlendMode(propString(props, "blendMode", "NORMAL")),

		StrokeWeight: propFloat(props, "strokeWeight", 1),
		FillRule:     parseFillRule(propString(props, "fillRule", "NONZERO")),

		Characters: propString(props, "characters", ""),
		FontSize:   propFloat(props, "fontSize", 12),
		LineHeight: propFloat(props, "lineHeight", 0),
	}

	n.CornerRadii = decodeCornerRadii(props)
	n.Fills = decodePaints(props["fills"])
	n.Strokes = decodePaints(props["strokes"])
	n.Effects = decodeEffects(props["effects"])

	if data, ok := props["fillGeometry"].([]byte); ok {
		n.FillGeometry = DecodePathData(data)
	} else if s, ok := props["fillGeometry"].(string); ok {
		n.FillGeometry = ParsePathString(s)
	}
	if data, ok := props["strokeGeometry"].([]byte); ok {
		n.StrokeGeometry = DecodePathData(data)
	} else if s, ok := props["strokeGeometry"].(string); ok {
		n.StrokeGeometry = ParsePathString(s)
	}

	if children, ok := props["children"].([]string); ok {
		n.Children = children
	} else if raw, ok := props["children"].([]any); ok {
		for _, c := range raw {
			if s, ok := c.(string); ok {
				n.Children = append(n.Children, s)
			}
		}
	}

	return n
}

// decodeCornerRadii reads per-corner radii, falling back to the
// uniform cornerRadius when no per-corner values are set.
func decodeCornerRadii(props map[string]any) [4]float64 {
	var radii [4]float64
	keys := [4]string{
		"rectangleTopLeftCornerRadius",
		"rectangleTopRightCornerRadius",
		"rectangleBottomRightCornerRadius",
		"rectangleBottomLeftCornerRadius",
	}
	any := false
	for i, k := range keys {
		if v := propFloat(props, k, 0); v > 0 {
			radii[i] = v
			any = true
		}
	}
	if any {
		return radii
	}
	uniform := propFloat(props, "cornerRadius", 0)
	return [4]float64{uniform, uniform, uniform, uniform}
}

// decodePaints reads a list of raw paint maps. Entries that are not
// maps are replaced with the neutral grey paint.
func decodePaints(raw any) []Paint {
	items, ok := raw.([]any)
	if !ok {
		return nil
	}
	paints := make([]Paint, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			Logger().Debug("paint entry is not a map, using fallback")
			paints = append(paints, defaultPaint())
			continue
		}
		paints = append(paints, decodePaint(m))
	}
	return paints
}

func decodePaint(m map[string]any) Paint {
	p := Paint{
		Kind:    ParsePaintKind(propString(m, "type", "SOLID")),
		Opacity: clamp01(propFloat(m, "opacity", 1)),
		Blend:   ParseBlendMode(propString(m, "blendMode", "NORMAL")),
		Visible: propBool(m, "visible", true),
	}

	switch p.Kind {
	case PaintSolid:
		p.Color = decodeColor(m["color"], FallbackGrey)

	case PaintGradientLinear, PaintGradientRadial,
		PaintGradientAngular, PaintGradientDiamond:
		p.Stops = decodeStops(m["gradientStops"])
		p.Handles = decodeHandles(m["gradientHandlePositions"])

	case PaintImage:
		p.ImageRef = propString(m, "imageRef", "")
		p.ScaleMode = ParseScaleMode(propString(m, "scaleMode", "FILL"))
	}
	return p
}

func decodeStops(raw any) []ColorStop {
	items, ok := raw.([]any)
	if !ok {
		return nil
	}
	stops := make([]ColorStop, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		stops = append(stops, ColorStop{
			Offset: clamp01(propFloat(m, "position", 0)),
			Color:  decodeColor(m["color"], FallbackGrey),
		})
	}
	return stops
}

// decodeHandles reads up to three normalized handle positions. Missing
// handles default to the unit-box diagonal so a handle-less gradient
// still has a direction.
func decodeHandles(raw any) [3]Point {
	handles := [3]Point{{X: 0, Y: 0.5}, {X: 1, Y: 0.5}, {X: 0.5, Y: 1}}
	items, ok := raw.([]any)
	if !ok {
		return handles
	}
	for i, item := range items {
		if i >= len(handles) {
			break
		}
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		handles[i] = Point{
			X: propFloat(m, "x", handles[i].X),
			Y: propFloat(m, "y", handles[i].Y),
		}
	}
	return handles
}

func decodeEffects(raw any) []Effect {
	items, ok := raw.([]any)
	if !ok {
		return nil
	}
	var effects []Effect
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		kind, ok := ParseEffectKind(propString(m, "type", ""))
		if !ok {
			continue
		}
		e := Effect{
			Kind:    kind,
			Color:   decodeColor(m["color"], RGBAOf(0, 0, 0, 0.25)),
			Radius:  propFloat(m, "radius", 0),
			Spread:  propFloat(m, "spread", 0),
			Visible: propBool(m, "visible", true),
		}
		if off, ok := m["offset"].(map[string]any); ok {
			e.Offset = Point{X: propFloat(off, "x", 0), Y: propFloat(off, "y", 0)}
		}
		effects = append(effects, e)
	}
	return effects
}

// decodeColor reads a {r,g,b,a} map with 0..1 channels.
func decodeColor(raw any, fallback RGBA) RGBA {
	m, ok := raw.(map[string]any)
	if !ok {
		return fallback
	}
	return RGBA{
		R: clamp01(propFloat(m, "r", fallback.R)),
		G: clamp01(propFloat(m, "g", fallback.G)),
		B: clamp01(propFloat(m, "b", fallback.B)),
		A: clamp01(propFloat(m, "a", 1)),
	}
}

func parseFillRule(s string) FillRule {
	if s == "EVENODD" {
		return EvenOdd
	}
	return NonZero
}

// propFloat reads a numeric property, accepting the numeric types a
// JSON or msgpack decoder may produce.
func propFloat(m map[string]any, key string, def float64) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return def
}

func propString(m map[string]any, key, def string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return def
}

func propBool(m map[string]any, key string, def bool) bool {
	if v, ok := m[key].(bool); ok {
		return v
	}
	return def
}
