package tilescape

import "testing"

func TestDecodeNodeBasics(t *testing.T) {
	n := DecodeNode("n1", map[string]any{
		"type": "RECTANGLE", "name": "Rect",
		"x": 10.0, "y": 20.0, "width": 100.0, "height": 50.0,
		"rotation": 45.0,
		"opacity":  0.5,
		"fills": []any{
			map[string]any{"type": "SOLID", "color": map[string]any{"r": 1.0, "g": 0.0, "b": 0.0}},
		},
	})

	if n.ID != "n1" || n.Type != NodeRectangle || n.Name != "Rect" {
		t.Errorf("identity = %q %v %q", n.ID, n.Type, n.Name)
	}
	if n.X != 10 || n.Y != 20 || n.Width != 100 || n.Height != 50 {
		t.Errorf("geometry = (%v,%v,%v,%v)", n.X, n.Y, n.Width, n.Height)
	}
	if n.Rotation != 45 || n.Opacity != 0.5 {
		t.Errorf("rotation/opacity = %v/%v", n.Rotation, n.Opacity)
	}
	if len(n.Fills) != 1 || !colorsClose(n.Fills[0].Color, RGB(1, 0, 0)) {
		t.Errorf("fills = %+v", n.Fills)
	}
}

func TestDecodeNodeDefaults(t *testing.T) {
	n := DecodeNode("empty", map[string]any{})
	if !n.Visible {
		t.Error("nodes default to visible")
	}
	if n.Opacity != 1 {
		t.Errorf("opacity = %v, want 1", n.Opacity)
	}
	if n.Blend != BlendNormal {
		t.Errorf("blend = %v, want normal", n.Blend)
	}
	if n.StrokeWeight != 1 {
		t.Errorf("strokeWeight = %v, want 1", n.StrokeWeight)
	}
	if n.FillRule != NonZero {
		t.Errorf("fillRule = %v, want NonZero", n.FillRule)
	}
}

func TestDecodeNodeMalformedPaintGetsFallback(t *testing.T) {
	n := DecodeNode("n", map[string]any{
		"type":  "RECTANGLE",
		"fills": []any{"not a map", map[string]any{"type": "SOLID"}},
	})
	if len(n.Fills) != 2 {
		t.Fatalf("got %d fills, want 2", len(n.Fills))
	}
	// The malformed entry decodes to the neutral grey rather than being
	// dropped, so fill indices stay stable.
	if !colorsClose(n.Fills[0].Color, FallbackGrey) {
		t.Errorf("fill 0 = %+v, want fallback grey", n.Fills[0].Color)
	}
}

func TestDecodeNodeNumericTypes(t *testing.T) {
	n := DecodeNode("n", map[string]any{
		"x": 1, "y": int64(2), "width": float32(3), "height": 4.0,
	})
	if n.X != 1 || n.Y != 2 || n.Width != 3 || n.Height != 4 {
		t.Errorf("mixed numeric decode = (%v,%v,%v,%v)", n.X, n.Y, n.Width, n.Height)
	}
}

func TestDecodeCornerRadii(t *testing.T) {
	n := DecodeNode("n", map[string]any{
		"type":                             "RECTANGLE",
		"rectangleTopLeftCornerRadius":     8.0,
		"rectangleBottomRightCornerRadius": 16.0,
	})
	if n.CornerRadii[0] != 8 || n.CornerRadii[2] != 16 {
		t.Errorf("per-corner radii = %v", n.CornerRadii)
	}

	n = DecodeNode("n", map[string]any{
		"type":         "RECTANGLE",
		"cornerRadius": 12.0,
	})
	for i, r := range n.CornerRadii {
		if r != 12 {
			t.Errorf("uniform radius corner %d = %v, want 12", i, r)
		}
	}
}

func TestDecodeNodeGeometry(t *testing.T) {
	p := NewPath()
	p.MoveTo(0, 0)
	p.LineTo(10, 0)
	p.LineTo(10, 10)
	p.Close()

	n := DecodeNode("n", map[string]any{
		"type":         "VECTOR",
		"fillGeometry": EncodePathData(p),
	})
	if n.FillGeometry == nil || len(n.FillGeometry.Elements()) != 4 {
		t.Errorf("binary fillGeometry not decoded: %+v", n.FillGeometry)
	}

	n = DecodeNode("n", map[string]any{
		"type":           "VECTOR",
		"strokeGeometry": "M 0 0 L 10 10",
	})
	if n.StrokeGeometry == nil || len(n.StrokeGeometry.Elements()) != 2 {
		t.Errorf("textual strokeGeometry not decoded: %+v", n.StrokeGeometry)
	}
}

func TestDecodeEffects(t *testing.T) {
	n := DecodeNode("n", map[string]any{
		"type": "RECTANGLE",
		"effects": []any{
			map[string]any{
				"type": "DROP_SHADOW", "radius": 10.0,
				"offset": map[string]any{"x": 2.0, "y": 3.0},
			},
			map[string]any{"type": "LAYER_BLUR", "radius": 4.0},
			map[string]any{"type": "SPARKLES", "radius": 1.0}, // unknown: dropped
		},
	})
	if len(n.Effects) != 2 {
		t.Fatalf("got %d effects, want 2", len(n.Effects))
	}
	ds := n.Effects[0]
	if ds.Kind != EffectDropShadow || ds.Radius != 10 || ds.Offset != Pt(2, 3) {
		t.Errorf("drop shadow = %+v", ds)
	}
	// Shadows without an explicit color default to translucent black.
	if ds.Color.A <= 0 || ds.Color.A >= 1 {
		t.Errorf("default shadow alpha = %v, want in (0,1)", ds.Color.A)
	}
}

func TestDecodeNodeChildren(t *testing.T) {
	n := DecodeNode("n", map[string]any{
		"type":     "FRAME",
		"children": []any{"a", "b", 3, "c"},
	})
	want := []string{"a", "b", "c"}
	if len(n.Children) != len(want) {
		t.Fatalf("children = %v, want %v", n.Children, want)
	}
	for i := range want {
		if n.Children[i] != want[i] {
			t.Errorf("child %d = %q, want %q", i, n.Children[i], want[i])
		}
	}
}

func TestParseNodeType(t *testing.T) {
	if got := ParseNodeType("RECTANGLE"); got != NodeRectangle {
		t.Errorf("RECTANGLE = %v", got)
	}
	if got := ParseNodeType("WASHING_MACHINE"); got != NodeUnknown {
		t.Errorf("unknown type = %v, want NodeUnknown", got)
	}
	if !NodeGroup.Container() {
		t.Error("GROUP should be a container")
	}
	// Frames paint their own background, so they are renderable rather
	// than pure containers.
	if NodeFrame.Container() || !NodeFrame.Renderable() {
		t.Error("FRAME should be renderable, not a pure container")
	}
}
