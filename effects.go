package tilescape

// EffectKind identifies a visual effect attached to a node.
type EffectKind int

const (
	EffectDropShadow EffectKind = iota
	EffectInnerShadow
	EffectLayerBlur
	EffectBackgroundBlur
)

// ParseEffectKind maps a wire name to an EffectKind. The second return
// is false for unknown names.
func ParseEffectKind(s string) (EffectKind, bool) {
	switch s {
	case "DROP_SHADOW":
		return EffectDropShadow, true
	case "INNER_SHADOW":
		return EffectInnerShadow, true
	case "LAYER_BLUR":
		return EffectLayerBlur, true
	case "BACKGROUND_BLUR":
		return EffectBackgroundBlur, true
	}
	return 0, false
}

// String returns the wire name of the effect kind.
func (k EffectKind) String() string {
	switch k {
	case EffectDropShadow:
		return "DROP_SHADOW"
	case EffectInnerShadow:
		return "INNER_SHADOW"
	case EffectLayerBlur:
		return "LAYER_BLUR"
	case EffectBackgroundBlur:
		return "BACKGROUND_BLUR"
	}
	return "DROP_SHADOW"
}

// Effect is one decoded visual effect. Shadow kinds use Color, Offset,
// Radius and Spread; blur kinds use only Radius.
type Effect struct {
	Kind    EffectKind
	Color   RGBA
	Offset  Point
	Radius  float64
	Spread  float64
	Visible bool
}
