package tilescape

// Default hysteresis parameters for LOD selection. With threshold 0.5
// and margin 0.15 the selector switches to LOD 1 only below scale 0.35
// and back to LOD 0 only above 0.65.
const (
	DefaultLODThreshold = 0.5
	DefaultLODMargin    = 0.15
)

// LODSelector picks the level of detail for a zoom scale with
// hysteresis: a dead-zone around the threshold prevents rapid tier
// flapping while the user hovers near the boundary.
//
// Each active view owns its own selector. State is deliberately not
// shared at package level so that two views of different documents
// cannot interfere with each other; call Reset when the view switches
// documents or pages.
//
// LODSelector is not safe for concurrent use; confine it to the
// goroutine that owns the view state.
type LODSelector struct {
	threshold float64
	margin    float64
	current   uint8
}

// NewLODSelector creates a selector with the default threshold and
// margin, starting at full detail.
func NewLODSelector() *LODSelector {
	return &LODSelector{
		threshold: DefaultLODThreshold,
		margin:    DefaultLODMargin,
	}
}

// NewLODSelectorWith creates a selector with explicit hysteresis
// parameters. Non-positive values fall back to the defaults.
func NewLODSelectorWith(threshold, margin float64) *LODSelector {
	if threshold <= 0 {
		threshold = DefaultLODThreshold
	}
	if margin <= 0 {
		margin = DefaultLODMargin
	}
	return &LODSelector{threshold: threshold, margin: margin}
}

// Select returns the level of detail for the given zoom scale, updating
// the selector's state. Scales inside the hysteresis band keep the
// previous level.
func (s *LODSelector) Select(scale float64) uint8 {
	switch s.current {
	case 0:
		if scale < s.threshold-s.margin {
			s.current = 1
		}
	default:
		if scale > s.threshold+s.margin {
			s.current = 0
		}
	}
	return s.current
}

// Current returns the level chosen by the last Select call.
func (s *LODSelector) Current() uint8 {
	return s.current
}

// Reset returns the selector to full detail. Call this when the view
// switches to a different document or page so stale zoom state does not
// leak across documents.
func (s *LODSelector) Reset() {
	s.current = 0
}
