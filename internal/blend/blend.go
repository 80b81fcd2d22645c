// Package blend implements the separable blend modes used when
// compositing node layers, following the W3C Compositing and Blending
// Level 1 specification.
//
// All functions operate on unmultiplied channel values in the [0, 1]
// range. Alpha compositing itself (source-over) is left to the caller;
// this package only supplies the per-channel blend function B(Cb, Cs).
//
// Reference: https://www.w3.org/TR/compositing-1/
package blend

import "math"

// Mode identifies a separable blend mode. The values match the order
// the decoder assigns to wire blend-mode names.
type Mode int

const (
	Normal Mode = iota
	Multiply
	Screen
	Overlay
	Darken
	Lighten
	Difference
	Exclusion
)

// Apply returns B(backdrop, source) for the given mode. Unknown modes
// behave as Normal.
func Apply(mode Mode, backdrop, source float64) float64 {
	switch mode {
	case Multiply:
		return backdrop * source
	case Screen:
		return backdrop + source - backdrop*source
	case Overlay:
		// HardLight with the operands swapped.
		if backdrop <= 0.5 {
			return 2 * backdrop * source
		}
		return 1 - 2*(1-backdrop)*(1-source)
	case Darken:
		return math.Min(backdrop, source)
	case Lighten:
		return math.Max(backdrop, source)
	case Difference:
		return math.Abs(backdrop - source)
	case Exclusion:
		return backdrop + source - 2*backdrop*source
	}
	return source
}
