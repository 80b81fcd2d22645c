package tilescape

import "github.com/tilescape/tilescape/internal/blend"

// compose composites src over dst applying the separable blend mode
// per the usual model: the blend function mixes with the backdrop in
// proportion to the backdrop's alpha, then the result is source-over
// composited.
func compose(dst, src RGBA, mode BlendMode) RGBA {
	if mode != BlendNormal && dst.A > 0 {
		m := blend.Mode(mode)
		blended := RGBA{
			R: blend.Apply(m, dst.R, src.R),
			G: blend.Apply(m, dst.G, src.G),
			B: blend.Apply(m, dst.B, src.B),
			A: src.A,
		}
		src = RGBA{
			R: src.R*(1-dst.A) + blended.R*dst.A,
			G: src.G*(1-dst.A) + blended.G*dst.A,
			B: src.B*(1-dst.A) + blended.B*dst.A,
			A: src.A,
		}
	}

	outA := src.A + dst.A*(1-src.A)
	if outA <= 0 {
		return Transparent
	}
	return RGBA{
		R: (src.R*src.A + dst.R*dst.A*(1-src.A)) / outA,
		G: (src.G*src.A + dst.G*dst.A*(1-src.A)) / outA,
		B: (src.B*src.A + dst.B*dst.A*(1-src.A)) / outA,
		A: outA,
	}
}
