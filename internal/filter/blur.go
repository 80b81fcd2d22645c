// Package filter implements the pixel filters applied to composited
// node layers, currently separable Gaussian blur.
package filter

import "math"

// GaussianKernel generates a 1D Gaussian kernel for the given radius,
// using the radius as sigma. The kernel is normalized so all values
// sum to 1.0 and spans 3 standard deviations.
//
// For radius <= 0, returns a single-element kernel [1.0] (identity).
func GaussianKernel(radius float64) []float32 {
	if radius <= 0 {
		return []float32{1.0}
	}

	sigma := radius
	halfSize := int(math.Ceil(sigma * 3))
	size := halfSize*2 + 1
	kernel := make([]float32, size)

	twoSigmaSq := 2 * sigma * sigma
	sum := float64(0)
	for i := 0; i < size; i++ {
		x := float64(i - halfSize)
		val := math.Exp(-(x * x) / twoSigmaSq)
		kernel[i] = float32(val)
		sum += val
	}

	if sum > 0 {
		invSum := float32(1.0 / sum)
		for i := range kernel {
			kernel[i] *= invSum
		}
	}
	return kernel
}

// GaussianBlur blurs an RGBA pixel buffer in place using a two-pass
// separable convolution. The buffer holds width*height pixels, 4 bytes
// each, rows in order. Alpha is blurred along with color, as a layer
// blur requires. A non-positive radius leaves pix untouched.
func GaussianBlur(pix []uint8, width, height int, radius float64) {
	if radius <= 0 || width <= 0 || height <= 0 {
		return
	}
	kernel := GaussianKernel(radius)
	if len(kernel) == 1 {
		return
	}
	half := len(kernel) / 2

	tmp := make([]float32, len(pix))

	// Horizontal pass: pix -> tmp.
	for y := 0; y < height; y++ {
		row := y * width * 4
		for x := 0; x < width; x++ {
			var r, g, b, a float32
			for k, w := range kernel {
				sx := x + k - half
				if sx < 0 {
					sx = 0
				} else if sx >= width {
					sx = width - 1
				}
				i := row + sx*4
				r += w * float32(pix[i+0])
				g += w * float32(pix[i+1])
				b += w * float32(pix[i+2])
				a += w * float32(pix[i+3])
			}
			i := row + x*4
			tmp[i+0] = r
			tmp[i+1] = g
			tmp[i+2] = b
			tmp[i+3] = a
		}
	}

	// Vertical pass: tmp -> pix.
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			var r, g, b, a float32
			for k, w := range kernel {
				sy := y + k - half
				if sy < 0 {
					sy = 0
				} else if sy >= height {
					sy = height - 1
				}
				i := (sy*width + x) * 4
				r += w * tmp[i+0]
				g += w * tmp[i+1]
				b += w * tmp[i+2]
				a += w * tmp[i+3]
			}
			i := (y*width + x) * 4
			pix[i+0] = clampByte(r)
			pix[i+1] = clampByte(g)
			pix[i+2] = clampByte(b)
			pix[i+3] = clampByte(a)
		}
	}
}

func clampByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
