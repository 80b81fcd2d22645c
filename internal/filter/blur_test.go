package filter

import (
	"math"
	"testing"
)

func TestGaussianKernelIdentity(t *testing.T) {
	k := GaussianKernel(0)
	if len(k) != 1 || k[0] != 1.0 {
		t.Errorf("GaussianKernel(0) = %v, want [1.0]", k)
	}
	k = GaussianKernel(-5)
	if len(k) != 1 || k[0] != 1.0 {
		t.Errorf("GaussianKernel(-5) = %v, want [1.0]", k)
	}
}

func TestGaussianKernelNormalized(t *testing.T) {
	for _, radius := range []float64{0.5, 1, 2.5, 10} {
		k := GaussianKernel(radius)
		sum := float32(0)
		for _, v := range k {
			sum += v
		}
		if math.Abs(float64(sum)-1.0) > 1e-4 {
			t.Errorf("radius %v: kernel sum = %v, want 1.0", radius, sum)
		}
		if len(k)%2 != 1 {
			t.Errorf("radius %v: kernel size %d is even", radius, len(k))
		}
	}
}

func TestGaussianKernelSymmetric(t *testing.T) {
	k := GaussianKernel(3)
	for i, j := 0, len(k)-1; i < j; i, j = i+1, j-1 {
		if k[i] != k[j] {
			t.Errorf("kernel[%d]=%v != kernel[%d]=%v", i, k[i], j, k[j])
		}
	}
}

func TestGaussianBlurPreservesFlatRegion(t *testing.T) {
	// A uniformly colored buffer must come out unchanged.
	w, h := 16, 16
	pix := make([]uint8, w*h*4)
	for i := 0; i < len(pix); i += 4 {
		pix[i+0] = 100
		pix[i+1] = 150
		pix[i+2] = 200
		pix[i+3] = 255
	}
	GaussianBlur(pix, w, h, 2)
	for i := 0; i < len(pix); i += 4 {
		if pix[i] != 100 || pix[i+1] != 150 || pix[i+2] != 200 || pix[i+3] != 255 {
			t.Fatalf("flat region changed at byte %d: %v", i, pix[i:i+4])
		}
	}
}

func TestGaussianBlurSpreadsPoint(t *testing.T) {
	w, h := 9, 9
	pix := make([]uint8, w*h*4)
	center := (4*w + 4) * 4
	pix[center+0] = 255
	pix[center+3] = 255

	GaussianBlur(pix, w, h, 1)

	if pix[center+0] >= 255 {
		t.Errorf("center not attenuated: %d", pix[center])
	}
	neighbor := (4*w + 5) * 4
	if pix[neighbor+0] == 0 {
		t.Error("neighbor received no energy")
	}
}

func TestGaussianBlurZeroRadiusNoop(t *testing.T) {
	w, h := 4, 4
	pix := make([]uint8, w*h*4)
	pix[0] = 42
	GaussianBlur(pix, w, h, 0)
	if pix[0] != 42 {
		t.Errorf("zero radius modified buffer")
	}
}
