package tilescape

import (
	"image"
	"path/filepath"
	"testing"
)

func TestPixmapSetGetPixel(t *testing.T) {
	pm := NewPixmap(4, 4)
	pm.SetPixel(1, 2, RGB(1, 0, 0))

	if c := pm.GetPixel(1, 2); !colorsClose(c, RGB(1, 0, 0)) {
		t.Errorf("GetPixel = %+v", c)
	}
	if c := pm.GetPixel(0, 0); c.A != 0 {
		t.Errorf("unset pixel = %+v, want transparent", c)
	}
}

func TestPixmapBoundsChecked(t *testing.T) {
	pm := NewPixmap(2, 2)
	// Out-of-range writes are dropped, reads return transparent.
	pm.SetPixel(-1, 0, White)
	pm.SetPixel(5, 5, White)
	if c := pm.GetPixel(-1, 0); c != Transparent {
		t.Errorf("out of range read = %+v", c)
	}
}

func TestPixmapClear(t *testing.T) {
	pm := NewPixmap(3, 3)
	pm.Clear(RGB(0, 1, 0))
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if c := pm.GetPixel(x, y); !colorsClose(c, RGB(0, 1, 0)) {
				t.Fatalf("pixel (%d,%d) = %+v", x, y, c)
			}
		}
	}
}

func TestPixmapBlendPixelSourceOver(t *testing.T) {
	pm := NewPixmap(1, 1)
	pm.Clear(White)
	pm.BlendPixel(0, 0, RGBAOf(0, 0, 0, 0.5), BlendNormal)

	c := pm.GetPixel(0, 0)
	if !colorsClose(c, RGB(0.5, 0.5, 0.5)) {
		t.Errorf("50%% black over white = %+v, want mid grey", c)
	}
}

func TestPixmapBlendPixelMultiply(t *testing.T) {
	pm := NewPixmap(1, 1)
	pm.Clear(RGB(0.5, 1, 0.5))
	pm.BlendPixel(0, 0, RGB(0.5, 0.5, 1), BlendMultiply)

	c := pm.GetPixel(0, 0)
	if !colorsClose(c, RGB(0.25, 0.5, 0.5)) {
		t.Errorf("multiply = %+v, want (0.25,0.5,0.5)", c)
	}
}

func TestPixmapBlendPixelZeroAlphaIsNoop(t *testing.T) {
	pm := NewPixmap(1, 1)
	pm.Clear(White)
	pm.BlendPixel(0, 0, RGBAOf(1, 0, 0, 0), BlendNormal)
	if c := pm.GetPixel(0, 0); !colorsClose(c, White) {
		t.Errorf("zero alpha changed pixel: %+v", c)
	}
}

func TestTilePixmapPooling(t *testing.T) {
	pm := NewTilePixmap()
	if pm.Width() != BaseTileSize || pm.Height() != BaseTileSize {
		t.Fatalf("tile pixmap = %dx%d", pm.Width(), pm.Height())
	}
	pm.SetPixel(0, 0, White)
	pm.Release()

	// A fresh tile pixmap starts cleared even when it reuses storage.
	pm2 := NewTilePixmap()
	defer pm2.Release()
	if c := pm2.GetPixel(0, 0); c != Transparent {
		t.Errorf("recycled tile not cleared: %+v", c)
	}
}

func TestPixmapReleaseNonPooledIsNoop(t *testing.T) {
	pm := NewPixmap(8, 8)
	pm.Release()
	if pm.Data() == nil {
		t.Error("Release must not drop non-pooled storage")
	}
}

func TestPixmapImageRoundTrip(t *testing.T) {
	pm := NewPixmap(2, 2)
	pm.SetPixel(0, 0, RGB(1, 0, 0))
	pm.SetPixel(1, 1, RGBAOf(0, 0, 1, 0.5))

	back := FromImage(pm.ToImage())
	if back.Width() != 2 || back.Height() != 2 {
		t.Fatalf("round trip size = %dx%d", back.Width(), back.Height())
	}
	if c := back.GetPixel(0, 0); !colorsClose(c, RGB(1, 0, 0)) {
		t.Errorf("pixel (0,0) = %+v", c)
	}
}

func TestPixmapImplementsImage(t *testing.T) {
	var _ image.Image = NewPixmap(1, 1)
}

func TestPixmapSavePNG(t *testing.T) {
	pm := NewPixmap(4, 4)
	pm.Clear(RGB(0, 0, 1))

	path := filepath.Join(t.TempDir(), "out.png")
	if err := pm.SavePNG(path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}
}
