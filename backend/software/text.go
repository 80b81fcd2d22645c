package software

import (
	"image"
	"math"

	"github.com/go-text/typesetting/segmenter"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/norm"

	"github.com/tilescape/tilescape"
)

// drawText lays the node's characters out as a paragraph inside the
// node box and paints it with the node's first visible solid fill.
// Line breaks follow UAX #14 candidate positions from the typesetting
// segmenter; lines are filled greedily against the box width.
//
// FontSize is in world units; the base face is rendered once per line
// and scaled to FontSize together with the tile's world-to-surface
// scale, so glyphs track both the styled size and the zoom.
func (b *Backend) drawText(layer *tilescape.Pixmap, node *tilescape.Node, m tilescape.Matrix) {
	if node.Characters == "" || node.Width <= 0 {
		return
	}

	text := norm.NFC.String(node.Characters)
	face := basicfont.Face7x13

	fontScale := 1.0
	if node.FontSize > 0 {
		fontScale = node.FontSize / float64(face.Height)
	}
	advance := float64(face.Advance) * fontScale
	lineHeight := node.LineHeight
	if lineHeight <= 0 {
		lineHeight = (float64(face.Height) + 2) * fontScale
	}

	maxCols := int(node.Width / advance)
	if maxCols < 1 {
		maxCols = 1
	}
	lines := breakLines(text, maxCols)

	color := textColor(node)
	img := rgbaView(layer)
	// The tile transform is scale+translate, so A is the world-to-
	// surface scale.
	glyphScale := fontScale * m.A

	for i, line := range lines {
		// Position in world space, then map through the tile transform.
		world := tilescape.Pt(node.X, node.Y+float64(i+1)*lineHeight)
		if world.Y > node.Y+node.Height {
			break
		}
		pos := m.TransformPoint(world)
		drawScaledLine(img, line, face, color, pos, glyphScale)
	}
}

// drawScaledLine renders one line at the base face size and scales it
// onto dst. pos is the baseline origin in surface pixels.
func drawScaledLine(dst *image.RGBA, line string, face *basicfont.Face, c tilescape.RGBA, pos tilescape.Point, scale float64) {
	if scale <= 0 {
		return
	}
	w := font.MeasureString(face, line).Ceil()
	if w <= 0 {
		return
	}
	h := face.Ascent + face.Descent
	scratch := image.NewRGBA(image.Rect(0, 0, w, h))
	d := &font.Drawer{
		Dst:  scratch,
		Src:  image.NewUniform(c.Color()),
		Face: face,
		Dot:  fixed.P(0, face.Ascent),
	}
	d.DrawString(line)

	dw := int(math.Round(float64(w) * scale))
	dh := int(math.Round(float64(h) * scale))
	if dw < 1 {
		dw = 1
	}
	if dh < 1 {
		dh = 1
	}
	x := int(math.Round(pos.X))
	y := int(math.Round(pos.Y - float64(face.Ascent)*scale))
	draw.ApproxBiLinear.Scale(dst, image.Rect(x, y, x+dw, y+dh), scratch, scratch.Bounds(), draw.Over, nil)
}

// breakLines splits a paragraph into lines of at most maxCols runes,
// breaking only at UAX #14 opportunities. A single segment longer than
// the line is emitted on its own rather than split mid-word.
func breakLines(text string, maxCols int) []string {
	var seg segmenter.Segmenter
	seg.Init([]rune(text))

	var lines []string
	var line []rune

	iter := seg.LineIterator()
	for iter.Next() {
		l := iter.Line()
		piece := l.Text
		if len(line)+len(piece) > maxCols && len(line) > 0 {
			lines = append(lines, trimRight(line))
			line = line[:0]
		}
		line = append(line, piece...)
		if l.IsMandatoryBreak {
			lines = append(lines, trimRight(line))
			line = line[:0]
		}
	}
	if len(line) > 0 {
		lines = append(lines, trimRight(line))
	}
	return lines
}

func trimRight(line []rune) string {
	end := len(line)
	for end > 0 {
		switch line[end-1] {
		case ' ', '\t', '\n', '\r':
			end--
		default:
			return string(line[:end])
		}
	}
	return ""
}

// textColor picks the first visible solid fill, falling back to black.
func textColor(node *tilescape.Node) tilescape.RGBA {
	for _, p := range node.Fills {
		if p.Visible && p.Kind == tilescape.PaintSolid {
			return p.Color.MulAlpha(p.Opacity)
		}
	}
	return tilescape.Black
}
