// Command tilescape-render renders the tiles covering a viewport of a
// small built-in document and writes each tile to a PNG file. It is a
// smoke test for the software backend and a usage example for the
// selector API.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/tilescape/tilescape"
	"github.com/tilescape/tilescape/backend"
	_ "github.com/tilescape/tilescape/backend/software"
)

func main() {
	var (
		width   = flag.Int("width", 1920, "screen width in pixels")
		height  = flag.Int("height", 1080, "screen height in pixels")
		scale   = flag.Float64("scale", 1.0, "zoom factor")
		panX    = flag.Float64("pan-x", 0, "horizontal pan in screen pixels")
		panY    = flag.Float64("pan-y", 0, "vertical pan in screen pixels")
		outDir  = flag.String("out", ".", "output directory for tile PNGs")
		overlay = flag.Bool("overlay", false, "draw the debug tile overlay")
		verbose = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	if *verbose {
		tilescape.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	doc := buildDemoDocument()

	sel := backend.NewSelector(tilescape.ApplyOptions(
		tilescape.WithDebugOverlay(*overlay),
	))
	defer sel.Dispose()

	if err := sel.Initialize(tilescape.DocumentSource(doc), ""); err != nil {
		log.Fatalf("initialize: %v", err)
	}

	vp, err := tilescape.ViewportFromScreen(float64(*width), float64(*height), *panX, *panY, *scale)
	if err != nil {
		log.Fatalf("viewport: %v", err)
	}

	coords := sel.VisibleTiles(vp)
	log.Printf("backend=%s tiles=%d", sel.Name(), len(coords))

	for _, coord := range coords {
		tile, err := sel.RenderTile(coord)
		if err != nil {
			log.Fatalf("render %v: %v", coord, err)
		}
		name := fmt.Sprintf("tile_%d_%d_lod%d.png", coord.X, coord.Y, coord.LOD)
		path := filepath.Join(*outDir, name)
		if err := tile.Pixels.SavePNG(path); err != nil {
			log.Fatalf("save %s: %v", path, err)
		}
		log.Printf("wrote %s (%d nodes)", path, tile.NodeCount)
	}

	stats := sel.Stats()
	log.Printf("cache: %d/%d tiles, hit rate %.0f%%", stats.CachedTiles, stats.MaxTiles, stats.HitRate*100)
}

// buildDemoDocument assembles an in-memory document with a handful of
// shapes exercising fills, gradients, strokes, effects, and text.
func buildDemoDocument() *tilescape.MemDocument {
	doc := tilescape.NewMemDocument("page")

	doc.AddNode("page", map[string]any{
		"type":     "CANVAS",
		"name":     "Page 1",
		"children": []string{"bg", "card", "badge", "title", "swatch"},
	})

	doc.AddNode("bg", map[string]any{
		"type": "RECTANGLE", "name": "Background",
		"x": 0.0, "y": 0.0, "width": 2048.0, "height": 1536.0,
		"fills": []any{
			map[string]any{
				"type": "GRADIENT_LINEAR",
				"gradientStops": []any{
					map[string]any{"position": 0.0, "color": map[string]any{"r": 0.93, "g": 0.95, "b": 0.98}},
					map[string]any{"position": 1.0, "color": map[string]any{"r": 0.82, "g": 0.86, "b": 0.93}},
				},
			},
		},
	})

	doc.AddNode("card", map[string]any{
		"type": "RECTANGLE", "name": "Card",
		"x": 160.0, "y": 140.0, "width": 640.0, "height": 420.0,
		"cornerRadius": 24.0,
		"fills": []any{
			map[string]any{"type": "SOLID", "color": map[string]any{"r": 1.0, "g": 1.0, "b": 1.0}},
		},
		"strokes": []any{
			map[string]any{"type": "SOLID", "color": map[string]any{"r": 0.75, "g": 0.78, "b": 0.84}},
		},
		"strokeWeight": 2.0,
		"effects": []any{
			map[string]any{
				"type": "DROP_SHADOW", "radius": 16.0,
				"offset": map[string]any{"x": 0.0, "y": 6.0},
				"color":  map[string]any{"r": 0.0, "g": 0.0, "b": 0.0, "a": 0.2},
			},
		},
	})

	doc.AddNode("badge", map[string]any{
		"type": "ELLIPSE", "name": "Badge",
		"x": 700.0, "y": 100.0, "width": 160.0, "height": 160.0,
		"fills": []any{
			map[string]any{
				"type": "GRADIENT_RADIAL",
				"gradientStops": []any{
					map[string]any{"position": 0.0, "color": map[string]any{"r": 1.0, "g": 0.62, "b": 0.25}},
					map[string]any{"position": 1.0, "color": map[string]any{"r": 0.85, "g": 0.28, "b": 0.18}},
				},
			},
		},
	})

	doc.AddNode("title", map[string]any{
		"type": "TEXT", "name": "Title",
		"x": 200.0, "y": 180.0, "width": 560.0, "height": 80.0,
		"characters": "Tile renderer demo",
		"fontSize":   13.0,
		"fills": []any{
			map[string]any{"type": "SOLID", "color": map[string]any{"r": 0.14, "g": 0.16, "b": 0.2}},
		},
	})

	doc.AddNode("swatch", map[string]any{
		"type": "RECTANGLE", "name": "Swatch",
		"x": 200.0, "y": 320.0, "width": 200.0, "height": 200.0,
		"rotation": 15.0,
		"fills": []any{
			map[string]any{
				"type": "GRADIENT_ANGULAR",
				"gradientStops": []any{
					map[string]any{"position": 0.0, "color": map[string]any{"r": 0.2, "g": 0.45, "b": 0.95}},
					map[string]any{"position": 0.5, "color": map[string]any{"r": 0.6, "g": 0.3, "b": 0.9}},
					map[string]any{"position": 1.0, "color": map[string]any{"r": 0.2, "g": 0.45, "b": 0.95}},
				},
			},
		},
	})

	return doc
}
