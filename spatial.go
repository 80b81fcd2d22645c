package tilescape

import (
	"sort"
	"time"
)

// NodeBounds is one spatial index entry: a node id, its world-space
// axis-aligned bounds, and its z order, assigned in traversal order so
// that sorting by Z yields back-to-front draw order. Offset and Opacity
// carry what the node inherits from its ancestors: the accumulated
// translation that turns its parent-relative position absolute, and
// the product of ancestor opacities.
type NodeBounds struct {
	ID string
	Rect
	Z       int
	Offset  Point
	Opacity float64
}

// SpatialIndex maps world rectangles to the nodes that intersect them.
// Entries are held in a flat slice queried by linear scan; documents
// small enough for CPU tile rendering do not justify a tree.
//
// An index is rebuilt wholesale when the document structure changes;
// it must only contain nodes reachable from the root it was built for.
// SpatialIndex is not safe for concurrent mutation; rebuild and query
// from the same goroutine or synchronize externally.
type SpatialIndex struct {
	entries []NodeBounds
	rootID  string
}

// NewSpatialIndex returns an empty index.
func NewSpatialIndex() *SpatialIndex {
	return &SpatialIndex{}
}

// Len returns the number of indexed nodes.
func (idx *SpatialIndex) Len() int { return len(idx.entries) }

// RootID returns the root node id of the last rebuild.
func (idx *SpatialIndex) RootID() string { return idx.rootID }

// Rebuild replaces the index contents with a depth-first flattening of
// the subtree under rootID. Node positions are parent-relative, so the
// walk accumulates the absolute placement and the ancestor opacity
// product and stores both on each entry. Container node types are
// traversed into but contribute no entry themselves; invisible nodes
// are skipped along with their subtrees; nodes with non-positive
// extent are dropped. Z increases strictly in traversal order.
func (idx *SpatialIndex) Rebuild(doc Document, rootID string) {
	start := time.Now()
	idx.entries = idx.entries[:0]
	idx.rootID = rootID

	z := 0
	var walk func(id string, off Point, opacity float64)
	walk = func(id string, off Point, opacity float64) {
		props, ok := doc.NodeByID(id)
		if !ok {
			return
		}
		node := DecodeNode(id, props)
		if !node.Visible {
			return
		}
		node.X += off.X
		node.Y += off.Y
		if !node.Type.Container() {
			bounds := node.Bounds()
			if bounds.W > 0 && bounds.H > 0 {
				idx.entries = append(idx.entries, NodeBounds{
					ID:      id,
					Rect:    bounds,
					Z:       z,
					Offset:  off,
					Opacity: opacity,
				})
				z++
			}
		}
		for _, child := range doc.Children(id) {
			walk(child, Pt(node.X, node.Y), opacity*node.Opacity)
		}
	}
	walk(rootID, Point{}, 1)

	// Traversal already yields ascending z; the sort is a guard for
	// future incremental updates.
	sort.SliceStable(idx.entries, func(i, j int) bool {
		return idx.entries[i].Z < idx.entries[j].Z
	})

	Logger().Info("spatial index rebuilt",
		"root", rootID,
		"nodes", len(idx.entries),
		"elapsed", time.Since(start))
}

// Intersecting returns the indexed nodes overlapping rect, back to
// front. Nodes smaller than 2 world pixels times the LOD multiplier in
// both extents are dropped; they would not survive rasterization at
// that zoom anyway.
func (idx *SpatialIndex) Intersecting(rect Rect, lod uint8) []NodeBounds {
	minSize := 2.0 * float64(LODMultiplier(lod))
	var out []NodeBounds
	for _, e := range idx.entries {
		if e.W < minSize && e.H < minSize {
			continue
		}
		if e.Rect.Intersects(rect) {
			out = append(out, e)
		}
	}
	return out
}
