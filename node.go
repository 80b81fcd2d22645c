package tilescape

// NodeType enumerates the scene-graph node types the renderer
// understands. Unknown wire names decode to NodeUnknown and render as
// nothing.
type NodeType int

const (
	NodeUnknown NodeType = iota
	NodeDocument
	NodeCanvas
	NodeFrame
	NodeGroup
	NodeSection
	NodeVector
	NodeBooleanOperation
	NodeStar
	NodeLine
	NodeEllipse
	NodeRegularPolygon
	NodeRectangle
	NodeText
	NodeSlice
	NodeComponent
	NodeInstance
)

var nodeTypeNames = map[string]NodeType{
	"DOCUMENT":          NodeDocument,
	"CANVAS":            NodeCanvas,
	"FRAME":             NodeFrame,
	"GROUP":             NodeGroup,
	"SECTION":           NodeSection,
	"VECTOR":            NodeVector,
	"BOOLEAN_OPERATION": NodeBooleanOperation,
	"STAR":              NodeStar,
	"LINE":              NodeLine,
	"ELLIPSE":           NodeEllipse,
	"REGULAR_POLYGON":   NodeRegularPolygon,
	"RECTANGLE":         NodeRectangle,
	"TEXT":              NodeText,
	"SLICE":             NodeSlice,
	"COMPONENT":         NodeComponent,
	"INSTANCE":          NodeInstance,
}

// ParseNodeType maps a wire name to a NodeType. Unknown names map to
// NodeUnknown.
func ParseNodeType(s string) NodeType {
	if t, ok := nodeTypeNames[s]; ok {
		return t
	}
	return NodeUnknown
}

// String returns the wire name of the node type.
func (t NodeType) String() string {
	for name, nt := range nodeTypeNames {
		if nt == t {
			return name
		}
	}
	return "UNKNOWN"
}

// Container reports whether nodes of this type exist to hold children
// rather than to paint pixels themselves. Container nodes are
// traversed by the spatial index but not indexed.
func (t NodeType) Container() bool {
	switch t {
	case NodeDocument, NodeCanvas, NodeGroup, NodeSection,
		NodeBooleanOperation, NodeSlice:
		return true
	}
	return false
}

// Renderable reports whether nodes of this type produce pixels.
// Frames, components and instances both paint (their own background)
// and hold children.
func (t NodeType) Renderable() bool {
	switch t {
	case NodeFrame, NodeComponent, NodeInstance, NodeVector, NodeStar,
		NodeLine, NodeEllipse, NodeRegularPolygon, NodeRectangle,
		NodeText:
		return true
	}
	return false
}

// Node is one decoded scene-graph node, ready for rasterization. All
// fields carry neutral defaults when the raw properties are missing or
// malformed.
type Node struct {
	ID   string
	Type NodeType
	Name string

	// Placement, relative to the parent node. The spatial index
	// accumulates absolute positions during its walk.
	X, Y          float64
	Width, Height float64
	Rotation      float64 // degrees, clockwise

	Visible bool
	Opacity float64 // 0..1, applied once per composited layer
	Blend   BlendMode

	Fills   []Paint
	Strokes []Paint
	Effects []Effect

	StrokeWeight float64
	CornerRadii  [4]float64 // top-left, top-right, bottom-right, bottom-left

	// Vector geometry: compact binary commands, or the textual form.
	// FillGeometry wins when both are present.
	FillGeometry   *Path
	StrokeGeometry *Path
	FillRule       FillRule

	// Text content and styling.
	Characters string
	FontSize   float64
	LineHeight float64

	Children []string
}

// Bounds returns the node's axis-aligned world bounds. Rotation is
// accounted for by taking the AABB of the rotated box.
func (n *Node) Bounds() Rect {
	r := Rect{X: n.X, Y: n.Y, W: n.Width, H: n.Height}
	if n.Rotation == 0 {
		return r
	}
	m := Identity().Translate(n.X, n.Y).Rotate(n.Rotation).Translate(-n.X, -n.Y)
	return m.TransformRect(r)
}

// LocalBox returns the node's box in its own coordinate space, used to
// map normalized gradient handles.
func (n *Node) LocalBox() Rect {
	return Rect{W: n.Width, H: n.Height}
}
