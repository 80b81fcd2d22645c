package tilescape

// Document is the read interface over the scene graph. The renderer
// never mutates the document; structural changes are communicated back
// through tile invalidation instead.
//
// Implementations must be safe for concurrent reads. During an
// in-flight render pass the document is treated as frozen: mutation is
// signaled afterwards via InvalidateTiles or a cache clear, never by
// changing nodes under a running render.
type Document interface {
	// NodeByID returns the raw property map of a node. The map must
	// not be mutated by callers.
	NodeByID(id string) (map[string]any, bool)

	// Children returns the child node ids of a node in paint order.
	Children(id string) []string

	// RootNode resolves a page id to the node id rendering should
	// start from. An empty pageID selects the document's default page.
	RootNode(pageID string) (string, bool)

	// Blob returns a content blob (image bytes and the like) by key.
	// Keys are either hex content hashes or decimal blob-table indices.
	Blob(key string) ([]byte, bool)
}

// Source identifies the document a backend renders from. Exactly one
// field is set. An in-process Document serves the software backend; a
// native backend instead receives an opaque handle it resolves itself.
// Backends resolve the source once, at Initialize.
type Source struct {
	Document Document
	Handle   uintptr
}

// DocumentSource wraps an in-process document.
func DocumentSource(doc Document) Source {
	return Source{Document: doc}
}

// HandleSource wraps an opaque native document handle.
func HandleSource(h uintptr) Source {
	return Source{Handle: h}
}

// Valid reports whether the source identifies any document.
func (s Source) Valid() bool {
	return s.Document != nil || s.Handle != 0
}

// MemDocument is a map-backed Document for tests, demos and documents
// assembled in process. The zero value is not usable; create one with
// NewMemDocument.
type MemDocument struct {
	nodes map[string]map[string]any
	blobs map[string][]byte
	root  string
}

// NewMemDocument returns an empty in-memory document whose default
// page root is rootID.
func NewMemDocument(rootID string) *MemDocument {
	return &MemDocument{
		nodes: make(map[string]map[string]any),
		blobs: make(map[string][]byte),
		root:  rootID,
	}
}

// AddNode inserts or replaces a node. The props map is stored as-is;
// the caller must not mutate it afterwards.
func (d *MemDocument) AddNode(id string, props map[string]any) {
	d.nodes[id] = props
}

// AddBlob inserts or replaces a content blob.
func (d *MemDocument) AddBlob(key string, data []byte) {
	d.blobs[key] = data
}

// NodeByID implements Document.
func (d *MemDocument) NodeByID(id string) (map[string]any, bool) {
	props, ok := d.nodes[id]
	return props, ok
}

// Children implements Document.
func (d *MemDocument) Children(id string) []string {
	props, ok := d.nodes[id]
	if !ok {
		return nil
	}
	switch v := props["children"].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, c := range v {
			if s, ok := c.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// RootNode implements Document. An empty pageID returns the default
// root; otherwise the pageID must name an existing node.
func (d *MemDocument) RootNode(pageID string) (string, bool) {
	if pageID == "" {
		return d.root, d.root != ""
	}
	_, ok := d.nodes[pageID]
	return pageID, ok
}

// Blob implements Document.
func (d *MemDocument) Blob(key string) ([]byte, bool) {
	data, ok := d.blobs[key]
	return data, ok
}
