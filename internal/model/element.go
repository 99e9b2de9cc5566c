package model

import (
	"fmt"
	"strings"
)

// Origin records where an element was loaded from, for diagnostics.
type Origin struct {
	File string
	Line int
}

// String formats the origin as file:line, or just the file when no line is
// known.
func (o Origin) String() string {
	if o.File == "" {
		return ""
	}
	if o.Line <= 0 {
		return o.File
	}
	return fmt.Sprintf("%s:%d", o.File, o.Line)
}

// Element is a single documented unit of the architecture model: a service,
// goal, API operation, schema, and so on. Identity is the (layer, type, name)
// triple; the attribute tree is open-ended and only partially schematized.
type Element struct {
	Layer  Layer
	Type   string
	Name   string
	Data   Tree
	Origin Origin
}

// NewElement creates an element with an empty attribute tree.
func NewElement(layer Layer, typ, name string) *Element {
	return &Element{
		Layer: layer,
		Type:  typ,
		Name:  name,
		Data:  make(Tree),
	}
}

// ID returns the globally unique "layer.type.name" identifier.
func (e *Element) ID() string {
	return string(e.Layer) + "." + e.Type + "." + e.Name
}

// Update replaces the attribute subtree at a dotted path. References derived
// from the old data become invalid; callers must re-register the element with
// the reference index afterwards.
func (e *Element) Update(path string, v Value) error {
	if e.Data == nil {
		e.Data = make(Tree)
	}
	return e.Data.Set(path, v)
}

// ParseID splits a "layer.type.name" identifier into its parts. The name part
// may itself contain dots; only the first two separators are structural.
func ParseID(id string) (Layer, string, string, error) {
	parts := strings.SplitN(id, ".", 3)
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return "", "", "", fmt.Errorf("malformed element id %q: want layer.type.name", id)
	}
	layer, err := NormalizeLayer(parts[0])
	if err != nil {
		return "", "", "", fmt.Errorf("malformed element id %q: %w", id, err)
	}
	return layer, parts[1], parts[2], nil
}

// Lookup is the element-resolution capability the validation engine consumes.
// The file-backed store implements it; tests use in-memory fakes.
type Lookup interface {
	// Get resolves an element id. The second return is false when the id
	// does not exist in the current snapshot.
	Get(id string) (*Element, bool)
	// List enumerates all elements of one layer.
	List(layer Layer) []*Element
	// HasLayer reports whether the layer is populated in the snapshot.
	HasLayer(layer Layer) bool
}
