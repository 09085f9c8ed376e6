// Package netgraph maintains the typed parent/child hierarchy of
// outside-plant network elements: OLTs at the root, distribution frames
// and enclosures below. The hierarchy table governs which parent/child
// pairings are legal; violations are rejected, never silently coerced.
package netgraph

import "fmt"

var (
	ErrElementNotFound = fmt.Errorf("element not found")
	ErrTrayNotFound    = fmt.Errorf("tray not found")
	ErrInvalidParent   = fmt.Errorf("parent type not allowed for element type")
	ErrInvalidType     = fmt.Errorf("unknown element type")
	ErrNotEnclosure    = fmt.Errorf("element type cannot hold trays")
)

// ElementType enumerates the network element roles.
type ElementType string

const (
	// TypeOLT is the Optical Line Terminal, always a root.
	TypeOLT ElementType = "OLT"
	// TypeODF is an Optical Distribution Frame patched off an OLT.
	TypeODF ElementType = "ODF"
	// TypeClosure is a splice enclosure; closures may chain into each
	// other to unbounded depth.
	TypeClosure ElementType = "CLOSURE"
	// TypeLCP is a Local Convergence Point aggregation enclosure.
	TypeLCP ElementType = "LCP"
	// TypeNAP is the customer-facing Network Access Point leaf.
	TypeNAP ElementType = "NAP"
)

// elementTypes in fixed presentation order.
var elementTypes = []ElementType{TypeOLT, TypeODF, TypeClosure, TypeLCP, TypeNAP}

// allowedParents is the hierarchy table. An empty set means the type is
// a root and takes no parent.
var allowedParents = map[ElementType][]ElementType{
	TypeOLT:     nil,
	TypeODF:     {TypeOLT},
	TypeClosure: {TypeOLT, TypeODF, TypeClosure},
	TypeLCP:     {TypeOLT, TypeClosure},
	TypeNAP:     {TypeLCP},
}

// Valid reports whether t is a known element type.
func (t ElementType) Valid() bool {
	_, ok := allowedParents[t]
	return ok
}

// IsRoot reports whether t takes no parent.
func (t ElementType) IsRoot() bool {
	parents, ok := allowedParents[t]
	return ok && len(parents) == 0
}

// IsEnclosure reports whether elements of this type hold splice trays.
func (t ElementType) IsEnclosure() bool {
	switch t {
	case TypeClosure, TypeLCP, TypeNAP:
		return true
	}
	return false
}

// ElementTypes returns every element type in fixed hierarchy order.
func ElementTypes() []ElementType {
	out := make([]ElementType, len(elementTypes))
	copy(out, elementTypes)
	return out
}

// AllowedParentTypes returns the parent types legal for t, in table order.
func AllowedParentTypes(t ElementType) []ElementType {
	parents := allowedParents[t]
	out := make([]ElementType, len(parents))
	copy(out, parents)
	return out
}

// AllowedChildTypes returns the child types legal under t, derived by
// inverse lookup over the hierarchy table. Order follows the fixed type
// order so callers can render stable menus.
func AllowedChildTypes(t ElementType) []ElementType {
	out := make([]ElementType, 0, len(elementTypes))
	for _, child := range elementTypes {
		for _, parent := range allowedParents[child] {
			if parent == t {
				out = append(out, child)
				break
			}
		}
	}
	return out
}

// Element is one network element. ParentID is empty for roots.
type Element struct {
	ID         string      `json:"id"`
	Type       ElementType `json:"type"`
	Name       string      `json:"name"`
	ParentType ElementType `json:"parentType,omitempty"`
	ParentID   string      `json:"parentId,omitempty"`
	CanvasX    float64     `json:"canvasX"`
	CanvasY    float64     `json:"canvasY"`
	// FeedCableName/FeedCableFibers describe the cable on the edge
	// from this element's parent, when one has been attached.
	FeedCableName   string   `json:"feedCableName,omitempty"`
	FeedCableFibers int      `json:"feedCableFibers,omitempty"`
	Latitude        *float64 `json:"latitude,omitempty"`
	Longitude       *float64 `json:"longitude,omitempty"`
	Notes           string   `json:"notes,omitempty"`
	CreatedAt       int64    `json:"createdAt"`
	UpdatedAt       int64    `json:"updatedAt"`
}

// Clone returns a deep copy so callers can't mutate store state.
func (e *Element) Clone() *Element {
	if e == nil {
		return nil
	}
	out := *e
	if e.Latitude != nil {
		lat := *e.Latitude
		out.Latitude = &lat
	}
	if e.Longitude != nil {
		lon := *e.Longitude
		out.Longitude = &lon
	}
	return &out
}

// Tray is a splice tray inside an enclosure.
type Tray struct {
	ID          string `json:"id"`
	EnclosureID string `json:"enclosureId"`
	Number      int    `json:"number"`
	Capacity    int    `json:"capacity"`
}

// Clone returns a copy of the tray.
func (t *Tray) Clone() *Tray {
	if t == nil {
		return nil
	}
	out := *t
	return &out
}
