package netgraph

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/fiberplant/pkg/logging"
	"github.com/dd0wney/fiberplant/pkg/metrics"
)

// SpliceDeleter is the single coordination point with the splice
// continuity store: cascading deletes hand it the tray IDs being
// removed. The returned count is folded into the cascade result.
type SpliceDeleter interface {
	DeleteTrays(trayIDs []string) int
}

// Graph is the in-memory network element store. All methods are safe for
// concurrent use; returned records are clones.
type Graph struct {
	mu               sync.RWMutex
	elements         map[string]*Element
	children         map[string][]string      // parent ID -> child IDs, insertion order
	byType           map[ElementType][]string // type -> element IDs, insertion order
	trays            map[string]*Tray
	traysByEnclosure map[string][]string

	splices  SpliceDeleter
	logger   logging.Logger
	registry *metrics.Registry
}

// GraphConfig wires optional collaborators into the graph.
type GraphConfig struct {
	// Splices receives tray deletions during cascades. May be nil.
	Splices SpliceDeleter
	Logger  logging.Logger
	Metrics *metrics.Registry
}

// NewGraph creates an empty network graph.
func NewGraph(cfg GraphConfig) *Graph {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	return &Graph{
		elements:         make(map[string]*Element),
		children:         make(map[string][]string),
		byType:           make(map[ElementType][]string),
		trays:            make(map[string]*Tray),
		traysByEnclosure: make(map[string][]string),
		splices:          cfg.Splices,
		logger:           logger.With(logging.Component("netgraph")),
		registry:         cfg.Metrics,
	}
}

// CreateRoot creates a root element (an OLT). An empty name is
// synthesized as "OLT-{count+1}".
func (g *Graph) CreateRoot(name string) (*Element, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.createLocked(TypeOLT, name, nil)
}

// CreateChild creates a new element under the given parent. The child
// type must accept the parent's type per the hierarchy table; violations
// are reported before any persistence. An empty name is synthesized as
// "{TYPE}-{count+1}".
func (g *Graph) CreateChild(parentID string, childType ElementType, name string) (*Element, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	parent, ok := g.elements[parentID]
	if !ok {
		return nil, fmt.Errorf("parent %s: %w", parentID, ErrElementNotFound)
	}
	if !childType.Valid() {
		return nil, fmt.Errorf("type %q: %w", childType, ErrInvalidType)
	}
	if childType.IsRoot() {
		return nil, fmt.Errorf("%s is a root type: %w", childType, ErrInvalidParent)
	}
	if !parentAllowed(childType, parent.Type) {
		return nil, fmt.Errorf("%s under %s: %w", childType, parent.Type, ErrInvalidParent)
	}

	return g.createLocked(childType, name, parent)
}

// CreateChildAt is CreateChild with an initial canvas position.
func (g *Graph) CreateChildAt(parentID string, childType ElementType, name string, x, y float64) (*Element, error) {
	el, err := g.CreateChild(parentID, childType, name)
	if err != nil {
		return nil, err
	}
	if err := g.SetPosition(el.ID, x, y); err != nil {
		return nil, err
	}
	el.CanvasX, el.CanvasY = x, y
	return el, nil
}

func (g *Graph) createLocked(t ElementType, name string, parent *Element) (*Element, error) {
	if name == "" {
		name = fmt.Sprintf("%s-%d", t, len(g.byType[t])+1)
	}

	now := time.Now().Unix()
	el := &Element{
		ID:        uuid.NewString(),
		Type:      t,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if parent != nil {
		el.ParentType = parent.Type
		el.ParentID = parent.ID
		g.children[parent.ID] = append(g.children[parent.ID], el.ID)
	}

	g.elements[el.ID] = el
	g.byType[t] = append(g.byType[t], el.ID)

	g.registry.IncElementCreated(string(t))
	g.logger.Info("element created",
		logging.ElementID(el.ID),
		logging.String("type", string(t)),
		logging.String("name", name))
	return el.Clone(), nil
}

// ConnectOutcome reports what a Connect call did.
type ConnectOutcome string

const (
	// Connected means the target's parent pointer was rewritten.
	Connected ConnectOutcome = "connected"
	// AlreadyConnected means the target already hung off the source.
	AlreadyConnected ConnectOutcome = "already-connected"
	// RejectedType means the pairing violates the hierarchy table.
	RejectedType ConnectOutcome = "rejected-type"
	// RejectedCycle means the connection would make an element its own
	// ancestor (possible through closure-to-closure chains).
	RejectedCycle ConnectOutcome = "rejected-cycle"
)

// ConnectResult is the explicit outcome of a connection attempt, so
// callers can distinguish rejection from no-op instead of both looking
// like nothing happened.
type ConnectResult struct {
	Outcome ConnectOutcome `json:"outcome"`
	Reason  string         `json:"reason,omitempty"`
}

// Connect makes target a child of source, rewriting the target's parent
// pointer. A rejected connection leaves the graph unchanged and reports
// why. Missing elements are errors.
func (g *Graph) Connect(sourceID, targetID string) (ConnectResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	source, ok := g.elements[sourceID]
	if !ok {
		return ConnectResult{}, fmt.Errorf("source %s: %w", sourceID, ErrElementNotFound)
	}
	target, ok := g.elements[targetID]
	if !ok {
		return ConnectResult{}, fmt.Errorf("target %s: %w", targetID, ErrElementNotFound)
	}

	if target.ParentID == sourceID {
		return ConnectResult{Outcome: AlreadyConnected}, nil
	}
	if target.Type.IsRoot() {
		g.registry.IncConnectRejected()
		return ConnectResult{
			Outcome: RejectedType,
			Reason:  fmt.Sprintf("%s is a root type and takes no parent", target.Type),
		}, nil
	}
	if !parentAllowed(target.Type, source.Type) {
		g.registry.IncConnectRejected()
		g.logger.Warn("connection rejected",
			logging.String("source_type", string(source.Type)),
			logging.String("target_type", string(target.Type)))
		return ConnectResult{
			Outcome: RejectedType,
			Reason:  fmt.Sprintf("%s cannot hang off %s", target.Type, source.Type),
		}, nil
	}
	if sourceID == targetID || g.isDescendantLocked(targetID, sourceID) {
		g.registry.IncConnectRejected()
		return ConnectResult{
			Outcome: RejectedCycle,
			Reason:  "connection would make the element its own ancestor",
		}, nil
	}

	// Detach from the previous parent, then attach.
	if target.ParentID != "" {
		g.removeChildLocked(target.ParentID, targetID)
	}
	target.ParentType = source.Type
	target.ParentID = sourceID
	target.UpdatedAt = time.Now().Unix()
	g.children[sourceID] = append(g.children[sourceID], targetID)

	return ConnectResult{Outcome: Connected}, nil
}

// SetPosition persists manually placed canvas coordinates. Auto-layout
// never touches these unless the caller applies its result explicitly.
func (g *Graph) SetPosition(id string, x, y float64) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	el, ok := g.elements[id]
	if !ok {
		return fmt.Errorf("element %s: %w", id, ErrElementNotFound)
	}
	el.CanvasX = x
	el.CanvasY = y
	el.UpdatedAt = time.Now().Unix()
	return nil
}

// SetEdgeCable attaches cable metadata to the edge feeding an element
// from its parent. Root elements have no feeding edge.
func (g *Graph) SetEdgeCable(id, cableName string, fiberCount int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	el, ok := g.elements[id]
	if !ok {
		return fmt.Errorf("element %s: %w", id, ErrElementNotFound)
	}
	if el.ParentID == "" {
		return fmt.Errorf("%s is a root and has no feeding edge: %w", el.Type, ErrInvalidParent)
	}
	el.FeedCableName = cableName
	el.FeedCableFibers = fiberCount
	el.UpdatedAt = time.Now().Unix()
	return nil
}

// SetGPS records an element's surveyed coordinates.
func (g *Graph) SetGPS(id string, lat, lon float64) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	el, ok := g.elements[id]
	if !ok {
		return fmt.Errorf("element %s: %w", id, ErrElementNotFound)
	}
	el.Latitude = &lat
	el.Longitude = &lon
	el.UpdatedAt = time.Now().Unix()
	return nil
}

// AddTray adds a splice tray to an enclosure.
func (g *Graph) AddTray(enclosureID string, number, capacity int) (*Tray, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	el, ok := g.elements[enclosureID]
	if !ok {
		return nil, fmt.Errorf("enclosure %s: %w", enclosureID, ErrElementNotFound)
	}
	if !el.Type.IsEnclosure() {
		return nil, fmt.Errorf("%s: %w", el.Type, ErrNotEnclosure)
	}

	tray := &Tray{
		ID:          uuid.NewString(),
		EnclosureID: enclosureID,
		Number:      number,
		Capacity:    capacity,
	}
	g.trays[tray.ID] = tray
	g.traysByEnclosure[enclosureID] = append(g.traysByEnclosure[enclosureID], tray.ID)
	return tray.Clone(), nil
}

// TraysOf returns an enclosure's trays ordered by tray number.
func (g *Graph) TraysOf(enclosureID string) []*Tray {
	g.mu.RLock()
	defer g.mu.RUnlock()

	ids := g.traysByEnclosure[enclosureID]
	out := make([]*Tray, 0, len(ids))
	for _, id := range ids {
		out = append(out, g.trays[id].Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

// GetTray retrieves a tray by ID.
func (g *Graph) GetTray(id string) (*Tray, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	tray, ok := g.trays[id]
	if !ok {
		return nil, ErrTrayNotFound
	}
	return tray.Clone(), nil
}

// Get retrieves an element by ID.
func (g *Graph) Get(id string) (*Element, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	el, ok := g.elements[id]
	if !ok {
		return nil, ErrElementNotFound
	}
	return el.Clone(), nil
}

// ChildrenOf returns an element's direct children in creation order.
func (g *Graph) ChildrenOf(id string) []*Element {
	g.mu.RLock()
	defer g.mu.RUnlock()

	ids := g.children[id]
	out := make([]*Element, 0, len(ids))
	for _, childID := range ids {
		out = append(out, g.elements[childID].Clone())
	}
	return out
}

// Roots returns every root element in creation order.
func (g *Graph) Roots() []*Element {
	return g.ByType(TypeOLT)
}

// ByType returns every element of a type in creation order.
func (g *Graph) ByType(t ElementType) []*Element {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]*Element, 0, len(g.byType[t]))
	for _, id := range g.byType[t] {
		out = append(out, g.elements[id].Clone())
	}
	return out
}

// Elements returns every element, grouped by type in fixed type order.
func (g *Graph) Elements() []*Element {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]*Element, 0, len(g.elements))
	for _, t := range elementTypes {
		for _, id := range g.byType[t] {
			out = append(out, g.elements[id].Clone())
		}
	}
	return out
}

// Trays returns every tray, ordered by enclosure then number.
func (g *Graph) Trays() []*Tray {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]*Tray, 0, len(g.trays))
	for _, tray := range g.trays {
		out = append(out, tray.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].EnclosureID != out[j].EnclosureID {
			return out[i].EnclosureID < out[j].EnclosureID
		}
		return out[i].Number < out[j].Number
	})
	return out
}

// Len returns the element count.
func (g *Graph) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.elements)
}

// Restore loads previously persisted elements and trays, replacing
// current state. Parent pointers are re-validated against the hierarchy
// table so a corrupted snapshot cannot produce an illegal graph.
func (g *Graph) Restore(elements []*Element, trays []*Tray) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	els := make(map[string]*Element, len(elements))
	for _, el := range elements {
		if el.ID == "" || !el.Type.Valid() {
			return fmt.Errorf("persisted element %q: %w", el.ID, ErrInvalidType)
		}
		els[el.ID] = el.Clone()
	}

	children := make(map[string][]string)
	byType := make(map[ElementType][]string)
	for _, src := range elements {
		el := els[src.ID]
		byType[el.Type] = append(byType[el.Type], el.ID)
		if el.ParentID == "" {
			if !el.Type.IsRoot() {
				return fmt.Errorf("persisted %s %q has no parent: %w", el.Type, el.Name, ErrInvalidParent)
			}
			continue
		}
		parent, ok := els[el.ParentID]
		if !ok {
			return fmt.Errorf("persisted element %q: parent %s: %w", el.Name, el.ParentID, ErrElementNotFound)
		}
		if !parentAllowed(el.Type, parent.Type) {
			return fmt.Errorf("persisted %s under %s: %w", el.Type, parent.Type, ErrInvalidParent)
		}
		children[el.ParentID] = append(children[el.ParentID], el.ID)
	}

	trayMap := make(map[string]*Tray, len(trays))
	traysByEnclosure := make(map[string][]string)
	for _, tray := range trays {
		if _, ok := els[tray.EnclosureID]; !ok {
			return fmt.Errorf("persisted tray %s: enclosure %s: %w", tray.ID, tray.EnclosureID, ErrElementNotFound)
		}
		trayMap[tray.ID] = tray.Clone()
		traysByEnclosure[tray.EnclosureID] = append(traysByEnclosure[tray.EnclosureID], tray.ID)
	}

	g.elements = els
	g.children = children
	g.byType = byType
	g.trays = trayMap
	g.traysByEnclosure = traysByEnclosure
	return nil
}

// parentAllowed reports whether parentType is legal for childType.
func parentAllowed(childType, parentType ElementType) bool {
	for _, p := range allowedParents[childType] {
		if p == parentType {
			return true
		}
	}
	return false
}

// isDescendantLocked reports whether candidate is in ancestor's subtree.
// Caller holds the lock.
func (g *Graph) isDescendantLocked(ancestorID, candidateID string) bool {
	queue := append([]string(nil), g.children[ancestorID]...)
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if id == candidateID {
			return true
		}
		queue = append(queue, g.children[id]...)
	}
	return false
}

// removeChildLocked removes childID from parentID's child list,
// preserving order. Caller holds the lock.
func (g *Graph) removeChildLocked(parentID, childID string) {
	ids := g.children[parentID]
	for i, id := range ids {
		if id == childID {
			g.children[parentID] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	if len(g.children[parentID]) == 0 {
		delete(g.children, parentID)
	}
}
