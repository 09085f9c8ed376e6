package netgraph

import "sort"

// Edge is the derived link between an element and its parent. Edges are
// never persisted as their own records; they carry the cable metadata
// attached to the child element for display.
type Edge struct {
	FromID     string `json:"fromId"`
	ToID       string `json:"toId"`
	CableName  string `json:"cableName,omitempty"`
	FiberCount int    `json:"fiberCount,omitempty"`
}

// Edges derives the edge list from parent pointers, in the same order as
// Elements.
func (g *Graph) Edges() []Edge {
	elements := g.Elements()
	out := make([]Edge, 0, len(elements))
	for _, el := range elements {
		if el.ParentID == "" {
			continue
		}
		out = append(out, Edge{
			FromID:     el.ParentID,
			ToID:       el.ID,
			CableName:  el.FeedCableName,
			FiberCount: el.FeedCableFibers,
		})
	}
	return out
}

// Position is a computed canvas coordinate.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LayoutOptions controls auto-layout spacing.
type LayoutOptions struct {
	ColumnWidth float64
	RowHeight   float64
	MarginX     float64
	MarginY     float64
}

// DefaultLayoutOptions returns the spacing used by the canvas views.
func DefaultLayoutOptions() LayoutOptions {
	return LayoutOptions{ColumnWidth: 220, RowHeight: 120, MarginX: 60, MarginY: 60}
}

// AutoLayout assigns each element a position: columns by depth (the
// longest path from any root that reaches it), rows by sibling order.
// It is a pure function of the given nodes and edges; it performs no I/O
// and never writes back to any store. Callers that want the result
// persisted apply it explicitly via SetPosition.
func AutoLayout(elements []*Element, edges []Edge, opts LayoutOptions) map[string]Position {
	if opts.ColumnWidth == 0 && opts.RowHeight == 0 {
		opts = DefaultLayoutOptions()
	}

	present := make(map[string]*Element, len(elements))
	for _, el := range elements {
		present[el.ID] = el
	}

	// Adjacency and in-degree restricted to the given node set.
	childrenOf := make(map[string][]string)
	inDegree := make(map[string]int, len(elements))
	for _, el := range elements {
		inDegree[el.ID] = 0
	}
	for _, e := range edges {
		if present[e.FromID] == nil || present[e.ToID] == nil {
			continue
		}
		childrenOf[e.FromID] = append(childrenOf[e.FromID], e.ToID)
		inDegree[e.ToID]++
	}

	// Kahn worklist; depth relaxation gives the longest root path.
	depth := make(map[string]int, len(elements))
	queue := make([]string, 0, len(elements))
	for _, el := range elements {
		if inDegree[el.ID] == 0 {
			queue = append(queue, el.ID)
		}
	}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, childID := range childrenOf[id] {
			if d := depth[id] + 1; d > depth[childID] {
				depth[childID] = d
			}
			inDegree[childID]--
			if inDegree[childID] == 0 {
				queue = append(queue, childID)
			}
		}
	}

	// Group by depth and order rows deterministically.
	columns := make(map[int][]*Element)
	maxDepth := 0
	for _, el := range elements {
		d := depth[el.ID]
		columns[d] = append(columns[d], el)
		if d > maxDepth {
			maxDepth = d
		}
	}

	positions := make(map[string]Position, len(elements))
	for d := 0; d <= maxDepth; d++ {
		col := columns[d]
		sort.Slice(col, func(i, j int) bool {
			if col[i].Name != col[j].Name {
				return col[i].Name < col[j].Name
			}
			return col[i].ID < col[j].ID
		})
		for row, el := range col {
			positions[el.ID] = Position{
				X: opts.MarginX + float64(d)*opts.ColumnWidth,
				Y: opts.MarginY + float64(row)*opts.RowHeight,
			}
		}
	}
	return positions
}

// Layout computes positions for the graph's current contents. The
// result is returned, not applied; see ApplyLayout.
func (g *Graph) Layout(opts LayoutOptions) map[string]Position {
	positions := AutoLayout(g.Elements(), g.Edges(), opts)
	g.registry.IncLayoutRun()
	return positions
}

// ApplyLayout persists computed positions, overwriting manual placement
// only for the elements present in the map.
func (g *Graph) ApplyLayout(positions map[string]Position) error {
	for id, pos := range positions {
		if err := g.SetPosition(id, pos.X, pos.Y); err != nil {
			return err
		}
	}
	return nil
}
