package netgraph

import (
	"fmt"

	"github.com/dd0wney/fiberplant/pkg/logging"
)

// CascadeResult summarizes a cascading delete (or its preview).
type CascadeResult struct {
	// DescendantCount is the number of removed elements excluding the
	// target itself, for caller-side confirmation prompts.
	DescendantCount int `json:"descendantCount"`
	RemovedElements int `json:"removedElements"`
	RemovedTrays    int `json:"removedTrays"`
	RemovedSplices  int `json:"removedSplices"`
}

// CascadePreview computes what DeleteCascade would remove without
// mutating anything, so callers can confirm before committing. Splice
// counts are not previewed; the splice store owns those.
func (g *Graph) CascadePreview(id string) (CascadeResult, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	removal, trayIDs, err := g.planCascadeLocked(id)
	if err != nil {
		return CascadeResult{}, err
	}
	return CascadeResult{
		DescendantCount: len(removal) - 1,
		RemovedElements: len(removal),
		RemovedTrays:    len(trayIDs),
	}, nil
}

// DeleteCascade removes the target element and every descendant, plus
// each removed enclosure's trays and their splices, as one atomic
// operation. The full removal set is planned against a consistent view
// under the write lock before anything is touched; planning failures
// leave the graph exactly as it was.
func (g *Graph) DeleteCascade(id string) (CascadeResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	removal, trayIDs, err := g.planCascadeLocked(id)
	if err != nil {
		return CascadeResult{}, err
	}

	target := g.elements[id]
	for _, el := range removal {
		delete(g.elements, el.ID)
		delete(g.children, el.ID)
		g.removeFromTypeIndexLocked(el.Type, el.ID)
		for _, trayID := range g.traysByEnclosure[el.ID] {
			delete(g.trays, trayID)
		}
		delete(g.traysByEnclosure, el.ID)
	}
	if target.ParentID != "" {
		g.removeChildLocked(target.ParentID, id)
	}

	removedSplices := 0
	if g.splices != nil && len(trayIDs) > 0 {
		removedSplices = g.splices.DeleteTrays(trayIDs)
	}

	result := CascadeResult{
		DescendantCount: len(removal) - 1,
		RemovedElements: len(removal),
		RemovedTrays:    len(trayIDs),
		RemovedSplices:  removedSplices,
	}

	g.registry.AddElementsDeleted(result.RemovedElements)
	g.registry.ObserveCascadeSize(result.DescendantCount)
	g.logger.Info("cascade delete",
		logging.ElementID(id),
		logging.String("type", string(target.Type)),
		logging.Int("descendants", result.DescendantCount),
		logging.Int("trays", result.RemovedTrays),
		logging.Int("splices", result.RemovedSplices))
	return result, nil
}

// planCascadeLocked walks the children index breadth-first with an
// explicit worklist (closure chains can be arbitrarily deep, so no
// recursion) and returns the ordered removal set plus the tray IDs owned
// by removed enclosures. Caller holds at least a read lock.
func (g *Graph) planCascadeLocked(id string) ([]*Element, []string, error) {
	target, ok := g.elements[id]
	if !ok {
		return nil, nil, fmt.Errorf("element %s: %w", id, ErrElementNotFound)
	}

	removal := []*Element{target}
	trayIDs := append([]string(nil), g.traysByEnclosure[id]...)

	queue := append([]string(nil), g.children[id]...)
	for len(queue) > 0 {
		childID := queue[0]
		queue = queue[1:]

		child, ok := g.elements[childID]
		if !ok {
			return nil, nil, fmt.Errorf("child index references %s: %w", childID, ErrElementNotFound)
		}
		removal = append(removal, child)
		trayIDs = append(trayIDs, g.traysByEnclosure[childID]...)
		queue = append(queue, g.children[childID]...)
	}

	return removal, trayIDs, nil
}

// removeFromTypeIndexLocked removes an element ID from its type index,
// preserving order. Caller holds the write lock.
func (g *Graph) removeFromTypeIndexLocked(t ElementType, id string) {
	ids := g.byType[t]
	for i, existing := range ids {
		if existing == id {
			g.byType[t] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
}
