package services

import (
	"flowcanvas/domain/core/entities"
	"flowcanvas/domain/core/valueobjects"
)

// ClickModifier describes which interaction mode a click enters. The mode
// is fully determined per click; nothing persists between clicks except the
// selection set and the anchor.
type ClickModifier string

const (
	ClickPlain ClickModifier = "plain"
	ClickShift ClickModifier = "shift"
	ClickCtrl  ClickModifier = "ctrl"
)

// SelectionController tracks which nodes are selected on the canvas, the
// anchor node for range selection, and the test-mode flag that suspends
// selection-clearing interactions.
type SelectionController struct {
	selected map[valueobjects.NodeID]bool
	anchor   valueobjects.NodeID
	testMode bool
}

// NewSelectionController creates an empty selection
func NewSelectionController() *SelectionController {
	return &SelectionController{
		selected: make(map[valueobjects.NodeID]bool),
	}
}

// Click applies one click on a node. nodes is the current node list in
// array order; range selection slices it between the anchor and the
// clicked node, inclusive.
func (c *SelectionController) Click(nodeID valueobjects.NodeID, modifier ClickModifier, nodes []*entities.Node) {
	switch modifier {
	case ClickShift:
		if !c.anchor.IsZero() && !c.anchor.Equals(nodeID) {
			c.selectRange(c.anchor, nodeID, nodes)
			return
		}
		// No usable anchor: behave like a plain click
		c.selectOnly(nodeID)
	case ClickCtrl:
		if c.selected[nodeID] {
			delete(c.selected, nodeID)
		} else {
			c.selected[nodeID] = true
		}
		c.anchor = nodeID
	default:
		c.selectOnly(nodeID)
	}
}

// BackgroundClick clears selection and anchor. Suppressed while test mode
// is active. Reports whether anything changed.
func (c *SelectionController) BackgroundClick() bool {
	if c.testMode {
		return false
	}
	if len(c.selected) == 0 && c.anchor.IsZero() {
		return false
	}
	c.selected = make(map[valueobjects.NodeID]bool)
	c.anchor = valueobjects.NodeID{}
	return true
}

// SelectOnly replaces the selection with a single node (preview-driven select)
func (c *SelectionController) SelectOnly(nodeID valueobjects.NodeID) {
	c.selectOnly(nodeID)
}

// IsSelected checks membership
func (c *SelectionController) IsSelected(nodeID valueobjects.NodeID) bool {
	return c.selected[nodeID]
}

// Count returns the selection size
func (c *SelectionController) Count() int {
	return len(c.selected)
}

// Anchor returns the current range anchor
func (c *SelectionController) Anchor() valueobjects.NodeID {
	return c.anchor
}

// SelectedIn returns the selected nodes in node-list order
func (c *SelectionController) SelectedIn(nodes []*entities.Node) []*entities.Node {
	out := []*entities.Node{}
	for _, node := range nodes {
		if c.selected[node.ID()] {
			out = append(out, node)
		}
	}
	return out
}

// Prune drops selection entries whose node no longer exists. The anchor is
// cleared too if its node is gone. Reports whether anything was dropped.
func (c *SelectionController) Prune(exists func(valueobjects.NodeID) bool) bool {
	changed := false
	for id := range c.selected {
		if !exists(id) {
			delete(c.selected, id)
			changed = true
		}
	}
	if !c.anchor.IsZero() && !exists(c.anchor) {
		c.anchor = valueobjects.NodeID{}
		changed = true
	}
	return changed
}

// SetTestMode toggles the modal test mode
func (c *SelectionController) SetTestMode(active bool) {
	c.testMode = active
}

// TestMode reports whether test mode is active
func (c *SelectionController) TestMode() bool {
	return c.testMode
}

// DragDelta interprets a drag of one node. When the dragged node belongs
// to a multi-node selection, it returns the position delta plus the other
// selected nodes (node-list order) that must move by the same delta so the
// group keeps its relative layout. ok is false for solo drags.
func (c *SelectionController) DragDelta(
	draggedID valueobjects.NodeID,
	from, to valueobjects.Position,
	nodes []*entities.Node,
) (dx, dy float64, members []*entities.Node, ok bool) {
	if !c.selected[draggedID] || len(c.selected) < 2 {
		return 0, 0, nil, false
	}

	dx, dy = from.DeltaTo(to)
	for _, node := range nodes {
		if c.selected[node.ID()] && !node.ID().Equals(draggedID) {
			members = append(members, node)
		}
	}
	return dx, dy, members, true
}

// Private helper methods

func (c *SelectionController) selectOnly(nodeID valueobjects.NodeID) {
	c.selected = map[valueobjects.NodeID]bool{nodeID: true}
	c.anchor = nodeID
}

func (c *SelectionController) selectRange(anchor, clicked valueobjects.NodeID, nodes []*entities.Node) {
	anchorAt, clickedAt := -1, -1
	for i, node := range nodes {
		if node.ID().Equals(anchor) {
			anchorAt = i
		}
		if node.ID().Equals(clicked) {
			clickedAt = i
		}
	}
	if anchorAt == -1 || clickedAt == -1 {
		c.selectOnly(clicked)
		return
	}

	lo, hi := anchorAt, clickedAt
	if lo > hi {
		lo, hi = hi, lo
	}

	c.selected = make(map[valueobjects.NodeID]bool, hi-lo+1)
	for _, node := range nodes[lo : hi+1] {
		c.selected[node.ID()] = true
	}
	// Anchor stays put so the range can be re-extended
}
