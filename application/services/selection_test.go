package services

import (
	"testing"

	"flowcanvas/domain/core/entities"
	"flowcanvas/domain/core/valueobjects"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeNodes(t *testing.T, count int) []*entities.Node {
	t.Helper()
	nodes := make([]*entities.Node, count)
	for i := range nodes {
		pos, err := valueobjects.NewPosition(float64(i)*100, 0)
		require.NoError(t, err)
		node, err := entities.NewNode("content", pos)
		require.NoError(t, err)
		nodes[i] = node
	}
	return nodes
}

func selectedIDs(c *SelectionController, nodes []*entities.Node) []int {
	out := []int{}
	for i, node := range nodes {
		if c.IsSelected(node.ID()) {
			out = append(out, i)
		}
	}
	return out
}

func TestClick_Plain(t *testing.T) {
	nodes := makeNodes(t, 3)
	c := NewSelectionController()

	c.Click(nodes[0].ID(), ClickPlain, nodes)
	assert.Equal(t, []int{0}, selectedIDs(c, nodes))
	assert.True(t, c.Anchor().Equals(nodes[0].ID()))

	// A plain click elsewhere replaces the whole selection
	c.Click(nodes[2].ID(), ClickPlain, nodes)
	assert.Equal(t, []int{2}, selectedIDs(c, nodes))
	assert.True(t, c.Anchor().Equals(nodes[2].ID()))
}

func TestClick_CtrlTogglesMembership(t *testing.T) {
	nodes := makeNodes(t, 3)
	c := NewSelectionController()

	c.Click(nodes[0].ID(), ClickPlain, nodes)
	c.Click(nodes[2].ID(), ClickCtrl, nodes)
	assert.Equal(t, []int{0, 2}, selectedIDs(c, nodes))
	assert.True(t, c.Anchor().Equals(nodes[2].ID()))

	// Ctrl-clicking a selected node removes it
	c.Click(nodes[0].ID(), ClickCtrl, nodes)
	assert.Equal(t, []int{2}, selectedIDs(c, nodes))
}

func TestClick_ShiftSelectsRange(t *testing.T) {
	nodes := makeNodes(t, 5)
	c := NewSelectionController()

	c.Click(nodes[1].ID(), ClickPlain, nodes)
	c.Click(nodes[3].ID(), ClickShift, nodes)

	assert.Equal(t, []int{1, 2, 3}, selectedIDs(c, nodes))
	// Anchor stays so the range can be re-extended
	assert.True(t, c.Anchor().Equals(nodes[1].ID()))

	// Extending backwards replaces the range, still from the same anchor
	c.Click(nodes[0].ID(), ClickShift, nodes)
	assert.Equal(t, []int{0, 1}, selectedIDs(c, nodes))
}

func TestClick_ShiftWithoutAnchorActsPlain(t *testing.T) {
	nodes := makeNodes(t, 3)
	c := NewSelectionController()

	c.Click(nodes[2].ID(), ClickShift, nodes)

	assert.Equal(t, []int{2}, selectedIDs(c, nodes))
	assert.True(t, c.Anchor().Equals(nodes[2].ID()))
}

func TestClick_ShiftOnAnchorActsPlain(t *testing.T) {
	nodes := makeNodes(t, 3)
	c := NewSelectionController()

	c.Click(nodes[1].ID(), ClickPlain, nodes)
	c.Click(nodes[1].ID(), ClickShift, nodes)

	assert.Equal(t, []int{1}, selectedIDs(c, nodes))
}

func TestBackgroundClick(t *testing.T) {
	nodes := makeNodes(t, 2)
	c := NewSelectionController()
	c.Click(nodes[0].ID(), ClickPlain, nodes)

	assert.True(t, c.BackgroundClick())
	assert.Equal(t, 0, c.Count())
	assert.True(t, c.Anchor().IsZero())

	// Nothing left to clear
	assert.False(t, c.BackgroundClick())
}

func TestBackgroundClick_SuppressedInTestMode(t *testing.T) {
	nodes := makeNodes(t, 2)
	c := NewSelectionController()
	c.Click(nodes[0].ID(), ClickPlain, nodes)

	c.SetTestMode(true)
	assert.False(t, c.BackgroundClick())
	assert.Equal(t, 1, c.Count())

	c.SetTestMode(false)
	assert.True(t, c.BackgroundClick())
}

func TestPrune(t *testing.T) {
	nodes := makeNodes(t, 3)
	c := NewSelectionController()
	c.Click(nodes[0].ID(), ClickPlain, nodes)
	c.Click(nodes[1].ID(), ClickCtrl, nodes)

	// Node 1 (the anchor) disappears
	changed := c.Prune(func(id valueobjects.NodeID) bool {
		return id.Equals(nodes[0].ID())
	})

	assert.True(t, changed)
	assert.Equal(t, []int{0}, selectedIDs(c, nodes))
	assert.True(t, c.Anchor().IsZero())

	// Pruning again changes nothing
	assert.False(t, c.Prune(func(valueobjects.NodeID) bool { return true }))
}

func TestSelectedIn_FollowsNodeOrder(t *testing.T) {
	nodes := makeNodes(t, 4)
	c := NewSelectionController()
	c.Click(nodes[3].ID(), ClickPlain, nodes)
	c.Click(nodes[1].ID(), ClickCtrl, nodes)

	selected := c.SelectedIn(nodes)

	require.Len(t, selected, 2)
	assert.True(t, selected[0].ID().Equals(nodes[1].ID()))
	assert.True(t, selected[1].ID().Equals(nodes[3].ID()))
}

func TestDragDelta_GroupDrag(t *testing.T) {
	nodes := makeNodes(t, 3)
	c := NewSelectionController()
	c.Click(nodes[0].ID(), ClickPlain, nodes)
	c.Click(nodes[1].ID(), ClickCtrl, nodes)

	from := nodes[0].Position()
	to, err := from.Translate(25, -10)
	require.NoError(t, err)

	dx, dy, members, ok := c.DragDelta(nodes[0].ID(), from, to, nodes)

	require.True(t, ok)
	assert.Equal(t, 25.0, dx)
	assert.Equal(t, -10.0, dy)
	require.Len(t, members, 1)
	assert.True(t, members[0].ID().Equals(nodes[1].ID()))
}

func TestDragDelta_SoloDragIsNotAGroup(t *testing.T) {
	nodes := makeNodes(t, 3)
	c := NewSelectionController()
	c.Click(nodes[0].ID(), ClickPlain, nodes)

	_, _, _, ok := c.DragDelta(nodes[0].ID(), nodes[0].Position(), nodes[1].Position(), nodes)
	assert.False(t, ok)

	// Dragging an unselected node is also a solo drag
	c.Click(nodes[1].ID(), ClickCtrl, nodes)
	_, _, _, ok = c.DragDelta(nodes[2].ID(), nodes[2].Position(), nodes[0].Position(), nodes)
	assert.False(t, ok)
}
