package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func node(id string, y float64) SnapshotNode {
	return SnapshotNode{ID: id, LegacyID: "L" + id, Y: y}
}

func edge(source, target string) SnapshotEdge {
	return SnapshotEdge{SourceID: source, TargetID: target}
}

func TestLinearize_EmptyGraph(t *testing.T) {
	result := NewLinearizer().Linearize(GraphSnapshot{})

	assert.Empty(t, result.Order)
	assert.Empty(t, result.OrphanIDs)
}

func TestLinearize_SingleChain(t *testing.T) {
	snap := GraphSnapshot{
		Nodes: []SnapshotNode{node("a", 0), node("b", 0), node("c", 0)},
		Edges: []SnapshotEdge{edge("a", "b"), edge("b", "c")},
	}

	result := NewLinearizer().Linearize(snap)

	assert.Equal(t, []string{"La", "Lb", "Lc"}, result.Order)
	assert.Empty(t, result.OrphanIDs)
}

func TestLinearize_SingleNode_IsOrphan(t *testing.T) {
	snap := GraphSnapshot{Nodes: []SnapshotNode{node("a", 0)}}

	result := NewLinearizer().Linearize(snap)

	assert.Equal(t, []string{"La"}, result.Order)
	assert.Equal(t, []string{"La"}, result.OrphanIDs)
}

func TestLinearize_PureCycle_FallsBackToFirstCreated(t *testing.T) {
	snap := GraphSnapshot{
		Nodes: []SnapshotNode{node("a", 0), node("b", 0)},
		Edges: []SnapshotEdge{edge("a", "b"), edge("b", "a")},
	}

	result := NewLinearizer().Linearize(snap)

	assert.Equal(t, []string{"La", "Lb"}, result.Order)
	assert.Empty(t, result.OrphanIDs)
}

func TestLinearize_CycleReachedMidWalk_Terminates(t *testing.T) {
	// a -> b -> c -> b: the back-edge makes b a convergence target, so c
	// loses the tie-break to a and the walk ends after b instead of looping
	snap := GraphSnapshot{
		Nodes: []SnapshotNode{node("a", 0), node("b", 0), node("c", 0)},
		Edges: []SnapshotEdge{edge("a", "b"), edge("b", "c"), edge("c", "b")},
	}

	result := NewLinearizer().Linearize(snap)

	assert.Equal(t, []string{"La", "Lb"}, result.Order)
}

func TestLinearize_ConvergencePrefersTopmostBranch(t *testing.T) {
	// x (y=200) and y (y=50) both feed z; y is visually on top so it is the
	// canonical predecessor and x is excluded from the walk
	snap := GraphSnapshot{
		Nodes: []SnapshotNode{node("x", 200), node("y", 50), node("z", 100)},
		Edges: []SnapshotEdge{edge("x", "z"), edge("y", "z")},
	}

	result := NewLinearizer().Linearize(snap)

	assert.Equal(t, []string{"Ly", "Lz"}, result.Order)
	assert.NotContains(t, result.Order, "Lx")
}

func TestLinearize_ConvergenceEqualY_TieBreaksByCreation(t *testing.T) {
	snap := GraphSnapshot{
		Nodes: []SnapshotNode{node("x", 100), node("y", 100), node("z", 0)},
		Edges: []SnapshotEdge{edge("x", "z"), edge("y", "z")},
	}

	result := NewLinearizer().Linearize(snap)

	assert.Contains(t, result.Order, "Lx")
	assert.NotContains(t, result.Order, "Ly")
}

func TestLinearize_BranchAndRejoin(t *testing.T) {
	// n1 fans out to n2 (top) and n3 (bottom); both rejoin at n4. Only the
	// top branch is walked through the rejoin.
	snap := GraphSnapshot{
		Nodes: []SnapshotNode{node("n1", 0), node("n2", 50), node("n3", 150), node("n4", 100)},
		Edges: []SnapshotEdge{
			edge("n1", "n2"), edge("n1", "n3"),
			edge("n2", "n4"), edge("n3", "n4"),
		},
	}

	result := NewLinearizer().Linearize(snap)

	assert.Equal(t, []string{"Ln1", "Ln2", "Ln4"}, result.Order)
	assert.Empty(t, result.OrphanIDs)
}

func TestLinearize_DisconnectedComponentAppended(t *testing.T) {
	snap := GraphSnapshot{
		Nodes: []SnapshotNode{node("a", 0), node("b", 0), node("lone", 0)},
		Edges: []SnapshotEdge{edge("a", "b")},
	}

	result := NewLinearizer().Linearize(snap)

	assert.Equal(t, []string{"La", "Lb", "Llone"}, result.Order)
	assert.Equal(t, []string{"Llone"}, result.OrphanIDs)
}

func TestLinearize_MultipleStartsInCreationOrder(t *testing.T) {
	snap := GraphSnapshot{
		Nodes: []SnapshotNode{node("a", 0), node("b", 0), node("c", 0), node("d", 0)},
		Edges: []SnapshotEdge{edge("a", "c"), edge("b", "d")},
	}

	result := NewLinearizer().Linearize(snap)

	assert.Equal(t, []string{"La", "Lc", "Lb", "Ld"}, result.Order)
}

func TestLinearize_BranchChildrenPopInDiscoveryOrder(t *testing.T) {
	// a fans out to b then c with no rejoin; b's subtree is walked first
	snap := GraphSnapshot{
		Nodes: []SnapshotNode{node("a", 0), node("b", 0), node("c", 0), node("b2", 0)},
		Edges: []SnapshotEdge{edge("a", "b"), edge("a", "c"), edge("b", "b2")},
	}

	result := NewLinearizer().Linearize(snap)

	assert.Equal(t, []string{"La", "Lb", "Lb2", "Lc"}, result.Order)
}

func TestLinearize_DanglingEdgesIgnored(t *testing.T) {
	snap := GraphSnapshot{
		Nodes: []SnapshotNode{node("a", 0)},
		Edges: []SnapshotEdge{edge("a", "ghost"), edge("ghost", "a")},
	}

	result := NewLinearizer().Linearize(snap)

	assert.Equal(t, []string{"La"}, result.Order)
	assert.Equal(t, []string{"La"}, result.OrphanIDs)
}

func TestLinearize_Deterministic(t *testing.T) {
	snap := GraphSnapshot{
		Nodes: []SnapshotNode{node("n1", 0), node("n2", 80), node("n3", 20), node("n4", 50)},
		Edges: []SnapshotEdge{
			edge("n1", "n2"), edge("n1", "n3"),
			edge("n2", "n4"), edge("n3", "n4"),
		},
	}
	linearizer := NewLinearizer()

	first := linearizer.Linearize(snap)
	for i := 0; i < 10; i++ {
		again := linearizer.Linearize(snap)
		require.Equal(t, first, again)
	}
}
