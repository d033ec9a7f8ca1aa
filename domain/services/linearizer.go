package services

// GraphSnapshot is the immutable view of a flow the linearizer operates on.
// Nodes are listed in creation order, edges in discovery order; both orders
// are part of the contract because they break ties deterministically.
type GraphSnapshot struct {
	Nodes []SnapshotNode
	Edges []SnapshotEdge
}

// SnapshotNode carries the per-node facts linearization needs
type SnapshotNode struct {
	ID       string
	LegacyID string
	Y        float64
}

// SnapshotEdge is one directed connection between snapshot nodes
type SnapshotEdge struct {
	SourceID string
	TargetID string
}

// LinearOrder is the derived playback sequence. Order holds legacy ids;
// OrphanIDs flags nodes with neither incoming nor outgoing edges so the
// preview can mark unreachable content.
type LinearOrder struct {
	Order     []string
	OrphanIDs []string
}

// Linearizer derives a single deterministic playback order from a graph
// that may contain branches, re-convergence points, and cycles.
type Linearizer struct{}

// NewLinearizer creates a linearizer
func NewLinearizer() *Linearizer {
	return &Linearizer{}
}

// Linearize computes the playback order for a snapshot. The function is
// pure: the same snapshot always yields the same output, and it terminates
// for any topology.
//
// Start nodes are those with no incoming edge; a graph with none (a pure
// cycle) falls back to the first-created node as the sole start. When
// several branches converge on one target, the source with the smallest
// vertical position is the canonical predecessor and every other source is
// excluded from the default traversal, so a rejoining branch is never
// walked twice. Nodes that are neither visited nor excluded are appended in
// creation order.
func (l *Linearizer) Linearize(snap GraphSnapshot) LinearOrder {
	result := LinearOrder{Order: []string{}, OrphanIDs: []string{}}
	if len(snap.Nodes) == 0 {
		return result
	}

	nodeAt := make(map[string]int, len(snap.Nodes)) // id -> creation index
	legacy := make(map[string]string, len(snap.Nodes))
	for i, n := range snap.Nodes {
		nodeAt[n.ID] = i
		legacy[n.ID] = n.LegacyID
	}

	outgoing := make(map[string][]string) // source -> targets, discovery order
	incoming := make(map[string][]string) // target -> sources, discovery order
	for _, e := range snap.Edges {
		if _, ok := nodeAt[e.SourceID]; !ok {
			continue
		}
		if _, ok := nodeAt[e.TargetID]; !ok {
			continue
		}
		outgoing[e.SourceID] = append(outgoing[e.SourceID], e.TargetID)
		incoming[e.TargetID] = append(incoming[e.TargetID], e.SourceID)
	}

	excluded := l.excludedSources(snap, nodeAt, incoming)

	// Start set: nodes with no incoming edge, creation order. A pure cycle
	// has none; the first-created node is then the sole start. That
	// fallback is a recorded design choice, kept as documented.
	starts := []string{}
	for _, n := range snap.Nodes {
		if len(incoming[n.ID]) == 0 {
			starts = append(starts, n.ID)
		}
	}
	if len(starts) == 0 {
		starts = append(starts, snap.Nodes[0].ID)
	}

	// Iterative DFS. The visited set makes the walk cycle-safe: a node is
	// appended at most once and the stack never revisits.
	visited := make(map[string]bool, len(snap.Nodes))
	for _, start := range starts {
		if excluded[start] {
			continue
		}
		stack := []string{start}
		for len(stack) > 0 {
			id := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if visited[id] || excluded[id] {
				continue
			}
			visited[id] = true
			result.Order = append(result.Order, legacy[id])

			// Push children reversed so they pop in discovery order
			children := outgoing[id]
			for i := len(children) - 1; i >= 0; i-- {
				child := children[i]
				if !visited[child] && !excluded[child] {
					stack = append(stack, child)
				}
			}
		}
	}

	// Appendix: anything neither visited nor excluded, in creation order
	for _, n := range snap.Nodes {
		if !visited[n.ID] && !excluded[n.ID] {
			result.Order = append(result.Order, n.LegacyID)
		}
		if len(incoming[n.ID]) == 0 && len(outgoing[n.ID]) == 0 {
			result.OrphanIDs = append(result.OrphanIDs, n.LegacyID)
		}
	}

	return result
}

// excludedSources resolves convergence points: for every target with more
// than one distinct source, the source with the smallest Y (the visually
// topmost branch) stays canonical and the rest are excluded from the
// default traversal. Equal Y falls back to creation order.
func (l *Linearizer) excludedSources(
	snap GraphSnapshot,
	nodeAt map[string]int,
	incoming map[string][]string,
) map[string]bool {
	excluded := make(map[string]bool)

	for _, target := range snap.Nodes {
		sources := incoming[target.ID]
		if len(sources) < 2 {
			continue
		}

		distinct := []string{}
		seen := make(map[string]bool)
		for _, s := range sources {
			if !seen[s] {
				seen[s] = true
				distinct = append(distinct, s)
			}
		}
		if len(distinct) < 2 {
			continue
		}

		primary := distinct[0]
		for _, s := range distinct[1:] {
			if l.precedes(snap, nodeAt, s, primary) {
				primary = s
			}
		}
		for _, s := range distinct {
			if s != primary {
				excluded[s] = true
			}
		}
	}

	return excluded
}

// precedes reports whether candidate wins the convergence tie-break over
// current: smaller Y first, then earlier creation.
func (l *Linearizer) precedes(snap GraphSnapshot, nodeAt map[string]int, candidate, current string) bool {
	cy := snap.Nodes[nodeAt[candidate]].Y
	py := snap.Nodes[nodeAt[current]].Y
	if cy != py {
		return cy < py
	}
	return nodeAt[candidate] < nodeAt[current]
}
