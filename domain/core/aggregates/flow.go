package aggregates

import (
	"fmt"
	"time"

	"flowcanvas/domain/config"
	"flowcanvas/domain/core/entities"
	"flowcanvas/domain/core/valueobjects"
	"flowcanvas/domain/events"
	pkgerrors "flowcanvas/pkg/errors"
	"github.com/google/uuid"
)

// FlowID represents a unique flow identifier
type FlowID string

// NewFlowID creates a new random FlowID
func NewFlowID() FlowID {
	return FlowID(uuid.New().String())
}

// String returns the string representation
func (id FlowID) String() string {
	return string(id)
}

// Edge is a directed connection between two nodes. Multiple edges between
// the same pair are permitted: they mirror user-drawn reconnections.
type Edge struct {
	ID        valueobjects.EdgeID
	SourceID  valueobjects.NodeID
	TargetID  valueobjects.NodeID
	CreatedAt time.Time
}

// Flow is the aggregate root for one editor canvas. It owns the
// authoritative node and edge sets and is the consistency boundary for
// every graph mutation: edges can never dangle, node identity is unique,
// and each mutation bumps the version so derived views (the linear order)
// know they are stale.
type Flow struct {
	id          FlowID
	name        string
	nodes       []*entities.Node // creation order
	nodeIndex   map[valueobjects.NodeID]*entities.Node
	legacyIndex map[valueobjects.LegacyID]*entities.Node
	edges       []*Edge // discovery order
	edgeIndex   map[valueobjects.EdgeID]*Edge
	lastAdded   valueobjects.NodeID
	config      *config.DomainConfig
	createdAt   time.Time
	updatedAt   time.Time
	version     int
	events      []events.DomainEvent
}

// NewFlow creates a new flow aggregate with default configuration
func NewFlow(name string) *Flow {
	return NewFlowWithConfig(name, config.DefaultDomainConfig())
}

// NewFlowWithConfig creates a new flow aggregate with specific configuration
func NewFlowWithConfig(name string, cfg *config.DomainConfig) *Flow {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	if name == "" {
		name = cfg.DefaultFlowName
	}

	now := time.Now()
	return &Flow{
		id:          NewFlowID(),
		name:        name,
		nodes:       []*entities.Node{},
		nodeIndex:   make(map[valueobjects.NodeID]*entities.Node),
		legacyIndex: make(map[valueobjects.LegacyID]*entities.Node),
		edges:       []*Edge{},
		edgeIndex:   make(map[valueobjects.EdgeID]*Edge),
		config:      cfg,
		createdAt:   now,
		updatedAt:   now,
		version:     1,
		events:      []events.DomainEvent{},
	}
}

// ID returns the flow's unique identifier
func (f *Flow) ID() FlowID {
	return f.id
}

// Name returns the flow's name
func (f *Flow) Name() string {
	return f.name
}

// Version returns the flow version. Every mutation bumps it, so callers
// can use it to detect a stale derived order.
func (f *Flow) Version() int {
	return f.version
}

// CreatedAt returns when the flow was created
func (f *Flow) CreatedAt() time.Time {
	return f.createdAt
}

// UpdatedAt returns when the flow was last mutated
func (f *Flow) UpdatedAt() time.Time {
	return f.updatedAt
}

// NodeCount returns the number of nodes in the flow
func (f *Flow) NodeCount() int {
	return len(f.nodes)
}

// EdgeCount returns the number of edges in the flow
func (f *Flow) EdgeCount() int {
	return len(f.edges)
}

// Nodes returns all nodes in creation order
func (f *Flow) Nodes() []*entities.Node {
	nodes := make([]*entities.Node, len(f.nodes))
	copy(nodes, f.nodes)
	return nodes
}

// Edges returns all edges in discovery order
func (f *Flow) Edges() []*Edge {
	edges := make([]*Edge, len(f.edges))
	copy(edges, f.edges)
	return edges
}

// NodeByID retrieves a node by internal id
func (f *Flow) NodeByID(id valueobjects.NodeID) (*entities.Node, bool) {
	node, ok := f.nodeIndex[id]
	return node, ok
}

// NodeByLegacyID retrieves a node by its external handle
func (f *Flow) NodeByLegacyID(id valueobjects.LegacyID) (*entities.Node, bool) {
	node, ok := f.legacyIndex[id]
	return node, ok
}

// HasNode checks if a node exists in the flow
func (f *Flow) HasNode(id valueobjects.NodeID) bool {
	_, ok := f.nodeIndex[id]
	return ok
}

// AddNode places a new node at the given position referencing a content
// record. If the flow already has nodes, an edge is auto-chained from the
// most recently added node so the default topology stays a playable
// sequence.
func (f *Flow) AddNode(position valueobjects.Position, contentID string) (*entities.Node, error) {
	if len(f.nodes) >= f.config.MaxNodesPerFlow {
		return nil, fmt.Errorf("maximum nodes reached: %d", f.config.MaxNodesPerFlow)
	}

	node, err := entities.NewNode(contentID, position)
	if err != nil {
		return nil, err
	}

	f.nodes = append(f.nodes, node)
	f.nodeIndex[node.ID()] = node
	f.legacyIndex[node.LegacyID()] = node
	f.touch()

	f.addEvent(events.NewNodeAdded(
		f.id.String(), node.ID().String(), node.LegacyID().String(), contentID, f.updatedAt,
	))

	if !f.lastAdded.IsZero() {
		if _, ok := f.nodeIndex[f.lastAdded]; ok {
			f.appendEdge(f.lastAdded, node.ID())
		}
	}
	f.lastAdded = node.ID()

	return node, nil
}

// RemoveNodesByLegacyID removes every node whose legacy id is in the given
// set, cascading removal of every edge with an endpoint in the removed set.
// A set matching no nodes is a silent no-op: nothing is removed, no event
// is raised.
func (f *Flow) RemoveNodesByLegacyID(legacyIDs []valueobjects.LegacyID) []*entities.Node {
	doomed := make(map[valueobjects.NodeID]bool)
	removed := []*entities.Node{}
	for _, legacyID := range legacyIDs {
		if node, ok := f.legacyIndex[legacyID]; ok && !doomed[node.ID()] {
			doomed[node.ID()] = true
			removed = append(removed, node)
		}
	}
	if len(removed) == 0 {
		return nil
	}

	// Cascade: drop every edge touching a removed node
	removedEdgeIDs := []string{}
	keptEdges := f.edges[:0]
	for _, edge := range f.edges {
		if doomed[edge.SourceID] || doomed[edge.TargetID] {
			delete(f.edgeIndex, edge.ID)
			removedEdgeIDs = append(removedEdgeIDs, edge.ID.String())
		} else {
			keptEdges = append(keptEdges, edge)
		}
	}
	f.edges = keptEdges

	keptNodes := f.nodes[:0]
	removedLegacyIDs := []string{}
	for _, node := range f.nodes {
		if doomed[node.ID()] {
			delete(f.nodeIndex, node.ID())
			delete(f.legacyIndex, node.LegacyID())
			removedLegacyIDs = append(removedLegacyIDs, node.LegacyID().String())
		} else {
			keptNodes = append(keptNodes, node)
		}
	}
	f.nodes = keptNodes

	if doomed[f.lastAdded] {
		f.lastAdded = valueobjects.NodeID{}
		if len(f.nodes) > 0 {
			f.lastAdded = f.nodes[len(f.nodes)-1].ID()
		}
	}

	f.touch()
	f.addEvent(events.NewNodesRemoved(f.id.String(), removedLegacyIDs, removedEdgeIDs, f.updatedAt))

	return removed
}

// ConnectNodes creates an edge between two existing nodes. Both endpoints
// must exist; duplicate edges between the same pair are permitted.
func (f *Flow) ConnectNodes(sourceID, targetID valueobjects.NodeID) (*Edge, error) {
	_, sourceExists := f.nodeIndex[sourceID]
	_, targetExists := f.nodeIndex[targetID]
	if !sourceExists || !targetExists {
		return nil, pkgerrors.NewValidation("both nodes must exist in flow")
	}

	if !f.config.AllowSelfConnections && sourceID.Equals(targetID) {
		return nil, pkgerrors.NewValidation("cannot connect node to itself")
	}

	if len(f.edges) >= f.config.MaxEdgesPerFlow {
		return nil, fmt.Errorf("maximum edges reached: %d", f.config.MaxEdgesPerFlow)
	}

	edge := f.appendEdge(sourceID, targetID)
	return edge, nil
}

// RemoveEdge deletes an edge by id
func (f *Flow) RemoveEdge(id valueobjects.EdgeID) error {
	if _, ok := f.edgeIndex[id]; !ok {
		return pkgerrors.NewNotFound("edge")
	}

	delete(f.edgeIndex, id)
	kept := f.edges[:0]
	for _, edge := range f.edges {
		if !edge.ID.Equals(id) {
			kept = append(kept, edge)
		}
	}
	f.edges = kept

	f.touch()
	f.addEvent(events.NewEdgeRemoved(f.id.String(), id.String(), f.updatedAt))

	return nil
}

// MoveNode updates a node's canvas position
func (f *Flow) MoveNode(id valueobjects.NodeID, position valueobjects.Position) error {
	node, ok := f.nodeIndex[id]
	if !ok {
		return pkgerrors.NewNotFound("node")
	}

	node.MoveTo(position)
	f.touch()
	f.addEvent(events.NewNodeMoved(
		f.id.String(), id.String(), position.X(), position.Y(), f.updatedAt,
	))

	return nil
}

// Validate ensures flow invariants: no dangling edges, consistent indexes
func (f *Flow) Validate() error {
	for _, edge := range f.edges {
		if _, ok := f.nodeIndex[edge.SourceID]; !ok {
			return pkgerrors.NewValidation("edge references non-existent source node")
		}
		if _, ok := f.nodeIndex[edge.TargetID]; !ok {
			return pkgerrors.NewValidation("edge references non-existent target node")
		}
	}
	if len(f.nodes) != len(f.nodeIndex) || len(f.nodes) != len(f.legacyIndex) {
		return pkgerrors.NewValidation("node index mismatch")
	}
	if len(f.edges) != len(f.edgeIndex) {
		return pkgerrors.NewValidation("edge index mismatch")
	}
	return nil
}

// GetUncommittedEvents returns all uncommitted domain events
func (f *Flow) GetUncommittedEvents() []events.DomainEvent {
	all := make([]events.DomainEvent, len(f.events))
	copy(all, f.events)
	return all
}

// MarkEventsAsCommitted clears the uncommitted events
func (f *Flow) MarkEventsAsCommitted() {
	f.events = []events.DomainEvent{}
}

// Private helper methods

func (f *Flow) appendEdge(sourceID, targetID valueobjects.NodeID) *Edge {
	edge := &Edge{
		ID:        valueobjects.NewEdgeID(),
		SourceID:  sourceID,
		TargetID:  targetID,
		CreatedAt: time.Now(),
	}
	f.edges = append(f.edges, edge)
	f.edgeIndex[edge.ID] = edge
	f.touch()

	f.addEvent(events.NewEdgeAdded(
		f.id.String(), edge.ID.String(), sourceID.String(), targetID.String(), f.updatedAt,
	))

	return edge
}

func (f *Flow) touch() {
	f.updatedAt = time.Now()
	f.version++
}

func (f *Flow) addEvent(event events.DomainEvent) {
	f.events = append(f.events, event)
}
