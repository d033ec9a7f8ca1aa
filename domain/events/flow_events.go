package events

import "time"

// Event types raised by the flow aggregate
const (
	TypeNodeAdded    = "flow.node_added"
	TypeNodesRemoved = "flow.nodes_removed"
	TypeNodeMoved    = "flow.node_moved"
	TypeEdgeAdded    = "flow.edge_added"
	TypeEdgeRemoved  = "flow.edge_removed"
)

// NodeAdded is raised when a node is placed on the canvas
type NodeAdded struct {
	BaseEvent
	NodeID    string `json:"nodeId"`
	LegacyID  string `json:"legacyId"`
	ContentID string `json:"contentId"`
}

// NewNodeAdded creates a NodeAdded event
func NewNodeAdded(flowID, nodeID, legacyID, contentID string, at time.Time) NodeAdded {
	return NodeAdded{
		BaseEvent: BaseEvent{
			AggregateID: flowID,
			EventType:   TypeNodeAdded,
			Timestamp:   at,
			Version:     1,
		},
		NodeID:    nodeID,
		LegacyID:  legacyID,
		ContentID: contentID,
	}
}

// NodesRemoved is raised when one or more nodes (and their edges) are removed
type NodesRemoved struct {
	BaseEvent
	LegacyIDs      []string `json:"legacyIds"`
	RemovedEdgeIDs []string `json:"removedEdgeIds"`
}

// NewNodesRemoved creates a NodesRemoved event
func NewNodesRemoved(flowID string, legacyIDs, removedEdgeIDs []string, at time.Time) NodesRemoved {
	return NodesRemoved{
		BaseEvent: BaseEvent{
			AggregateID: flowID,
			EventType:   TypeNodesRemoved,
			Timestamp:   at,
			Version:     1,
		},
		LegacyIDs:      legacyIDs,
		RemovedEdgeIDs: removedEdgeIDs,
	}
}

// NodeMoved is raised when a node's canvas position changes
type NodeMoved struct {
	BaseEvent
	NodeID string  `json:"nodeId"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// NewNodeMoved creates a NodeMoved event
func NewNodeMoved(flowID, nodeID string, x, y float64, at time.Time) NodeMoved {
	return NodeMoved{
		BaseEvent: BaseEvent{
			AggregateID: flowID,
			EventType:   TypeNodeMoved,
			Timestamp:   at,
			Version:     1,
		},
		NodeID: nodeID,
		X:      x,
		Y:      y,
	}
}

// EdgeAdded is raised when two nodes are connected
type EdgeAdded struct {
	BaseEvent
	EdgeID   string `json:"edgeId"`
	SourceID string `json:"sourceId"`
	TargetID string `json:"targetId"`
}

// NewEdgeAdded creates an EdgeAdded event
func NewEdgeAdded(flowID, edgeID, sourceID, targetID string, at time.Time) EdgeAdded {
	return EdgeAdded{
		BaseEvent: BaseEvent{
			AggregateID: flowID,
			EventType:   TypeEdgeAdded,
			Timestamp:   at,
			Version:     1,
		},
		EdgeID:   edgeID,
		SourceID: sourceID,
		TargetID: targetID,
	}
}

// EdgeRemoved is raised when an edge is deleted
type EdgeRemoved struct {
	BaseEvent
	EdgeID string `json:"edgeId"`
}

// NewEdgeRemoved creates an EdgeRemoved event
func NewEdgeRemoved(flowID, edgeID string, at time.Time) EdgeRemoved {
	return EdgeRemoved{
		BaseEvent: BaseEvent{
			AggregateID: flowID,
			EventType:   TypeEdgeRemoved,
			Timestamp:   at,
			Version:     1,
		},
		EdgeID: edgeID,
	}
}
