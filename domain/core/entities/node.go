package entities

import (
	"time"

	"flowcanvas/domain/core/valueobjects"
	pkgerrors "flowcanvas/pkg/errors"
)

// Node is a placed unit in the flow graph. It is a lightweight reference:
// the editable payload lives in a ContentRecord looked up by contentID, and
// the preview surfaces address the node through its legacy ID.
type Node struct {
	id           valueobjects.NodeID
	legacyID     valueobjects.LegacyID
	contentID    string
	position     valueobjects.Position
	showDropdown bool
	createdAt    time.Time
	updatedAt    time.Time
}

// NewNode creates a new node at the given position referencing a content record
func NewNode(contentID string, position valueobjects.Position) (*Node, error) {
	if contentID == "" {
		return nil, pkgerrors.NewValidation("contentID cannot be empty")
	}

	now := time.Now()
	return &Node{
		id:        valueobjects.NewNodeID(),
		legacyID:  valueobjects.NewLegacyID(),
		contentID: contentID,
		position:  position,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructNode recreates a node from stored data with preserved identity
func ReconstructNode(
	id valueobjects.NodeID,
	legacyID valueobjects.LegacyID,
	contentID string,
	position valueobjects.Position,
	createdAt, updatedAt time.Time,
) (*Node, error) {
	if id.IsZero() || legacyID.IsZero() {
		return nil, pkgerrors.NewValidation("node identity missing for reconstruction")
	}
	if contentID == "" {
		return nil, pkgerrors.NewValidation("contentID cannot be empty")
	}

	return &Node{
		id:        id,
		legacyID:  legacyID,
		contentID: contentID,
		position:  position,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

// ID returns the node's internal identifier
func (n *Node) ID() valueobjects.NodeID {
	return n.id
}

// LegacyID returns the external handle used by the preview surfaces
func (n *Node) LegacyID() valueobjects.LegacyID {
	return n.legacyID
}

// ContentID returns the id of the referenced content record
func (n *Node) ContentID() string {
	return n.contentID
}

// Position returns the node's canvas position
func (n *Node) Position() valueobjects.Position {
	return n.position
}

// ShowDropdown returns the preview display hint
func (n *Node) ShowDropdown() bool {
	return n.showDropdown
}

// CreatedAt returns when the node was placed
func (n *Node) CreatedAt() time.Time {
	return n.createdAt
}

// UpdatedAt returns when the node last changed
func (n *Node) UpdatedAt() time.Time {
	return n.updatedAt
}

// MoveTo moves the node to a new position
func (n *Node) MoveTo(position valueobjects.Position) {
	if position.Equals(n.position) {
		return
	}
	n.position = position
	n.updatedAt = time.Now()
}

// SetShowDropdown patches the preview display hint
func (n *Node) SetShowDropdown(show bool) {
	if n.showDropdown == show {
		return
	}
	n.showDropdown = show
	n.updatedAt = time.Now()
}
