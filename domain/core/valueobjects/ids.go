package valueobjects

import (
	pkgerrors "flowcanvas/pkg/errors"
	"github.com/google/uuid"
)

// NodeID is a value object wrapping the internal node identifier
type NodeID struct {
	value string
}

// NewNodeID creates a new random NodeID
func NewNodeID() NodeID {
	return NodeID{value: uuid.New().String()}
}

// NewNodeIDFromString creates a NodeID from an existing string with validation
func NewNodeIDFromString(s string) (NodeID, error) {
	if s == "" {
		return NodeID{}, pkgerrors.NewValidation("node ID cannot be empty")
	}
	if _, err := uuid.Parse(s); err != nil {
		return NodeID{}, pkgerrors.NewValidation("node ID must be a valid UUID")
	}
	return NodeID{value: s}, nil
}

// String returns the string representation
func (id NodeID) String() string {
	return id.value
}

// IsZero checks if this is an uninitialized ID
func (id NodeID) IsZero() bool {
	return id.value == ""
}

// Equals checks if two NodeIDs are equal
func (id NodeID) Equals(other NodeID) bool {
	return id.value == other.value
}

// EdgeID is a value object wrapping the edge identifier
type EdgeID struct {
	value string
}

// NewEdgeID creates a new random EdgeID
func NewEdgeID() EdgeID {
	return EdgeID{value: uuid.New().String()}
}

// NewEdgeIDFromString creates an EdgeID from an existing string with validation
func NewEdgeIDFromString(s string) (EdgeID, error) {
	if s == "" {
		return EdgeID{}, pkgerrors.NewValidation("edge ID cannot be empty")
	}
	if _, err := uuid.Parse(s); err != nil {
		return EdgeID{}, pkgerrors.NewValidation("edge ID must be a valid UUID")
	}
	return EdgeID{value: s}, nil
}

// String returns the string representation
func (id EdgeID) String() string {
	return id.value
}

// IsZero checks if this is an uninitialized ID
func (id EdgeID) IsZero() bool {
	return id.value == ""
}

// Equals checks if two EdgeIDs are equal
func (id EdgeID) Equals(other EdgeID) bool {
	return id.value == other.value
}

// LegacyID is the externally visible node handle shared with the preview and
// editor surfaces. It is opaque: the core generates fresh ones but never
// interprets their structure.
type LegacyID string

// NewLegacyID creates a new random LegacyID
func NewLegacyID() LegacyID {
	return LegacyID(uuid.New().String())
}

// String returns the string representation
func (id LegacyID) String() string {
	return string(id)
}

// IsZero checks if this is an uninitialized ID
func (id LegacyID) IsZero() bool {
	return id == ""
}
