package valueobjects

import (
	"math"

	pkgerrors "flowcanvas/pkg/errors"
)

// Position is a value object representing node coordinates on the canvas
type Position struct {
	x float64
	y float64
}

// NewPosition creates a position with validation
func NewPosition(x, y float64) (Position, error) {
	if !isValidCoordinate(x) || !isValidCoordinate(y) {
		return Position{}, pkgerrors.NewValidation("invalid coordinates: must be finite numbers")
	}
	return Position{x: x, y: y}, nil
}

// X returns the X coordinate
func (p Position) X() float64 {
	return p.x
}

// Y returns the Y coordinate
func (p Position) Y() float64 {
	return p.y
}

// Equals checks if two positions are equal
func (p Position) Equals(other Position) bool {
	const epsilon = 1e-9
	return math.Abs(p.x-other.x) < epsilon &&
		math.Abs(p.y-other.y) < epsilon
}

// Translate moves the position by the given offsets
func (p Position) Translate(dx, dy float64) (Position, error) {
	return NewPosition(p.x+dx, p.y+dy)
}

// DeltaTo returns the offsets that move this position onto other
func (p Position) DeltaTo(other Position) (dx, dy float64) {
	return other.x - p.x, other.y - p.y
}

// isValidCoordinate checks if a coordinate is a valid finite number
func isValidCoordinate(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
