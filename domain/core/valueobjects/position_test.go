package valueobjects

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPosition(t *testing.T) {
	tests := []struct {
		name    string
		x, y    float64
		wantErr bool
	}{
		{name: "origin", x: 0, y: 0},
		{name: "negative coordinates", x: -120.5, y: -44},
		{name: "NaN x", x: math.NaN(), y: 0, wantErr: true},
		{name: "infinite y", x: 0, y: math.Inf(1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, err := NewPosition(tt.x, tt.y)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.x, pos.X())
			assert.Equal(t, tt.y, pos.Y())
		})
	}
}

func TestPosition_Translate(t *testing.T) {
	pos, err := NewPosition(10, 20)
	require.NoError(t, err)

	moved, err := pos.Translate(5, -8)
	require.NoError(t, err)

	assert.Equal(t, 15.0, moved.X())
	assert.Equal(t, 12.0, moved.Y())
	// The original is unchanged
	assert.Equal(t, 10.0, pos.X())
}

func TestPosition_DeltaTo(t *testing.T) {
	from, err := NewPosition(100, 50)
	require.NoError(t, err)
	to, err := NewPosition(130, 20)
	require.NoError(t, err)

	dx, dy := from.DeltaTo(to)

	assert.Equal(t, 30.0, dx)
	assert.Equal(t, -30.0, dy)
}

func TestPosition_Equals(t *testing.T) {
	a, err := NewPosition(1, 2)
	require.NoError(t, err)
	b, err := NewPosition(1, 2)
	require.NoError(t, err)
	c, err := NewPosition(1, 2.5)
	require.NoError(t, err)

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
}
