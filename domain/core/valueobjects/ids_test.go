package valueobjects

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNodeID(t *testing.T) {
	id := NewNodeID()

	assert.False(t, id.IsZero())
	_, err := uuid.Parse(id.String())
	assert.NoError(t, err, "generated node IDs should be valid UUIDs")
}

func TestNewNodeIDFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{
			name:  "valid UUID",
			input: "550e8400-e29b-41d4-a716-446655440000",
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: "node ID cannot be empty",
		},
		{
			name:    "not a UUID",
			input:   "not-a-uuid",
			wantErr: "node ID must be a valid UUID",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := NewNodeIDFromString(tt.input)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, id.String())
		})
	}
}

func TestNodeID_Equals(t *testing.T) {
	a := NewNodeID()
	b := NewNodeID()

	same, err := NewNodeIDFromString(a.String())
	require.NoError(t, err)

	assert.True(t, a.Equals(same))
	assert.False(t, a.Equals(b))
}

func TestNodeID_IsZero(t *testing.T) {
	var zero NodeID

	assert.True(t, zero.IsZero())
	assert.False(t, NewNodeID().IsZero())
}

func TestNewLegacyID(t *testing.T) {
	a := NewLegacyID()
	b := NewLegacyID()

	assert.NotEmpty(t, a.String())
	assert.NotEqual(t, a, b)
}
