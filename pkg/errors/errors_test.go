package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorTypeChecks(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{name: "validation", err: NewValidation("bad input"), check: IsValidation},
		{name: "not found", err: NewNotFound("thing"), check: IsNotFound},
		{name: "conflict", err: NewConflict("already exists"), check: IsConflict},
		{name: "internal", err: NewInternal("boom", errors.New("cause")), check: IsInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.check(tt.err))
			assert.False(t, tt.check(errors.New("plain")))
			assert.False(t, tt.check(nil))
		})
	}
}

func TestAppError_Error(t *testing.T) {
	assert.Equal(t, "VALIDATION: bad input", NewValidation("bad input").Error())

	withCause := NewInternal("save failed", errors.New("disk full"))
	assert.Equal(t, "INTERNAL: save failed: disk full", withCause.Error())
}

func TestWrap_PreservesType(t *testing.T) {
	wrapped := Wrap(NewNotFound("node"), "loading flow")

	assert.True(t, IsNotFound(wrapped))
	assert.Contains(t, wrapped.Error(), "loading flow")
	assert.Contains(t, wrapped.Error(), "node")
}

func TestWrap_PlainErrorBecomesInternal(t *testing.T) {
	wrapped := Wrap(errors.New("disk full"), "saving")

	assert.True(t, IsInternal(wrapped))
	assert.True(t, errors.Is(wrapped, wrapped.(*AppError).Err))
}

func TestWrap_Nil(t *testing.T) {
	assert.Nil(t, Wrap(nil, "context"))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("cause")
	err := NewInternal("wrapper", cause)

	assert.True(t, errors.Is(err, cause))
}
