package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError_Message(t *testing.T) {
	assert.Equal(t, "invalid id: square must have a non-empty id", MissingID("square").Error())
	assert.Equal(t, "plain", (&ValidationError{Message: "plain"}).Error())
}

func TestInternal_WrapsCause(t *testing.T) {
	err := Internal("create square", fs.ErrPermission)

	require.Error(t, err)
	assert.True(t, IsInternal(err))
	assert.False(t, IsValidationError(err))
	assert.ErrorIs(t, err, fs.ErrPermission)
	assert.Contains(t, err.Error(), "create square failed")

	var internal *InternalError
	require.ErrorAs(t, err, &internal)
	assert.Equal(t, "create square", internal.Op)
}

func TestInternal_PreservesValidation(t *testing.T) {
	original := InvalidField("color", "not in palette")
	wrapped := Internal("create square", original)

	assert.Same(t, original, wrapped)
	assert.Equal(t, KindValidation, KindOf(wrapped))
}

func TestInternal_NilIsNil(t *testing.T) {
	assert.NoError(t, Internal("noop", nil))
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, ""},
		{"validation", NegativeIndex(-1), KindValidation},
		{"wrapped validation", fmt.Errorf("append: %w", MissingID("square")), KindValidation},
		{"internal", Internal("clear squares", errors.New("disk full")), KindInternal},
		{"unknown", errors.New("boom"), KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}
