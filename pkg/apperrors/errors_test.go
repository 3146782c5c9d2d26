package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsAppError(t *testing.T) {
	t.Run("Direct", func(t *testing.T) {
		err := NewConflictError(CodeAdminExists, "an admin account already exists")

		appErr, ok := AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, ErrorTypeConflict, appErr.Type)
		assert.Equal(t, CodeAdminExists, appErr.Code)
	})

	t.Run("Wrapped", func(t *testing.T) {
		err := fmt.Errorf("handler: %w", NewValidationError("rating must be between 1 and 5"))

		appErr, ok := AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, ErrorTypeValidation, appErr.Type)
	})

	t.Run("Plain Error", func(t *testing.T) {
		appErr, ok := AsAppError(errors.New("boom"))
		assert.False(t, ok)
		assert.Nil(t, appErr)
	})
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewInternalError("failed to create booking", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "failed to create booking")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestIsType(t *testing.T) {
	err := NewNotFoundError(CodeBookingNotFound, "booking not found")

	assert.True(t, IsType(err, ErrorTypeNotFound))
	assert.False(t, IsType(err, ErrorTypeConflict))
	assert.False(t, IsType(errors.New("boom"), ErrorTypeInternal))
}
