package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromErrorKeepsTypedErrors(t *testing.T) {
	wrapped := fmt.Errorf("load course: %w", Clone(ErrNotFound, "course not found"))

	appErr := FromError(wrapped)

	assert.Equal(t, ErrNotFound.Code, appErr.Code)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
	assert.Equal(t, "course not found", appErr.Message)
}

func TestFromErrorWrapsUnknownAsInternal(t *testing.T) {
	appErr := FromError(fmt.Errorf("boom"))

	assert.Equal(t, ErrInternal.Code, appErr.Code)
	assert.Equal(t, http.StatusInternalServerError, appErr.Status)
	assert.EqualError(t, appErr, "internal server error: boom")
}

func TestCloneDoesNotMutateSentinel(t *testing.T) {
	clone := Clone(ErrValidation, "grade must be between 0 and 100")

	assert.Equal(t, "validation failed", ErrValidation.Message)
	assert.Equal(t, "grade must be between 0 and 100", clone.Message)
	assert.True(t, HasCode(clone, ErrValidation.Code))
	assert.False(t, HasCode(fmt.Errorf("plain"), ErrValidation.Code))
}
