package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	assert.Equal(t, "VALIDATION: bad level", NewValidationError("bad level").Error())

	wrapped := NewInternalError("insert failed", fmt.Errorf("disk full"))
	assert.Equal(t, "INTERNAL: insert failed: disk full", wrapped.Error())
}

func TestTypeOf(t *testing.T) {
	assert.Equal(t, ErrorTypeForbidden, TypeOf(NewForbiddenError("nope")))
	assert.Equal(t, ErrorTypeUnavailable, TypeOf(fmt.Errorf("login: %w", NewUnavailableError("no verifier"))))
	assert.Equal(t, ErrorTypeInternal, TypeOf(fmt.Errorf("plain")))
}

func TestIs(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewUnauthorizedError("no session"))
	assert.True(t, Is(err, ErrorTypeUnauthorized))
	assert.False(t, Is(err, ErrorTypeForbidden))
}
