package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructorsCarryStatusAndCode(t *testing.T) {
	cases := []struct {
		err    *AppError
		status int
		code   string
	}{
		{NewValidationError("bad input"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{NewNotFoundError("expense"), http.StatusNotFound, "NOT_FOUND"},
		{NewConflictError("duplicate"), http.StatusConflict, "CONFLICT"},
		{NewUnauthorizedError("nope"), http.StatusUnauthorized, "UNAUTHORIZED"},
		{NewForbiddenError("not yours"), http.StatusForbidden, "FORBIDDEN"},
		{NewInternalError("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
		{NewUnavailableError("notifications"), http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.status, tc.err.HTTPStatus, tc.code)
		assert.Equal(t, tc.code, tc.err.Code)
	}
}

func TestWithCodeOverridesDefault(t *testing.T) {
	err := NewValidationError("no update data provided").WithCode("NO_DATA")

	assert.Equal(t, "NO_DATA", err.Code)
	assert.True(t, IsValidation(err))
}

func TestGetAppErrorUnwrapsThroughFmtErrorf(t *testing.T) {
	inner := NewNotFoundError("user")
	wrapped := fmt.Errorf("looking up profile: %w", inner)

	appErr := GetAppError(wrapped)
	assert.NotNil(t, appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
	assert.True(t, IsNotFound(wrapped))
}

func TestGetAppErrorOnPlainError(t *testing.T) {
	assert.Nil(t, GetAppError(errors.New("plain")))
	assert.False(t, IsNotFound(errors.New("plain")))
}

func TestUnwrapExposesCause(t *testing.T) {
	cause := errors.New("conditional check failed")
	err := NewDatabaseError("update expense", cause)

	assert.ErrorIs(t, err, cause)
}
