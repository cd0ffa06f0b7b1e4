package utils

import (
	"testing"

	apperrors "fintrack-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
)

type sampleRequest struct {
	Email  string  `validate:"required,email"`
	Name   string  `validate:"required,min=1,max=100"`
	Amount float64 `validate:"required,gt=0"`
}

func TestValidateStruct_Valid(t *testing.T) {
	err := ValidateStruct(sampleRequest{
		Email:  "a@example.com",
		Name:   "Ada",
		Amount: 12.5,
	})

	assert.NoError(t, err)
}

func TestValidateStruct_ReturnsValidationError(t *testing.T) {
	err := ValidateStruct(sampleRequest{Email: "not-an-email", Amount: -1})

	assert.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Contains(t, err.Error(), "email must be a valid email")
	assert.Contains(t, err.Error(), "name is required")
}
