package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sampleRequest struct {
	CourseID string `validate:"required"`
	Email    string `validate:"omitempty,email"`
}

func TestValidateStruct(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.Nil(t, ValidateStruct(sampleRequest{CourseID: "c1"}))
	})

	t.Run("invalid fields are reported in order", func(t *testing.T) {
		errs := ValidateStruct(sampleRequest{Email: "not-an-email"})

		assert.Equal(t, "This field is required", errs["sampleRequest.CourseID"])
		assert.Equal(t, "Invalid email format", errs["sampleRequest.Email"])
		assert.Equal(t,
			"sampleRequest.CourseID: This field is required; sampleRequest.Email: Invalid email format",
			FormatValidationErrors(errs))
	})
}
