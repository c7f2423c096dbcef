package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Name   string  `validate:"required,notblank,min=2,max=10"`
	Email  string  `validate:"omitempty,email"`
	Amount float64 `validate:"gt=0"`
	Kind   string  `validate:"oneof=EQUAL PERCENTAGE EXACT"`
}

func valid() sampleRequest {
	return sampleRequest{Name: "Alice", Amount: 10, Kind: "EQUAL"}
}

func TestValidateStruct(t *testing.T) {
	req := valid()
	assert.NoError(t, Validate.Struct(&req))
}

func TestMessage(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*sampleRequest)
		message string
	}{
		{
			name:    "required",
			mutate:  func(r *sampleRequest) { r.Name = "" },
			message: "Name is required",
		},
		{
			name:    "notblank",
			mutate:  func(r *sampleRequest) { r.Name = "   " },
			message: "Name cannot be blank",
		},
		{
			name:    "min",
			mutate:  func(r *sampleRequest) { r.Name = "A" },
			message: "Name must be at least 2 characters",
		},
		{
			name:    "max",
			mutate:  func(r *sampleRequest) { r.Name = "averylongname" },
			message: "Name must be at most 10 characters",
		},
		{
			name:    "email",
			mutate:  func(r *sampleRequest) { r.Email = "not-an-email" },
			message: "Email must be a valid email address",
		},
		{
			name:    "gt",
			mutate:  func(r *sampleRequest) { r.Amount = 0 },
			message: "Amount must be greater than 0",
		},
		{
			name:    "oneof",
			mutate:  func(r *sampleRequest) { r.Kind = "RANDOM" },
			message: "Kind must be one of: EQUAL PERCENTAGE EXACT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(&req)

			err := Validate.Struct(&req)
			require.Error(t, err)
			assert.Equal(t, tt.message, Message(err))
		})
	}
}

func TestMessageNonValidationError(t *testing.T) {
	assert.Equal(t, "Invalid request body", Message(assert.AnError))
}
