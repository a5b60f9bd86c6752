package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type validatedPayload struct {
	SKU      string `json:"sku" validate:"required,sku"`
	Workflow string `json:"workflow" validate:"required,workflow"`
	Name     string `json:"name" validate:"omitempty,safe_string"`
}

func TestValidateStructCustomValidators(t *testing.T) {
	tests := []struct {
		name    string
		payload validatedPayload
		wantErr string
	}{
		{
			name:    "valid payload",
			payload: validatedPayload{SKU: "MUG-01", Workflow: "bulk_shipping", Name: "Ada Lovelace"},
		},
		{
			name:    "malformed sku",
			payload: validatedPayload{SKU: "!bad sku!", Workflow: "bulk_shipping"},
			wantErr: "sku",
		},
		{
			name:    "unknown workflow",
			payload: validatedPayload{SKU: "MUG-01", Workflow: "teleportation"},
			wantErr: "workflow",
		},
		{
			name:    "control characters rejected",
			payload: validatedPayload{SKU: "MUG-01", Workflow: "bulk_shipping", Name: "Ada\x00Lovelace"},
			wantErr: "name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := ValidateStruct(tt.payload)
			if tt.wantErr == "" {
				assert.Nil(t, appErr)
				return
			}
			require.NotNil(t, appErr)
			assert.Contains(t, appErr.Details, tt.wantErr)
		})
	}
}

func TestValidationErrorMessages(t *testing.T) {
	appErr := ValidateStruct(validatedPayload{SKU: "MUG-01", Workflow: "nope"})
	require.NotNil(t, appErr)
	assert.Contains(t, appErr.Details["workflow"], "must be one of")
}
