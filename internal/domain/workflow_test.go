package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWorkflowKindPrefixAndTag(t *testing.T) {
	tests := []struct {
		kind   WorkflowKind
		prefix string
		tag    string
	}{
		{WorkflowStandardReceiving, "RCV", "workflow-rcv"},
		{WorkflowBulkShipping, "BULK", "workflow-bulk"},
		{WorkflowSingleItemBatch, "SIB", "workflow-sib"},
		{WorkflowMultiItemBatch, "MIB", "workflow-mib"},
		{WorkflowPackToLight, "PTL", "workflow-ptl"},
		{WorkflowKind("bogus"), "", ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.prefix, tt.kind.Prefix())
			assert.Equal(t, tt.tag, tt.kind.Tag())
		})
	}
}

func TestWorkflowKindIsFulfillment(t *testing.T) {
	assert.False(t, WorkflowStandardReceiving.IsFulfillment())
	assert.True(t, WorkflowBulkShipping.IsFulfillment())
	assert.True(t, WorkflowSingleItemBatch.IsFulfillment())
	assert.True(t, WorkflowMultiItemBatch.IsFulfillment())
	assert.True(t, WorkflowPackToLight.IsFulfillment())
	assert.False(t, WorkflowKind("bogus").IsFulfillment())
}

func TestWorkflowConfigValidate(t *testing.T) {
	tests := []struct {
		name        string
		config      WorkflowConfig
		expectError error
	}{
		{
			name: "valid bulk shipping",
			config: WorkflowConfig{
				Kind:          WorkflowBulkShipping,
				OrderCount:    5,
				SKUQuantities: map[string]int{"WIDGET-1": 1},
			},
		},
		{
			name: "valid receiving without order count",
			config: WorkflowConfig{
				Kind:          WorkflowStandardReceiving,
				SKUQuantities: map[string]int{"SKU-A": 5, "SKU-B": 0, "SKU-C": 3},
			},
		},
		{
			name: "unknown kind",
			config: WorkflowConfig{
				Kind:          WorkflowKind("bogus"),
				SKUQuantities: map[string]int{"SKU-A": 1},
			},
			expectError: ErrUnknownWorkflow,
		},
		{
			name: "zero order count on fulfillment workflow",
			config: WorkflowConfig{
				Kind:          WorkflowSingleItemBatch,
				OrderCount:    0,
				SKUQuantities: map[string]int{"SKU-A": 1},
			},
			expectError: ErrInvalidOrderCount,
		},
		{
			name: "all quantities zero",
			config: WorkflowConfig{
				Kind:          WorkflowPackToLight,
				OrderCount:    2,
				SKUQuantities: map[string]int{"SKU-A": 0, "SKU-B": 0},
			},
			expectError: ErrNoSKUsConfigured,
		},
		{
			name: "multi item batch with one active SKU",
			config: WorkflowConfig{
				Kind:          WorkflowMultiItemBatch,
				OrderCount:    3,
				SKUQuantities: map[string]int{"SKU-A": 1, "SKU-B": 0},
			},
			expectError: ErrInsufficientSKUs,
		},
		{
			name: "multi item batch with two active SKUs",
			config: WorkflowConfig{
				Kind:          WorkflowMultiItemBatch,
				OrderCount:    3,
				SKUQuantities: map[string]int{"SKU-A": 1, "SKU-B": 2},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.expectError != nil {
				assert.ErrorIs(t, err, tt.expectError)
				return
			}
			assert.NoError(t, err)
		})
	}
}
