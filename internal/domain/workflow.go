package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errors for workflow configuration
var (
	ErrUnknownWorkflow    = errors.New("unknown workflow kind")
	ErrInvalidOrderCount  = errors.New("workflow order count must be at least 1")
	ErrNoSKUsConfigured   = errors.New("workflow has no SKUs with quantity greater than zero")
	ErrInsufficientSKUs   = errors.New("multi item batch requires at least 2 distinct SKUs")
	ErrMissingWorkflowCfg = errors.New("selected workflow has no configuration")
)

// WorkflowKind identifies an order-generation strategy
type WorkflowKind string

const (
	WorkflowStandardReceiving WorkflowKind = "standard_receiving"
	WorkflowBulkShipping      WorkflowKind = "bulk_shipping"
	WorkflowSingleItemBatch   WorkflowKind = "single_item_batch"
	WorkflowMultiItemBatch    WorkflowKind = "multi_item_batch"
	WorkflowPackToLight       WorkflowKind = "pack_to_light"
)

// CanonicalWorkflowOrder is the fixed execution order during finalization.
// Receiving runs first so inventory exists before fulfillment orders reference it.
var CanonicalWorkflowOrder = []WorkflowKind{
	WorkflowStandardReceiving,
	WorkflowBulkShipping,
	WorkflowSingleItemBatch,
	WorkflowMultiItemBatch,
	WorkflowPackToLight,
}

// IsValid checks if the workflow kind is known
func (w WorkflowKind) IsValid() bool {
	switch w {
	case WorkflowStandardReceiving, WorkflowBulkShipping, WorkflowSingleItemBatch,
		WorkflowMultiItemBatch, WorkflowPackToLight:
		return true
	default:
		return false
	}
}

// Prefix returns the short code used in generated order numbers
func (w WorkflowKind) Prefix() string {
	switch w {
	case WorkflowStandardReceiving:
		return "RCV"
	case WorkflowBulkShipping:
		return "BULK"
	case WorkflowSingleItemBatch:
		return "SIB"
	case WorkflowMultiItemBatch:
		return "MIB"
	case WorkflowPackToLight:
		return "PTL"
	default:
		return ""
	}
}

// Tag returns the order tag for this workflow, e.g. "workflow-bulk"
func (w WorkflowKind) Tag() string {
	prefix := w.Prefix()
	if prefix == "" {
		return ""
	}
	return "workflow-" + strings.ToLower(prefix)
}

// IsFulfillment reports whether the workflow generates sales orders and
// therefore consumes recipients. Receiving generates a single purchase order.
func (w WorkflowKind) IsFulfillment() bool {
	return w.IsValid() && w != WorkflowStandardReceiving
}

// WorkflowConfig holds the per-workflow generation parameters. The Kind field
// discriminates which rules apply; Validate enforces them before any
// recipient or SKU work starts.
type WorkflowConfig struct {
	Kind          WorkflowKind   `bson:"kind" json:"kind"`
	OrderCount    int            `bson:"orderCount" json:"orderCount"`
	SKUQuantities map[string]int `bson:"skuQuantities" json:"skuQuantities"`
}

// ActiveSKUCount returns the number of SKUs with quantity > 0
func (c WorkflowConfig) ActiveSKUCount() int {
	count := 0
	for _, qty := range c.SKUQuantities {
		if qty > 0 {
			count++
		}
	}
	return count
}

// Validate checks the configuration against its workflow kind's rules
func (c WorkflowConfig) Validate() error {
	if !c.Kind.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownWorkflow, c.Kind)
	}

	if c.ActiveSKUCount() == 0 {
		return fmt.Errorf("%s: %w", c.Kind, ErrNoSKUsConfigured)
	}

	if c.Kind.IsFulfillment() && c.OrderCount < 1 {
		return fmt.Errorf("%s: %w", c.Kind, ErrInvalidOrderCount)
	}

	if c.Kind == WorkflowMultiItemBatch && c.ActiveSKUCount() < 2 {
		return fmt.Errorf("%s: %w", c.Kind, ErrInsufficientSKUs)
	}

	return nil
}
