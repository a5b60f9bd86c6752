package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test fixtures
func createTestTour(t *testing.T) *Tour {
	t.Helper()
	tour, err := NewTour("tour-123", 42, time.Now().Add(48*time.Hour), "wh-1", "host-1")
	require.NoError(t, err)
	return tour
}

func bulkConfig(orders int) WorkflowConfig {
	return WorkflowConfig{
		Kind:          WorkflowBulkShipping,
		OrderCount:    orders,
		SKUQuantities: map[string]int{"WIDGET-1": 1},
	}
}

func TestNewTour(t *testing.T) {
	tests := []struct {
		name        string
		warehouseID string
		hostID      string
		expectError error
	}{
		{
			name:        "valid tour",
			warehouseID: "wh-1",
			hostID:      "host-1",
			expectError: nil,
		},
		{
			name:        "missing warehouse",
			warehouseID: "",
			hostID:      "host-1",
			expectError: ErrNoWarehouse,
		},
		{
			name:        "missing host",
			warehouseID: "wh-1",
			hostID:      "",
			expectError: ErrNoHost,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tour, err := NewTour("tour-1", 1, time.Now(), tt.warehouseID, tt.hostID)

			if tt.expectError != nil {
				assert.ErrorIs(t, err, tt.expectError)
				assert.Nil(t, tour)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, StatusDraft, tour.Status)
			assert.Empty(t, tour.SelectedWorkflows)
		})
	}
}

func TestTourSchedule(t *testing.T) {
	tour := createTestTour(t)

	require.NoError(t, tour.Schedule())
	assert.Equal(t, StatusScheduled, tour.Status)

	// Idempotent
	require.NoError(t, tour.Schedule())

	events := tour.DomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, "touring.tour.scheduled", events[0].EventType())
}

func TestTourConfigureWorkflow(t *testing.T) {
	tour := createTestTour(t)
	require.NoError(t, tour.Schedule())

	require.NoError(t, tour.ConfigureWorkflow(bulkConfig(5)))
	assert.Equal(t, []WorkflowKind{WorkflowBulkShipping}, tour.SelectedWorkflows)

	// Reconfiguring replaces, does not duplicate
	require.NoError(t, tour.ConfigureWorkflow(bulkConfig(3)))
	assert.Len(t, tour.SelectedWorkflows, 1)
	assert.Equal(t, 3, tour.WorkflowConfigs[WorkflowBulkShipping].OrderCount)

	// Invalid config rejected
	err := tour.ConfigureWorkflow(WorkflowConfig{Kind: WorkflowBulkShipping, OrderCount: 0, SKUQuantities: map[string]int{"A": 1}})
	assert.ErrorIs(t, err, ErrInvalidOrderCount)
}

func TestTourValidate(t *testing.T) {
	tour := createTestTour(t)
	require.NoError(t, tour.Schedule())

	// No workflows selected
	assert.ErrorIs(t, tour.Validate(), ErrNoWorkflowsSelected)

	require.NoError(t, tour.ConfigureWorkflow(bulkConfig(2)))
	require.NoError(t, tour.Validate())
	assert.Equal(t, StatusValidated, tour.Status)

	// Idempotent
	require.NoError(t, tour.Validate())
}

func TestTourFinalizationLifecycle(t *testing.T) {
	tour := createTestTour(t)
	require.NoError(t, tour.Schedule())
	require.NoError(t, tour.ConfigureWorkflow(bulkConfig(2)))
	require.NoError(t, tour.Validate())

	require.NoError(t, tour.BeginFinalization())
	assert.Equal(t, StatusFinalizing, tour.Status)

	// Second begin is rejected
	assert.ErrorIs(t, tour.BeginFinalization(), ErrFinalizationInProgress)

	// Cancel while finalizing is rejected
	assert.ErrorIs(t, tour.Cancel("changed plans"), ErrFinalizationInProgress)

	summary := &OrderSummary{
		SalesOrders: []OrderRecord{{Type: OrderTypeSales, Workflow: WorkflowBulkShipping, OrderNumber: "BULK-42-001"}},
		GeneratedAt: time.Now().UTC(),
	}
	require.NoError(t, tour.CompleteFinalization(summary))
	assert.Equal(t, StatusFinalized, tour.Status)
	assert.Equal(t, summary, tour.OrderSummary)

	// Re-finalizing a finalized tour is rejected
	assert.ErrorIs(t, tour.BeginFinalization(), ErrTourAlreadyFinalized)
}

func TestTourFinalizedEvenWithErrorsOnly(t *testing.T) {
	tour := createTestTour(t)
	require.NoError(t, tour.Schedule())
	require.NoError(t, tour.ConfigureWorkflow(bulkConfig(2)))
	require.NoError(t, tour.BeginFinalization())

	summary := &OrderSummary{
		Errors:      []string{"bulk_shipping: connection refused"},
		GeneratedAt: time.Now().UTC(),
	}
	require.NoError(t, tour.CompleteFinalization(summary))

	assert.Equal(t, StatusFinalized, tour.Status)
	assert.Empty(t, tour.OrderSummary.SalesOrders)
	assert.Len(t, tour.OrderSummary.Errors, 1)
}

func TestTourCancel(t *testing.T) {
	tour := createTestTour(t)
	require.NoError(t, tour.Schedule())

	require.NoError(t, tour.Cancel("weather"))
	assert.Equal(t, StatusCanceled, tour.Status)

	// Idempotent
	require.NoError(t, tour.Cancel("weather"))

	// Scheduling a canceled tour fails
	assert.ErrorIs(t, tour.Schedule(), ErrTourAlreadyCanceled)
}

func TestTourMarkOrdersCanceled(t *testing.T) {
	tour := createTestTour(t)

	tour.MarkOrdersCanceled([]string{"BULK-42-001", "BULK-42-002"})
	tour.MarkOrdersCanceled([]string{"BULK-42-002", "SIB-42-001"})

	assert.Equal(t, []string{"BULK-42-001", "BULK-42-002", "SIB-42-001"}, tour.CanceledOrderNumbers)
	assert.True(t, tour.IsOrderCanceled("SIB-42-001"))
	assert.False(t, tour.IsOrderCanceled("SIB-42-002"))
}

func TestTourTotalFulfillmentOrders(t *testing.T) {
	tour := createTestTour(t)
	require.NoError(t, tour.Schedule())

	require.NoError(t, tour.ConfigureWorkflow(bulkConfig(5)))
	require.NoError(t, tour.ConfigureWorkflow(WorkflowConfig{
		Kind:          WorkflowSingleItemBatch,
		OrderCount:    3,
		SKUQuantities: map[string]int{"WIDGET-1": 1},
	}))
	// Receiving does not consume recipients
	require.NoError(t, tour.ConfigureWorkflow(WorkflowConfig{
		Kind:          WorkflowStandardReceiving,
		SKUQuantities: map[string]int{"WIDGET-1": 10},
	}))

	assert.Equal(t, 8, tour.TotalFulfillmentOrders())
}

func TestTourLockedAfterFinalization(t *testing.T) {
	tour := createTestTour(t)
	require.NoError(t, tour.Schedule())
	require.NoError(t, tour.ConfigureWorkflow(bulkConfig(1)))
	require.NoError(t, tour.BeginFinalization())
	require.NoError(t, tour.CompleteFinalization(&OrderSummary{GeneratedAt: time.Now().UTC()}))

	assert.ErrorIs(t, tour.ConfigureWorkflow(bulkConfig(2)), ErrTourLocked)
	assert.ErrorIs(t, tour.RemoveWorkflow(WorkflowBulkShipping), ErrTourLocked)
}
