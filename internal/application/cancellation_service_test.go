package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mostafa-azimi/touring-app-sub000/internal/domain"
)

func finalizedTour(t *testing.T) *domain.Tour {
	t.Helper()

	tour := scheduledTour("tour-9", 9)
	require.NoError(t, tour.ConfigureWorkflow(domain.WorkflowConfig{
		Kind:          domain.WorkflowBulkShipping,
		OrderCount:    3,
		SKUQuantities: map[string]int{"MUG-01": 1},
	}))
	require.NoError(t, tour.BeginFinalization())
	require.NoError(t, tour.CompleteFinalization(&domain.OrderSummary{
		SalesOrders: []domain.OrderRecord{
			{Type: domain.OrderTypeSales, Workflow: domain.WorkflowBulkShipping, ExternalID: "ext-1", OrderNumber: "BULK-9-001"},
			{Type: domain.OrderTypeSales, Workflow: domain.WorkflowBulkShipping, ExternalID: "ext-2", OrderNumber: "BULK-9-002"},
			{Type: domain.OrderTypeSales, Workflow: domain.WorkflowBulkShipping, ExternalID: "ext-3", OrderNumber: "BULK-9-003"},
		},
		PurchaseOrders: []domain.OrderRecord{
			{Type: domain.OrderTypePurchase, Workflow: domain.WorkflowStandardReceiving, ExternalID: "ext-po-1", OrderNumber: "Ito-06/15/2025"},
		},
	}))
	return tour
}

func cancellationFixture(t *testing.T, tour *domain.Tour) (*CancellationService, *fakeTourRepo, *fakeSubmitter, *fakePublisher) {
	t.Helper()
	tourRepo := newFakeTourRepo(tour)
	submitter := newFakeSubmitter()
	publisher := &fakePublisher{}
	service := NewCancellationService(tourRepo, submitter, publisher, testLogger(), testMetrics())
	return service, tourRepo, submitter, publisher
}

func TestCancelOrdersPartialFailure(t *testing.T) {
	tour := finalizedTour(t)
	service, tourRepo, submitter, _ := cancellationFixture(t, tour)
	submitter.cancelErrs["ext-2"] = errors.New("order already shipped")

	result, err := service.CancelOrders(context.Background(), "tour-9", CancelScope{
		OrderType: domain.OrderTypeSales,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Canceled)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 0, result.Skipped)
	assert.ElementsMatch(t, []string{"BULK-9-001", "BULK-9-003"}, result.CanceledNumbers)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "BULK-9-002")
	assert.False(t, result.TourCanceled)

	// the failed order stays out of the canceled set so a retry picks it up
	stored, err := tourRepo.FindByTourID(context.Background(), "tour-9")
	require.NoError(t, err)
	assert.True(t, stored.IsOrderCanceled("BULK-9-001"))
	assert.False(t, stored.IsOrderCanceled("BULK-9-002"))
	assert.Equal(t, domain.StatusFinalized, stored.Status)
}

func TestCancelOrdersSkipsAlreadyCanceled(t *testing.T) {
	tour := finalizedTour(t)
	tour.MarkOrdersCanceled([]string{"BULK-9-001"})
	service, _, submitter, _ := cancellationFixture(t, tour)

	result, err := service.CancelOrders(context.Background(), "tour-9", CancelScope{
		OrderType: domain.OrderTypeSales,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Canceled)
	assert.Equal(t, 1, result.Skipped)
	assert.NotContains(t, submitter.canceled, "ext-1")
}

func TestCancelEntireTour(t *testing.T) {
	tour := finalizedTour(t)
	service, tourRepo, submitter, publisher := cancellationFixture(t, tour)

	result, err := service.CancelOrders(context.Background(), "tour-9", CancelScope{EntireTour: true})
	require.NoError(t, err)

	assert.Equal(t, 4, result.Canceled)
	assert.True(t, result.TourCanceled)
	assert.Contains(t, submitter.canceled, "ext-po-1")

	stored, err := tourRepo.FindByTourID(context.Background(), "tour-9")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCanceled, stored.Status)
	assert.Contains(t, publisher.eventTypes(), "touring.tour.canceled")
}

func TestCancelEntireTourWithFailureStaysFinalized(t *testing.T) {
	tour := finalizedTour(t)
	service, tourRepo, submitter, _ := cancellationFixture(t, tour)
	submitter.cancelErrs["ext-3"] = errors.New("upstream unavailable")

	result, err := service.CancelOrders(context.Background(), "tour-9", CancelScope{EntireTour: true})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Canceled)
	assert.Equal(t, 1, result.Failed)
	assert.False(t, result.TourCanceled)

	stored, err := tourRepo.FindByTourID(context.Background(), "tour-9")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFinalized, stored.Status)
}

func TestCancelScopeByWorkflow(t *testing.T) {
	tour := finalizedTour(t)
	service, _, submitter, _ := cancellationFixture(t, tour)

	result, err := service.CancelOrders(context.Background(), "tour-9", CancelScope{
		Workflow: domain.WorkflowStandardReceiving,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Canceled)
	assert.Equal(t, []string{"ext-po-1"}, submitter.canceled)
}

func TestCancelEmptyScopeSelectsNothing(t *testing.T) {
	tour := finalizedTour(t)
	service, _, submitter, _ := cancellationFixture(t, tour)

	result, err := service.CancelOrders(context.Background(), "tour-9", CancelScope{})
	require.NoError(t, err)

	assert.Zero(t, result.Canceled)
	assert.Zero(t, result.Failed)
	assert.Empty(t, submitter.canceled)
}

func TestCancelWithoutOrders(t *testing.T) {
	tour := scheduledTour("tour-9", 9)
	service, _, _, _ := cancellationFixture(t, tour)

	_, err := service.CancelOrders(context.Background(), "tour-9", CancelScope{EntireTour: true})
	assert.ErrorIs(t, err, domain.ErrNoOrdersGenerated)
}
