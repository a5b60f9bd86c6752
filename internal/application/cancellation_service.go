package application

import (
	"context"
	"fmt"

	"github.com/mostafa-azimi/touring-app-sub000/internal/domain"
	"github.com/mostafa-azimi/touring-app-sub000/pkg/logging"
	"github.com/mostafa-azimi/touring-app-sub000/pkg/metrics"
)

// CancellationService cancels generated orders for a finalized tour, either
// a filtered subset or the entire tour. Partial success is the normal mode:
// each order's outcome is independent and already-canceled orders are
// skipped, not retried.
type CancellationService struct {
	tourRepo  domain.TourRepository
	submitter OrderSubmitter
	publisher domain.EventPublisher
	logger    *logging.Logger
	metrics   *metrics.Metrics
}

// NewCancellationService creates a cancellation service
func NewCancellationService(
	tourRepo domain.TourRepository,
	submitter OrderSubmitter,
	publisher domain.EventPublisher,
	logger *logging.Logger,
	m *metrics.Metrics,
) *CancellationService {
	return &CancellationService{
		tourRepo:  tourRepo,
		submitter: submitter,
		publisher: publisher,
		logger:    logger.WithComponent("cancellation"),
		metrics:   m,
	}
}

// CancelOrders cancels the orders a scope selects. When the scope covers the
// whole tour and every order cancels cleanly, the tour transitions to
// canceled; any failure leaves it finalized so the remainder can be retried.
func (s *CancellationService) CancelOrders(ctx context.Context, tourID string, scope CancelScope) (*CancelResult, error) {
	tour, err := s.tourRepo.FindByTourID(ctx, tourID)
	if err != nil {
		return nil, err
	}
	if tour.OrderSummary == nil {
		return nil, domain.ErrNoOrdersGenerated
	}

	targets := selectOrders(tour.OrderSummary.Orders(), scope)

	logger := s.logger.WithTour(tourID)
	logger.InfoContext(ctx, "cancellation started",
		"targets", len(targets),
		"entire_tour", scope.EntireTour,
	)

	result := &CancelResult{TourID: tourID}
	for _, record := range targets {
		if tour.IsOrderCanceled(record.OrderNumber) {
			result.Skipped++
			continue
		}

		if err := s.cancelOne(ctx, record); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %s", record.OrderNumber, err))
			s.metrics.RecordOrderCanceled(string(record.Type), false)
			continue
		}

		result.Canceled++
		result.CanceledNumbers = append(result.CanceledNumbers, record.OrderNumber)
		s.metrics.RecordOrderCanceled(string(record.Type), true)
	}

	tour.MarkOrdersCanceled(result.CanceledNumbers)

	if scope.EntireTour && result.Failed == 0 {
		reason := scope.Reason
		if reason == "" {
			reason = "all orders canceled"
		}
		if err := tour.Cancel(reason); err != nil {
			return nil, err
		}
		result.TourCanceled = true
	}

	if err := s.tourRepo.Update(ctx, tour); err != nil {
		return nil, fmt.Errorf("failed to persist cancellation state: %w", err)
	}

	for _, event := range tour.DomainEvents() {
		if err := s.publisher.Publish(ctx, event); err != nil {
			logger.WithError(err).WarnContext(ctx, "failed to publish domain event", "event_type", event.EventType())
		}
	}
	tour.ClearDomainEvents()

	logger.InfoContext(ctx, "cancellation completed",
		"canceled", result.Canceled,
		"failed", result.Failed,
		"skipped", result.Skipped,
		"tour_canceled", result.TourCanceled,
	)

	return result, nil
}

func (s *CancellationService) cancelOne(ctx context.Context, record domain.OrderRecord) error {
	if record.Type == domain.OrderTypePurchase {
		return s.submitter.CancelPurchaseOrder(ctx, record.ExternalID)
	}
	return s.submitter.CancelOrder(ctx, record.ExternalID)
}

// selectOrders filters summary records down to the scope. An empty scope
// (no filters, not entire-tour) selects nothing.
func selectOrders(records []domain.OrderRecord, scope CancelScope) []domain.OrderRecord {
	if scope.EntireTour {
		return records
	}

	var out []domain.OrderRecord
	for _, record := range records {
		if scope.Workflow != "" && record.Workflow != scope.Workflow {
			continue
		}
		if scope.OrderType != "" && record.Type != scope.OrderType {
			continue
		}
		if scope.Workflow == "" && scope.OrderType == "" {
			continue
		}
		out = append(out, record)
	}
	return out
}
