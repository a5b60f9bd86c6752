package application

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/mostafa-azimi/touring-app-sub000/internal/domain"
	"github.com/mostafa-azimi/touring-app-sub000/internal/planning"
	"github.com/mostafa-azimi/touring-app-sub000/internal/shiphero"
	"github.com/mostafa-azimi/touring-app-sub000/pkg/logging"
	"github.com/mostafa-azimi/touring-app-sub000/pkg/metrics"
)

// FinalizationService runs the order-generation pass for a tour: one shared
// recipient plan, workflows executed sequentially in canonical order,
// submissions fanned out concurrently within each workflow. Failures are
// collected, never fatal; the tour always ends up finalized.
type FinalizationService struct {
	tourRepo        domain.TourRepository
	participantRepo domain.ParticipantRepository
	teamRepo        domain.TeamMemberRepository
	extrasRepo      domain.ExtraCustomerRepository
	swagRepo        domain.SwagItemRepository
	settingsRepo    domain.SettingsRepository
	warehouseRepo   domain.WarehouseRepository
	submitter       OrderSubmitter
	publisher       domain.EventPublisher
	logger          *logging.Logger
	metrics         *metrics.Metrics
	newRand         func() *rand.Rand
}

// NewFinalizationService creates a finalization service
func NewFinalizationService(
	tourRepo domain.TourRepository,
	participantRepo domain.ParticipantRepository,
	teamRepo domain.TeamMemberRepository,
	extrasRepo domain.ExtraCustomerRepository,
	swagRepo domain.SwagItemRepository,
	settingsRepo domain.SettingsRepository,
	warehouseRepo domain.WarehouseRepository,
	submitter OrderSubmitter,
	publisher domain.EventPublisher,
	logger *logging.Logger,
	m *metrics.Metrics,
) *FinalizationService {
	return &FinalizationService{
		tourRepo:        tourRepo,
		participantRepo: participantRepo,
		teamRepo:        teamRepo,
		extrasRepo:      extrasRepo,
		swagRepo:        swagRepo,
		settingsRepo:    settingsRepo,
		warehouseRepo:   warehouseRepo,
		submitter:       submitter,
		publisher:       publisher,
		logger:          logger.WithComponent("finalization"),
		metrics:         m,
		newRand: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
	}
}

// WithRand overrides the random source factory. Tests seed it for
// deterministic plans.
func (s *FinalizationService) WithRand(newRand func() *rand.Rand) *FinalizationService {
	s.newRand = newRand
	return s
}

// submitResult is one order's outcome inside a workflow fan-out
type submitResult struct {
	record domain.OrderRecord
	err    error
}

// Finalize runs all selected workflows for a tour and persists the summary.
// A second concurrent call loses the status CAS and gets a conflict error.
func (s *FinalizationService) Finalize(ctx context.Context, tourID string) (*FinalizeResult, error) {
	tour, err := s.tourRepo.FindByTourID(ctx, tourID)
	if err != nil {
		return nil, err
	}

	if err := tour.BeginFinalization(); err != nil {
		return nil, err
	}
	if err := s.tourRepo.MarkFinalizing(ctx, tourID); err != nil {
		return nil, err
	}

	logger := s.logger.WithTour(tourID)
	logger.InfoContext(ctx, "finalization started",
		"tour_number", tour.TourNumber,
		"workflows", tour.SelectedWorkflows,
	)

	run, err := s.prepareRun(ctx, tour)
	if err != nil {
		// Preparation failed before any submission; still finalize with the
		// error recorded so the tour cannot wedge in finalizing.
		return s.complete(ctx, tour, &domain.OrderSummary{
			Errors:      []string{err.Error()},
			GeneratedAt: time.Now().UTC(),
		})
	}

	summary := &domain.OrderSummary{}
	for _, kind := range domain.CanonicalWorkflowOrder {
		if !s.workflowSelected(tour, kind) {
			continue
		}

		records, wfErrs := s.runWorkflow(ctx, tour, run, kind)
		for _, rec := range records {
			if rec.Type == domain.OrderTypePurchase {
				summary.PurchaseOrders = append(summary.PurchaseOrders, rec)
			} else {
				summary.SalesOrders = append(summary.SalesOrders, rec)
			}
		}
		summary.Errors = append(summary.Errors, wfErrs...)
	}
	summary.GeneratedAt = time.Now().UTC()

	return s.complete(ctx, tour, summary)
}

// finalizationRun is the per-run context shared across workflows
type finalizationRun struct {
	plan      *planning.AssignmentPlan
	planner   *planning.Planner
	builder   *planning.Builder
	warehouse *domain.Warehouse
	host      *domain.TeamMember
}

func (s *FinalizationService) prepareRun(ctx context.Context, tour *domain.Tour) (*finalizationRun, error) {
	warehouse, err := s.warehouseRepo.FindByID(ctx, tour.WarehouseID)
	if err != nil {
		return nil, fmt.Errorf("failed to load warehouse: %w", err)
	}

	host, err := s.teamRepo.FindByMemberID(ctx, tour.HostID)
	if err != nil {
		return nil, fmt.Errorf("failed to load host: %w", err)
	}

	participants, err := s.participantRepo.FindByTourID(ctx, tour.TourID)
	if err != nil {
		return nil, fmt.Errorf("failed to load participants: %w", err)
	}

	extras, err := s.extrasRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load extras pool: %w", err)
	}

	plan, err := planning.BuildAssignmentPlan(participants, host, extras, tour.TotalFulfillmentOrders())
	if err != nil {
		return nil, err
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tenant settings: %w", err)
	}

	swag, err := s.swagRepo.FindAll(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to load swag catalog: %w", err)
	}
	productNames := make(map[string]string, len(swag))
	for _, item := range swag {
		productNames[item.SKU] = item.Name
	}

	builder := planning.NewBuilder(
		settings.ShopName,
		settings.VendorID,
		settings.FulfillmentStatusOrDefault(),
		productNames,
	)

	return &finalizationRun{
		plan:      plan,
		planner:   planning.NewPlanner(s.newRand()),
		builder:   builder,
		warehouse: warehouse,
		host:      host,
	}, nil
}

func (s *FinalizationService) workflowSelected(tour *domain.Tour, kind domain.WorkflowKind) bool {
	for _, k := range tour.SelectedWorkflows {
		if k == kind {
			return true
		}
	}
	return false
}

// runWorkflow executes one workflow's generation routine. Configuration
// errors abort this workflow only; submission errors are recorded per order
// and the rest of the batch proceeds.
func (s *FinalizationService) runWorkflow(
	ctx context.Context,
	tour *domain.Tour,
	run *finalizationRun,
	kind domain.WorkflowKind,
) ([]domain.OrderRecord, []string) {
	config, ok := tour.WorkflowConfigs[kind]
	if !ok {
		return nil, []string{fmt.Sprintf("%s: %s", kind, domain.ErrMissingWorkflowCfg)}
	}
	if err := config.Validate(); err != nil {
		return nil, []string{err.Error()}
	}

	if kind == domain.WorkflowStandardReceiving {
		record, err := s.submitPurchaseOrder(ctx, tour, run, config)
		if err != nil {
			s.metrics.RecordOrderGenerated(string(kind), string(domain.OrderTypePurchase), false)
			return nil, []string{fmt.Sprintf("%s: %s", kind, err)}
		}
		s.metrics.RecordOrderGenerated(string(kind), string(domain.OrderTypePurchase), true)
		return []domain.OrderRecord{*record}, nil
	}

	return s.submitSalesOrders(ctx, tour, run, kind, config)
}

func (s *FinalizationService) submitPurchaseOrder(
	ctx context.Context,
	tour *domain.Tour,
	run *finalizationRun,
	config domain.WorkflowConfig,
) (*domain.OrderRecord, error) {
	items, err := run.planner.FullCatalogPlan(config.SKUQuantities)
	if err != nil {
		return nil, err
	}

	payload := run.builder.PurchaseOrder(items, tour, run.warehouse, run.host.LastName)

	start := time.Now()
	result, err := s.submitter.CreatePurchaseOrder(ctx, payload)
	s.logger.OrderSubmission(ctx, "purchase_order_create", payload.PONumber, err == nil, time.Since(start))
	if err != nil {
		return nil, err
	}

	return &domain.OrderRecord{
		Type:        domain.OrderTypePurchase,
		Workflow:    config.Kind,
		ExternalID:  result.ExternalID,
		OrderNumber: result.OrderNumber,
		LegacyID:    result.LegacyID,
		LineItems:   toLineItems(items),
	}, nil
}

func (s *FinalizationService) submitSalesOrders(
	ctx context.Context,
	tour *domain.Tour,
	run *finalizationRun,
	kind domain.WorkflowKind,
	config domain.WorkflowConfig,
) ([]domain.OrderRecord, []string) {
	recipients, err := run.plan.Take(config.OrderCount)
	if err != nil {
		return nil, []string{fmt.Sprintf("%s: %s", kind, err)}
	}

	// SKU plans are drawn sequentially so the injected random source stays
	// deterministic; only the submission calls fan out.
	type job struct {
		index   int
		payload planningPayload
	}
	jobs := make([]job, 0, len(recipients))
	for i, recipient := range recipients {
		items, err := run.planner.PlanFor(kind, config.SKUQuantities)
		if err != nil {
			return nil, []string{fmt.Sprintf("%s: %s", kind, err)}
		}
		payload := run.builder.SalesOrder(recipient, items, tour, run.warehouse, kind, i)
		jobs = append(jobs, job{index: i, payload: planningPayload{
			input:         payload,
			items:         items,
			recipientName: recipient.FullName(),
		}})
	}

	results := make([]submitResult, len(jobs))
	var wg sync.WaitGroup
	for _, j := range jobs {
		wg.Add(1)
		go func(j job) {
			defer wg.Done()

			start := time.Now()
			res, err := s.submitter.CreateOrder(ctx, j.payload.input)
			s.logger.OrderSubmission(ctx, "order_create", j.payload.input.OrderNumber, err == nil, time.Since(start))
			if err != nil {
				results[j.index] = submitResult{err: fmt.Errorf("%s: order %s: %w", kind, j.payload.input.OrderNumber, err)}
				return
			}

			results[j.index] = submitResult{record: domain.OrderRecord{
				Type:          domain.OrderTypeSales,
				Workflow:      kind,
				ExternalID:    res.ExternalID,
				OrderNumber:   res.OrderNumber,
				LegacyID:      res.LegacyID,
				RecipientName: j.payload.recipientName,
				LineItems:     toLineItems(j.payload.items),
			}}
		}(j)
	}
	wg.Wait()

	var records []domain.OrderRecord
	var errs []string
	for _, r := range results {
		if r.err != nil {
			errs = append(errs, r.err.Error())
			s.metrics.RecordOrderGenerated(string(kind), string(domain.OrderTypeSales), false)
			continue
		}
		records = append(records, r.record)
		s.metrics.RecordOrderGenerated(string(kind), string(domain.OrderTypeSales), true)
	}

	return records, errs
}

type planningPayload struct {
	input         shiphero.OrderCreateInput
	items         []planning.PlannedItem
	recipientName string
}

// complete persists the summary, finalizes the tour, and publishes events.
// Persistence errors are returned, but the finalized transition itself never
// depends on order outcomes.
func (s *FinalizationService) complete(ctx context.Context, tour *domain.Tour, summary *domain.OrderSummary) (*FinalizeResult, error) {
	if err := tour.CompleteFinalization(summary); err != nil {
		return nil, err
	}
	if err := s.tourRepo.Update(ctx, tour); err != nil {
		return nil, fmt.Errorf("failed to persist finalization summary: %w", err)
	}

	status := "success"
	if len(summary.Errors) > 0 {
		status = "partial"
		if len(summary.SalesOrders)+len(summary.PurchaseOrders) == 0 {
			status = "failed"
		}
	}
	s.metrics.RecordTourFinalized(status)

	for _, event := range tour.DomainEvents() {
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.WithError(err).WarnContext(ctx, "failed to publish domain event", "event_type", event.EventType())
		}
	}
	tour.ClearDomainEvents()

	s.logger.WithTour(tour.TourID).InfoContext(ctx, "finalization completed",
		"sales_orders", len(summary.SalesOrders),
		"purchase_orders", len(summary.PurchaseOrders),
		"errors", len(summary.Errors),
	)

	return &FinalizeResult{
		Success:        len(summary.Errors) == 0,
		TourID:         tour.TourID,
		SalesOrders:    summary.SalesOrders,
		PurchaseOrders: summary.PurchaseOrders,
		Errors:         summary.Errors,
	}, nil
}

func toLineItems(items []planning.PlannedItem) []domain.LineItem {
	out := make([]domain.LineItem, 0, len(items))
	for _, item := range items {
		out = append(out, domain.LineItem{SKU: item.SKU, Quantity: item.Quantity})
	}
	return out
}
