package domain

import (
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Errors for Tour aggregate
var (
	ErrNoWarehouse            = errors.New("tour must reference a warehouse")
	ErrNoHost                 = errors.New("tour must reference a host")
	ErrNoWorkflowsSelected    = errors.New("tour has no workflows selected")
	ErrInvalidTransition      = errors.New("invalid status transition")
	ErrTourAlreadyFinalized   = errors.New("tour is already finalized")
	ErrTourAlreadyCanceled    = errors.New("tour is already canceled")
	ErrFinalizationInProgress = errors.New("tour finalization is already in progress")
	ErrTourLocked             = errors.New("tour can no longer be modified")
	ErrNoOrdersGenerated      = errors.New("tour has no generated orders")
)

// Status represents the tour lifecycle state
type Status string

const (
	StatusDraft      Status = "draft"
	StatusScheduled  Status = "scheduled"
	StatusValidated  Status = "validated"
	StatusFinalizing Status = "finalizing"
	StatusFinalized  Status = "finalized"
	StatusCanceled   Status = "canceled"
)

// IsValid checks if the status is valid
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusScheduled, StatusValidated, StatusFinalizing,
		StatusFinalized, StatusCanceled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further order generation can happen
func (s Status) IsTerminal() bool {
	return s == StatusFinalized || s == StatusCanceled
}

// OrderType distinguishes generated order records
type OrderType string

const (
	OrderTypeSales    OrderType = "sales_order"
	OrderTypePurchase OrderType = "purchase_order"
)

// LineItem is a SKU/quantity pair on a generated order
type LineItem struct {
	SKU      string `bson:"sku" json:"sku"`
	Quantity int    `bson:"quantity" json:"quantity"`
}

// OrderRecord captures one order created during finalization. Presence in the
// tour's summary implies "created"; cancellation outcome is tracked separately
// in CanceledOrderNumbers.
type OrderRecord struct {
	Type          OrderType    `bson:"type" json:"type"`
	Workflow      WorkflowKind `bson:"workflow" json:"workflow"`
	ExternalID    string       `bson:"externalId" json:"externalId"`
	OrderNumber   string       `bson:"orderNumber" json:"orderNumber"`
	LegacyID      int64        `bson:"legacyId" json:"legacyId"`
	RecipientName string       `bson:"recipientName,omitempty" json:"recipientName,omitempty"`
	LineItems     []LineItem   `bson:"lineItems" json:"lineItems"`
}

// OrderSummary is the aggregate result of a finalization run, persisted on
// the tour document.
type OrderSummary struct {
	SalesOrders    []OrderRecord `bson:"salesOrders" json:"salesOrders"`
	PurchaseOrders []OrderRecord `bson:"purchaseOrders" json:"purchaseOrders"`
	Errors         []string      `bson:"errors" json:"errors"`
	GeneratedAt    time.Time     `bson:"generatedAt" json:"generatedAt"`
}

// Orders returns all records in the summary, sales first
func (s *OrderSummary) Orders() []OrderRecord {
	out := make([]OrderRecord, 0, len(s.SalesOrders)+len(s.PurchaseOrders))
	out = append(out, s.SalesOrders...)
	out = append(out, s.PurchaseOrders...)
	return out
}

// Tour is the aggregate root for a scheduled warehouse tour and the demo
// orders generated for it.
type Tour struct {
	ID                   primitive.ObjectID          `bson:"_id,omitempty" json:"id"`
	TourID               string                      `bson:"tourId" json:"tourId"`
	TourNumber           int                         `bson:"tourNumber" json:"tourNumber"`
	ScheduledFor         time.Time                   `bson:"scheduledFor" json:"scheduledFor"`
	WarehouseID          string                      `bson:"warehouseId" json:"warehouseId"`
	HostID               string                      `bson:"hostId" json:"hostId"`
	ParticipantIDs       []string                    `bson:"participantIds" json:"participantIds"`
	SelectedWorkflows    []WorkflowKind              `bson:"selectedWorkflows" json:"selectedWorkflows"`
	WorkflowConfigs      map[WorkflowKind]WorkflowConfig `bson:"workflowConfigs" json:"workflowConfigs"`
	Status               Status                      `bson:"status" json:"status"`
	OrderSummary         *OrderSummary               `bson:"orderSummary,omitempty" json:"orderSummary,omitempty"`
	CanceledOrderNumbers []string                    `bson:"canceledOrderNumbers,omitempty" json:"canceledOrderNumbers,omitempty"`
	CreatedAt            time.Time                   `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time                   `bson:"updatedAt" json:"updatedAt"`

	// Domain events - transient, not persisted
	domainEvents []DomainEvent `bson:"-" json:"-"`
}

// NewTour creates a new Tour aggregate in draft status
func NewTour(tourID string, tourNumber int, scheduledFor time.Time, warehouseID, hostID string) (*Tour, error) {
	if warehouseID == "" {
		return nil, ErrNoWarehouse
	}
	if hostID == "" {
		return nil, ErrNoHost
	}

	now := time.Now().UTC()
	return &Tour{
		TourID:          tourID,
		TourNumber:      tourNumber,
		ScheduledFor:    scheduledFor,
		WarehouseID:     warehouseID,
		HostID:          hostID,
		ParticipantIDs:  make([]string, 0),
		WorkflowConfigs: make(map[WorkflowKind]WorkflowConfig),
		Status:          StatusDraft,
		CreatedAt:       now,
		UpdatedAt:       now,
		domainEvents:    make([]DomainEvent, 0),
	}, nil
}

// Schedule transitions the tour from draft to scheduled
func (t *Tour) Schedule() error {
	if t.Status == StatusCanceled {
		return ErrTourAlreadyCanceled
	}
	if t.Status == StatusScheduled {
		return nil
	}
	if t.Status != StatusDraft {
		return ErrInvalidTransition
	}

	t.Status = StatusScheduled
	t.touch()
	t.addDomainEvent(NewTourScheduledEvent(t))

	return nil
}

// ConfigureWorkflow sets or replaces the configuration for one workflow and
// includes it in the selected set. Rejected once the tour is terminal or
// finalizing.
func (t *Tour) ConfigureWorkflow(config WorkflowConfig) error {
	if t.Status.IsTerminal() || t.Status == StatusFinalizing {
		return ErrTourLocked
	}

	if err := config.Validate(); err != nil {
		return err
	}

	t.WorkflowConfigs[config.Kind] = config
	for _, kind := range t.SelectedWorkflows {
		if kind == config.Kind {
			t.touch()
			return nil
		}
	}
	t.SelectedWorkflows = append(t.SelectedWorkflows, config.Kind)
	t.touch()

	return nil
}

// RemoveWorkflow drops a workflow from the selected set
func (t *Tour) RemoveWorkflow(kind WorkflowKind) error {
	if t.Status.IsTerminal() || t.Status == StatusFinalizing {
		return ErrTourLocked
	}

	delete(t.WorkflowConfigs, kind)
	kept := t.SelectedWorkflows[:0]
	for _, k := range t.SelectedWorkflows {
		if k != kind {
			kept = append(kept, k)
		}
	}
	t.SelectedWorkflows = kept
	t.touch()

	return nil
}

// Validate checks all selected workflow configs and transitions the tour to
// validated. Idempotent when already validated.
func (t *Tour) Validate() error {
	if t.Status == StatusCanceled {
		return ErrTourAlreadyCanceled
	}
	if t.Status == StatusValidated {
		return nil
	}
	if t.Status != StatusScheduled {
		return ErrInvalidTransition
	}

	if len(t.SelectedWorkflows) == 0 {
		return ErrNoWorkflowsSelected
	}

	for _, kind := range t.SelectedWorkflows {
		config, ok := t.WorkflowConfigs[kind]
		if !ok {
			return fmt.Errorf("%w: %s", ErrMissingWorkflowCfg, kind)
		}
		if err := config.Validate(); err != nil {
			return err
		}
	}

	t.Status = StatusValidated
	t.touch()

	return nil
}

// BeginFinalization transitions the tour to finalizing. The repository pairs
// this with a conditional update so two concurrent finalize calls cannot both
// win.
func (t *Tour) BeginFinalization() error {
	switch t.Status {
	case StatusFinalizing:
		return ErrFinalizationInProgress
	case StatusFinalized:
		return ErrTourAlreadyFinalized
	case StatusCanceled:
		return ErrTourAlreadyCanceled
	case StatusScheduled, StatusValidated:
		t.Status = StatusFinalizing
		t.touch()
		return nil
	default:
		return ErrInvalidTransition
	}
}

// CompleteFinalization records the order summary and marks the tour
// finalized. Reached even when every order failed: best effort, report
// outcome.
func (t *Tour) CompleteFinalization(summary *OrderSummary) error {
	if t.Status != StatusFinalizing {
		return ErrInvalidTransition
	}

	t.OrderSummary = summary
	t.Status = StatusFinalized
	t.touch()
	t.addDomainEvent(NewTourFinalizedEvent(t, summary))

	return nil
}

// MarkOrdersCanceled adds order numbers to the canceled set, skipping
// duplicates
func (t *Tour) MarkOrdersCanceled(orderNumbers []string) {
	existing := make(map[string]struct{}, len(t.CanceledOrderNumbers))
	for _, n := range t.CanceledOrderNumbers {
		existing[n] = struct{}{}
	}
	for _, n := range orderNumbers {
		if _, ok := existing[n]; !ok {
			t.CanceledOrderNumbers = append(t.CanceledOrderNumbers, n)
			existing[n] = struct{}{}
		}
	}
	t.touch()
}

// IsOrderCanceled reports whether an order number is in the canceled set
func (t *Tour) IsOrderCanceled(orderNumber string) bool {
	for _, n := range t.CanceledOrderNumbers {
		if n == orderNumber {
			return true
		}
	}
	return false
}

// Cancel transitions the tour to canceled. Idempotent when already canceled.
func (t *Tour) Cancel(reason string) error {
	if t.Status == StatusCanceled {
		return nil
	}
	if t.Status == StatusFinalizing {
		return ErrFinalizationInProgress
	}

	t.Status = StatusCanceled
	t.touch()
	t.addDomainEvent(NewTourCanceledEvent(t, reason))

	return nil
}

// TotalFulfillmentOrders returns the recipient demand across all selected
// fulfillment workflows
func (t *Tour) TotalFulfillmentOrders() int {
	total := 0
	for _, kind := range t.SelectedWorkflows {
		if !kind.IsFulfillment() {
			continue
		}
		if config, ok := t.WorkflowConfigs[kind]; ok {
			total += config.OrderCount
		}
	}
	return total
}

func (t *Tour) touch() {
	t.UpdatedAt = time.Now().UTC()
}

// DomainEvents returns the accumulated domain events
func (t *Tour) DomainEvents() []DomainEvent {
	return t.domainEvents
}

// ClearDomainEvents clears the accumulated domain events
func (t *Tour) ClearDomainEvents() {
	t.domainEvents = make([]DomainEvent, 0)
}

func (t *Tour) addDomainEvent(event DomainEvent) {
	t.domainEvents = append(t.domainEvents, event)
}
