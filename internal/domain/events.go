package domain

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent represents a domain event
type DomainEvent interface {
	EventType() string
	OccurredAt() time.Time
	AggregateID() string
}

// BaseDomainEvent contains common event fields
type BaseDomainEvent struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	AggregateId string    `json:"aggregateId"`
	Timestamp   time.Time `json:"timestamp"`
}

func (e BaseDomainEvent) EventType() string     { return e.Type }
func (e BaseDomainEvent) OccurredAt() time.Time { return e.Timestamp }
func (e BaseDomainEvent) AggregateID() string   { return e.AggregateId }

func newBaseEvent(eventType, aggregateID string) BaseDomainEvent {
	return BaseDomainEvent{
		ID:          uuid.New().String(),
		Type:        eventType,
		AggregateId: aggregateID,
		Timestamp:   time.Now().UTC(),
	}
}

// TourScheduledEvent is raised when a tour is scheduled
type TourScheduledEvent struct {
	BaseDomainEvent
	TourID       string    `json:"tourId"`
	TourNumber   int       `json:"tourNumber"`
	WarehouseID  string    `json:"warehouseId"`
	HostID       string    `json:"hostId"`
	ScheduledFor time.Time `json:"scheduledFor"`
}

// NewTourScheduledEvent creates a new TourScheduledEvent
func NewTourScheduledEvent(tour *Tour) *TourScheduledEvent {
	return &TourScheduledEvent{
		BaseDomainEvent: newBaseEvent("touring.tour.scheduled", tour.TourID),
		TourID:          tour.TourID,
		TourNumber:      tour.TourNumber,
		WarehouseID:     tour.WarehouseID,
		HostID:          tour.HostID,
		ScheduledFor:    tour.ScheduledFor,
	}
}

// TourFinalizedEvent is raised when order generation finishes, even partially
type TourFinalizedEvent struct {
	BaseDomainEvent
	TourID         string `json:"tourId"`
	TourNumber     int    `json:"tourNumber"`
	WarehouseID    string `json:"warehouseId"`
	SalesOrders    int    `json:"salesOrders"`
	PurchaseOrders int    `json:"purchaseOrders"`
	ErrorCount     int    `json:"errorCount"`
}

// NewTourFinalizedEvent creates a new TourFinalizedEvent
func NewTourFinalizedEvent(tour *Tour, summary *OrderSummary) *TourFinalizedEvent {
	return &TourFinalizedEvent{
		BaseDomainEvent: newBaseEvent("touring.tour.finalized", tour.TourID),
		TourID:          tour.TourID,
		TourNumber:      tour.TourNumber,
		WarehouseID:     tour.WarehouseID,
		SalesOrders:     len(summary.SalesOrders),
		PurchaseOrders:  len(summary.PurchaseOrders),
		ErrorCount:      len(summary.Errors),
	}
}

// TourCanceledEvent is raised when a tour is canceled
type TourCanceledEvent struct {
	BaseDomainEvent
	TourID     string `json:"tourId"`
	TourNumber int    `json:"tourNumber"`
	Reason     string `json:"reason,omitempty"`
}

// NewTourCanceledEvent creates a new TourCanceledEvent
func NewTourCanceledEvent(tour *Tour, reason string) *TourCanceledEvent {
	return &TourCanceledEvent{
		BaseDomainEvent: newBaseEvent("touring.tour.canceled", tour.TourID),
		TourID:          tour.TourID,
		TourNumber:      tour.TourNumber,
		Reason:          reason,
	}
}
