package cloudevents

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mostafa-azimi/touring-app-sub000/pkg/logging"
)

// EventFactory creates CloudEvents for touring domain events
type EventFactory struct {
	source string
}

// NewEventFactory creates a new EventFactory for a specific source
func NewEventFactory(source string) *EventFactory {
	return &EventFactory{source: source}
}

// CreateEvent creates a new TourCloudEvent with the given parameters.
// The correlation ID is picked up from the context when present.
func (f *EventFactory) CreateEvent(
	ctx context.Context,
	eventType string,
	subject string,
	data interface{},
) *TourCloudEvent {
	event := &TourCloudEvent{
		SpecVersion:     "1.0",
		Type:            eventType,
		Source:          f.source,
		Subject:         subject,
		ID:              uuid.New().String(),
		Time:            time.Now().UTC(),
		DataContentType: "application/json",
		Data:            data,
	}

	if correlationID, ok := ctx.Value(logging.CorrelationIDKey).(string); ok {
		event.CorrelationID = correlationID
	}

	return event
}

// CreateTourScheduledEvent creates a TourScheduled event
func (f *EventFactory) CreateTourScheduledEvent(ctx context.Context, data TourScheduledData) *TourCloudEvent {
	event := f.CreateEvent(ctx, TourScheduled, "tour/"+data.TourID, data)
	event.TourID = data.TourID
	event.WarehouseID = data.WarehouseID
	return event
}

// CreateTourFinalizedEvent creates a TourFinalized event
func (f *EventFactory) CreateTourFinalizedEvent(ctx context.Context, data TourFinalizedData) *TourCloudEvent {
	event := f.CreateEvent(ctx, TourFinalized, "tour/"+data.TourID, data)
	event.TourID = data.TourID
	event.WarehouseID = data.WarehouseID
	return event
}

// CreateTourCanceledEvent creates a TourCanceled event
func (f *EventFactory) CreateTourCanceledEvent(ctx context.Context, data TourCanceledData) *TourCloudEvent {
	event := f.CreateEvent(ctx, TourCanceled, "tour/"+data.TourID, data)
	event.TourID = data.TourID
	return event
}
