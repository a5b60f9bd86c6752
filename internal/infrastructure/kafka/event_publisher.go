// Package kafka bridges domain events onto the message bus as CloudEvents.
package kafka

import (
	"context"
	"strconv"
	"time"

	"github.com/mostafa-azimi/touring-app-sub000/internal/domain"
	"github.com/mostafa-azimi/touring-app-sub000/pkg/cloudevents"
	"github.com/mostafa-azimi/touring-app-sub000/pkg/kafka"
	"github.com/mostafa-azimi/touring-app-sub000/pkg/logging"
	"github.com/mostafa-azimi/touring-app-sub000/pkg/metrics"
)

// EventPublisher maps domain events to CloudEvents and publishes them on the
// tours topic. Unknown event types are dropped with a warning rather than
// failing the operation that raised them.
type EventPublisher struct {
	producer *kafka.Producer
	factory  *cloudevents.EventFactory
	logger   *logging.Logger
	metrics  *metrics.Metrics
}

// NewEventPublisher creates a Kafka-backed domain event publisher
func NewEventPublisher(producer *kafka.Producer, factory *cloudevents.EventFactory, logger *logging.Logger, m *metrics.Metrics) *EventPublisher {
	return &EventPublisher{
		producer: producer,
		factory:  factory,
		logger:   logger.WithComponent("event-publisher"),
		metrics:  m,
	}
}

func (p *EventPublisher) Publish(ctx context.Context, event domain.DomainEvent) error {
	cloudEvent := p.toCloudEvent(ctx, event)
	if cloudEvent == nil {
		p.logger.WarnContext(ctx, "dropping unmapped domain event", "event_type", event.EventType())
		return nil
	}

	start := time.Now()
	err := p.producer.PublishEvent(ctx, kafka.Topics.ToursEvents, cloudEvent)
	p.metrics.RecordKafkaPublish(kafka.Topics.ToursEvents, event.EventType(), err == nil, time.Since(start))
	if err != nil {
		return err
	}

	p.logger.DebugContext(ctx, "domain event published",
		"event_type", event.EventType(),
		"aggregate_id", event.AggregateID(),
	)
	return nil
}

func (p *EventPublisher) toCloudEvent(ctx context.Context, event domain.DomainEvent) *cloudevents.TourCloudEvent {
	switch e := event.(type) {
	case *domain.TourScheduledEvent:
		return p.factory.CreateTourScheduledEvent(ctx, cloudevents.TourScheduledData{
			TourID:      e.TourID,
			TourNumber:  strconv.Itoa(e.TourNumber),
			WarehouseID: e.WarehouseID,
			StartsAt:    e.ScheduledFor,
			HostID:      e.HostID,
		})
	case *domain.TourFinalizedEvent:
		return p.factory.CreateTourFinalizedEvent(ctx, cloudevents.TourFinalizedData{
			TourID:         e.TourID,
			TourNumber:     strconv.Itoa(e.TourNumber),
			WarehouseID:    e.WarehouseID,
			SalesOrders:    e.SalesOrders,
			PurchaseOrders: e.PurchaseOrders,
			OrdersFailed:   e.ErrorCount,
		})
	case *domain.TourCanceledEvent:
		return p.factory.CreateTourCanceledEvent(ctx, cloudevents.TourCanceledData{
			TourID:     e.TourID,
			TourNumber: strconv.Itoa(e.TourNumber),
			EntireTour: true,
		})
	default:
		return nil
	}
}
