package cloudevents

import (
	"time"
)

// EventType constants for touring domain events
const (
	TourScheduled = "touring.tour.scheduled"
	TourFinalized = "touring.tour.finalized"
	TourCanceled  = "touring.tour.canceled"
)

// Source constants for event sources
const (
	SourceTouringAPI = "/touring/api"
)

// TourCloudEvent represents a CloudEvents v1.0 compliant event
type TourCloudEvent struct {
	SpecVersion     string      `json:"specversion"`
	Type            string      `json:"type"`
	Source          string      `json:"source"`
	Subject         string      `json:"subject,omitempty"`
	ID              string      `json:"id"`
	Time            time.Time   `json:"time"`
	DataContentType string      `json:"datacontenttype"`
	Data            interface{} `json:"data"`

	// Touring-specific extensions
	CorrelationID string `json:"tourcorrelationid,omitempty"`
	TourID        string `json:"tourid,omitempty"`
	WarehouseID   string `json:"warehouseid,omitempty"`
}

// TourScheduledData is the payload for TourScheduled events
type TourScheduledData struct {
	TourID      string    `json:"tourId"`
	TourNumber  string    `json:"tourNumber"`
	WarehouseID string    `json:"warehouseId"`
	StartsAt    time.Time `json:"startsAt"`
	HostID      string    `json:"hostId"`
}

// TourFinalizedData is the payload for TourFinalized events
type TourFinalizedData struct {
	TourID         string `json:"tourId"`
	TourNumber     string `json:"tourNumber"`
	WarehouseID    string `json:"warehouseId"`
	SalesOrders    int    `json:"salesOrders"`
	PurchaseOrders int    `json:"purchaseOrders"`
	OrdersFailed   int    `json:"ordersFailed"`
}

// TourCanceledData is the payload for TourCanceled events
type TourCanceledData struct {
	TourID         string `json:"tourId"`
	TourNumber     string `json:"tourNumber"`
	OrdersCanceled int    `json:"ordersCanceled"`
	OrdersFailed   int    `json:"ordersFailed"`
	EntireTour     bool   `json:"entireTour"`
}
