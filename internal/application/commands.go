package application

import (
	"time"

	"github.com/mostafa-azimi/touring-app-sub000/internal/domain"
)

// ScheduleTourCommand creates and schedules a new tour
type ScheduleTourCommand struct {
	ScheduledFor time.Time `json:"scheduledFor" binding:"required"`
	WarehouseID  string    `json:"warehouseId" binding:"required"`
	HostID       string    `json:"hostId" binding:"required"`
}

// ConfigureWorkflowCommand sets one workflow's generation parameters
type ConfigureWorkflowCommand struct {
	Kind          string         `json:"kind" binding:"required,workflow"`
	OrderCount    int            `json:"orderCount" binding:"gte=0"`
	SKUQuantities map[string]int `json:"skuQuantities" binding:"required"`
}

// ToDomainConfig converts the command to a domain workflow config
func (c ConfigureWorkflowCommand) ToDomainConfig() domain.WorkflowConfig {
	return domain.WorkflowConfig{
		Kind:          domain.WorkflowKind(c.Kind),
		OrderCount:    c.OrderCount,
		SKUQuantities: c.SKUQuantities,
	}
}

// AddParticipantCommand registers one participant on a tour
type AddParticipantCommand struct {
	FirstName string `json:"firstName" binding:"required,safe_string"`
	LastName  string `json:"lastName" binding:"required,safe_string"`
	Email     string `json:"email" binding:"required,email"`
	Company   string `json:"company" binding:"omitempty,safe_string"`
	Title     string `json:"title" binding:"omitempty,safe_string"`
}

// SaveWarehouseCommand creates or updates a warehouse
type SaveWarehouseCommand struct {
	Name       string `json:"name" binding:"required"`
	Code       string `json:"code" binding:"required"`
	Address1   string `json:"address1"`
	Address2   string `json:"address2"`
	City       string `json:"city"`
	State      string `json:"state"`
	Zip        string `json:"zip"`
	Country    string `json:"country"`
	Phone      string `json:"phone"`
	ExternalID string `json:"externalId" binding:"required"`
}

// SaveTeamMemberCommand creates a team member
type SaveTeamMemberCommand struct {
	FirstName string `json:"firstName" binding:"required,safe_string"`
	LastName  string `json:"lastName" binding:"required,safe_string"`
	Email     string `json:"email" binding:"required,email"`
}

// SaveSwagItemCommand creates or updates a swag catalog item
type SaveSwagItemCommand struct {
	SKU    string `json:"sku" binding:"required,sku"`
	Name   string `json:"name" binding:"required"`
	Active *bool  `json:"active"`
}

// UpdateSettingsCommand updates tenant-level settings
type UpdateSettingsCommand struct {
	ShopName                 string `json:"shopName"`
	VendorID                 string `json:"vendorId"`
	DefaultFulfillmentStatus string `json:"defaultFulfillmentStatus"`
}

// UpdateRefreshTokenCommand stores a new API refresh token
type UpdateRefreshTokenCommand struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// CancelScope selects which orders of a tour to cancel. Zero values widen
// the scope; EntireTour overrides both filters.
type CancelScope struct {
	Workflow   domain.WorkflowKind `json:"workflow,omitempty"`
	OrderType  domain.OrderType    `json:"orderType,omitempty"`
	EntireTour bool                `json:"entireTour,omitempty"`
	Reason     string              `json:"reason,omitempty"`
}
