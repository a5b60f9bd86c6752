package domain

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Errors for warehouse and catalog entities
var (
	ErrInvalidWarehouse = errors.New("warehouse requires a name, code and external id")
	ErrInvalidSwagItem  = errors.New("swag item requires a SKU and product name")
)

// Warehouse is the addressing and tagging context for generated orders.
// ExternalID is the warehouse identifier in the external fulfillment system.
type Warehouse struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name" json:"name"`
	Code       string             `bson:"code" json:"code"`
	Address1   string             `bson:"address1" json:"address1"`
	Address2   string             `bson:"address2,omitempty" json:"address2,omitempty"`
	City       string             `bson:"city" json:"city"`
	State      string             `bson:"state" json:"state"`
	Zip        string             `bson:"zip" json:"zip"`
	Country    string             `bson:"country" json:"country"`
	Phone      string             `bson:"phone,omitempty" json:"phone,omitempty"`
	ExternalID string             `bson:"externalId" json:"externalId"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// NewWarehouse creates a warehouse record
func NewWarehouse(name, code, externalID string) (*Warehouse, error) {
	if name == "" || code == "" || externalID == "" {
		return nil, ErrInvalidWarehouse
	}

	now := time.Now().UTC()
	return &Warehouse{
		Name:       name,
		Code:       code,
		ExternalID: externalID,
		Country:    "US",
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// SwagItem is a catalog product the planner draws names from
type SwagItem struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SKU       string             `bson:"sku" json:"sku"`
	Name      string             `bson:"name" json:"name"`
	Active    bool               `bson:"active" json:"active"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// NewSwagItem creates a swag item record
func NewSwagItem(sku, name string) (*SwagItem, error) {
	if sku == "" || name == "" {
		return nil, ErrInvalidSwagItem
	}

	now := time.Now().UTC()
	return &SwagItem{
		SKU:       sku,
		Name:      name,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// TenantSettings holds tenant-level configuration for order generation and
// the external API connection
type TenantSettings struct {
	ID                       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ShopName                 string             `bson:"shopName" json:"shopName"`
	VendorID                 string             `bson:"vendorId" json:"vendorId"`
	DefaultFulfillmentStatus string             `bson:"defaultFulfillmentStatus" json:"defaultFulfillmentStatus"`
	RefreshToken             string             `bson:"refreshToken,omitempty" json:"-"`
	UpdatedAt                time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// FulfillmentStatusOrDefault falls back to "pending" when unset
func (s *TenantSettings) FulfillmentStatusOrDefault() string {
	if s == nil || s.DefaultFulfillmentStatus == "" {
		return "pending"
	}
	return s.DefaultFulfillmentStatus
}
