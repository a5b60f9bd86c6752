package domain

import (
	"context"
	"errors"
)

// Errors for repositories
var (
	ErrTourNotFound       = errors.New("tour not found")
	ErrWarehouseNotFound  = errors.New("warehouse not found")
	ErrTeamMemberNotFound = errors.New("team member not found")
	ErrSettingsNotFound   = errors.New("tenant settings not found")
	ErrSwagItemNotFound   = errors.New("swag item not found")
	ErrConcurrentUpdate   = errors.New("document was modified concurrently")
)

// TourRepository persists Tour aggregates
type TourRepository interface {
	Save(ctx context.Context, tour *Tour) error
	Update(ctx context.Context, tour *Tour) error
	FindByTourID(ctx context.Context, tourID string) (*Tour, error)
	FindAll(ctx context.Context, limit, offset int64) ([]*Tour, error)
	FindByStatus(ctx context.Context, status Status, limit int64) ([]*Tour, error)
	// MarkFinalizing performs a conditional status update so only one caller
	// can move a tour into finalizing. Returns ErrConcurrentUpdate when the
	// tour was not in an eligible status.
	MarkFinalizing(ctx context.Context, tourID string) error
	Delete(ctx context.Context, tourID string) error
	NextTourNumber(ctx context.Context) (int, error)
}

// ParticipantRepository persists tour participants
type ParticipantRepository interface {
	Save(ctx context.Context, participant *Participant) error
	SaveMany(ctx context.Context, participants []*Participant) error
	FindByTourID(ctx context.Context, tourID string) ([]*Participant, error)
	ExistsByEmail(ctx context.Context, tourID, email string) (bool, error)
	DeleteByTourID(ctx context.Context, tourID string) error
}

// TeamMemberRepository persists team members (tour hosts)
type TeamMemberRepository interface {
	Save(ctx context.Context, member *TeamMember) error
	FindByMemberID(ctx context.Context, memberID string) (*TeamMember, error)
	FindAll(ctx context.Context) ([]*TeamMember, error)
	Delete(ctx context.Context, memberID string) error
}

// ExtraCustomerRepository reads the filler identity pool
type ExtraCustomerRepository interface {
	FindAll(ctx context.Context) ([]*ExtraCustomer, error)
	SeedDefaults(ctx context.Context) error
}

// WarehouseRepository persists warehouses
type WarehouseRepository interface {
	Save(ctx context.Context, warehouse *Warehouse) error
	Update(ctx context.Context, warehouse *Warehouse) error
	FindByID(ctx context.Context, id string) (*Warehouse, error)
	FindAll(ctx context.Context) ([]*Warehouse, error)
	Delete(ctx context.Context, id string) error
}

// SwagItemRepository persists the swag catalog
type SwagItemRepository interface {
	Save(ctx context.Context, item *SwagItem) error
	Update(ctx context.Context, item *SwagItem) error
	FindBySKU(ctx context.Context, sku string) (*SwagItem, error)
	FindAll(ctx context.Context, activeOnly bool) ([]*SwagItem, error)
	Delete(ctx context.Context, sku string) error
}

// EventPublisher publishes domain events to the message bus
type EventPublisher interface {
	Publish(ctx context.Context, event DomainEvent) error
}

// SettingsRepository persists tenant-level settings
type SettingsRepository interface {
	Get(ctx context.Context) (*TenantSettings, error)
	Upsert(ctx context.Context, settings *TenantSettings) error
	UpdateRefreshToken(ctx context.Context, refreshToken string) error
}
