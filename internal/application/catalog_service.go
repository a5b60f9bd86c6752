package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mostafa-azimi/touring-app-sub000/internal/domain"
	"github.com/mostafa-azimi/touring-app-sub000/pkg/logging"
)

// CatalogService manages the reference data tours are built from:
// warehouses, team members, the swag catalog, the extras pool, and tenant
// settings.
type CatalogService struct {
	warehouseRepo domain.WarehouseRepository
	teamRepo      domain.TeamMemberRepository
	swagRepo      domain.SwagItemRepository
	extrasRepo    domain.ExtraCustomerRepository
	settingsRepo  domain.SettingsRepository
	logger        *logging.Logger
}

// NewCatalogService creates a catalog service
func NewCatalogService(
	warehouseRepo domain.WarehouseRepository,
	teamRepo domain.TeamMemberRepository,
	swagRepo domain.SwagItemRepository,
	extrasRepo domain.ExtraCustomerRepository,
	settingsRepo domain.SettingsRepository,
	logger *logging.Logger,
) *CatalogService {
	return &CatalogService{
		warehouseRepo: warehouseRepo,
		teamRepo:      teamRepo,
		swagRepo:      swagRepo,
		extrasRepo:    extrasRepo,
		settingsRepo:  settingsRepo,
		logger:        logger.WithComponent("catalog"),
	}
}

// SaveWarehouse creates a warehouse record
func (s *CatalogService) SaveWarehouse(ctx context.Context, cmd SaveWarehouseCommand) (*domain.Warehouse, error) {
	warehouse, err := domain.NewWarehouse(cmd.Name, cmd.Code, cmd.ExternalID)
	if err != nil {
		return nil, err
	}
	warehouse.Address1 = cmd.Address1
	warehouse.Address2 = cmd.Address2
	warehouse.City = cmd.City
	warehouse.State = cmd.State
	warehouse.Zip = cmd.Zip
	warehouse.Phone = cmd.Phone
	if cmd.Country != "" {
		warehouse.Country = cmd.Country
	}

	if err := s.warehouseRepo.Save(ctx, warehouse); err != nil {
		return nil, fmt.Errorf("failed to save warehouse: %w", err)
	}
	return warehouse, nil
}

// ListWarehouses returns all warehouses
func (s *CatalogService) ListWarehouses(ctx context.Context) ([]*domain.Warehouse, error) {
	return s.warehouseRepo.FindAll(ctx)
}

// GetWarehouse loads one warehouse
func (s *CatalogService) GetWarehouse(ctx context.Context, id string) (*domain.Warehouse, error) {
	return s.warehouseRepo.FindByID(ctx, id)
}

// DeleteWarehouse removes a warehouse
func (s *CatalogService) DeleteWarehouse(ctx context.Context, id string) error {
	return s.warehouseRepo.Delete(ctx, id)
}

// SaveTeamMember creates a team member who can host tours
func (s *CatalogService) SaveTeamMember(ctx context.Context, cmd SaveTeamMemberCommand) (*domain.TeamMember, error) {
	member := &domain.TeamMember{
		MemberID:  uuid.New().String(),
		FirstName: cmd.FirstName,
		LastName:  cmd.LastName,
		Email:     cmd.Email,
	}
	if err := s.teamRepo.Save(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to save team member: %w", err)
	}
	return member, nil
}

// ListTeamMembers returns all team members
func (s *CatalogService) ListTeamMembers(ctx context.Context) ([]*domain.TeamMember, error) {
	return s.teamRepo.FindAll(ctx)
}

// DeleteTeamMember removes a team member
func (s *CatalogService) DeleteTeamMember(ctx context.Context, memberID string) error {
	return s.teamRepo.Delete(ctx, memberID)
}

// SaveSwagItem creates or updates a swag catalog entry. An existing SKU is
// updated in place so re-importing a catalog is idempotent.
func (s *CatalogService) SaveSwagItem(ctx context.Context, cmd SaveSwagItemCommand) (*domain.SwagItem, error) {
	existing, err := s.swagRepo.FindBySKU(ctx, cmd.SKU)
	if err == nil {
		existing.Name = cmd.Name
		if cmd.Active != nil {
			existing.Active = *cmd.Active
		}
		if err := s.swagRepo.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to update swag item: %w", err)
		}
		return existing, nil
	}

	item, err := domain.NewSwagItem(cmd.SKU, cmd.Name)
	if err != nil {
		return nil, err
	}
	if cmd.Active != nil {
		item.Active = *cmd.Active
	}
	if err := s.swagRepo.Save(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to save swag item: %w", err)
	}
	return item, nil
}

// ListSwagItems returns the swag catalog, optionally active items only
func (s *CatalogService) ListSwagItems(ctx context.Context, activeOnly bool) ([]*domain.SwagItem, error) {
	return s.swagRepo.FindAll(ctx, activeOnly)
}

// DeleteSwagItem removes a catalog entry by SKU
func (s *CatalogService) DeleteSwagItem(ctx context.Context, sku string) error {
	return s.swagRepo.Delete(ctx, sku)
}

// ListExtraCustomers returns the filler identity pool in its stable order
func (s *CatalogService) ListExtraCustomers(ctx context.Context) ([]*domain.ExtraCustomer, error) {
	return s.extrasRepo.FindAll(ctx)
}

// SeedExtraCustomers loads the default filler pool if it is empty
func (s *CatalogService) SeedExtraCustomers(ctx context.Context) error {
	return s.extrasRepo.SeedDefaults(ctx)
}

// GetSettings returns tenant settings; missing settings come back zero-valued
// so the caller sees the effective defaults.
func (s *CatalogService) GetSettings(ctx context.Context) (*domain.TenantSettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if errors.Is(err, domain.ErrSettingsNotFound) {
		return &domain.TenantSettings{}, nil
	}
	return settings, err
}

// UpdateSettings merges the given fields into tenant settings
func (s *CatalogService) UpdateSettings(ctx context.Context, cmd UpdateSettingsCommand) (*domain.TenantSettings, error) {
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	if cmd.ShopName != "" {
		settings.ShopName = cmd.ShopName
	}
	if cmd.VendorID != "" {
		settings.VendorID = cmd.VendorID
	}
	if cmd.DefaultFulfillmentStatus != "" {
		settings.DefaultFulfillmentStatus = cmd.DefaultFulfillmentStatus
	}

	if err := s.settingsRepo.Upsert(ctx, settings); err != nil {
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}
	return settings, nil
}

// UpdateRefreshToken stores a new upstream API refresh token. The token is
// write-only through this path; it never appears in settings responses.
func (s *CatalogService) UpdateRefreshToken(ctx context.Context, cmd UpdateRefreshTokenCommand) error {
	if err := s.settingsRepo.UpdateRefreshToken(ctx, cmd.RefreshToken); err != nil {
		return fmt.Errorf("failed to update refresh token: %w", err)
	}
	s.logger.InfoContext(ctx, "refresh token rotated")
	return nil
}
