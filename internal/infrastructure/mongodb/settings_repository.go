package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mostafa-azimi/touring-app-sub000/internal/domain"
)

// settingsDocID is the fixed id of the single tenant settings document
const settingsDocID = "tenant"

// SettingsRepository persists tenant-level settings as a singleton document
type SettingsRepository struct {
	collection *mongo.Collection
}

// NewSettingsRepository creates a settings repository
func NewSettingsRepository(db *mongo.Database) *SettingsRepository {
	return &SettingsRepository{collection: db.Collection("settings")}
}

func (r *SettingsRepository) Get(ctx context.Context) (*domain.TenantSettings, error) {
	var settings domain.TenantSettings
	err := r.collection.FindOne(ctx, bson.M{"docId": settingsDocID}).Decode(&settings)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return &settings, nil
}

func (r *SettingsRepository) Upsert(ctx context.Context, settings *domain.TenantSettings) error {
	settings.UpdatedAt = time.Now().UTC()
	opts := options.Update().SetUpsert(true)
	filter := bson.M{"docId": settingsDocID}
	update := bson.M{"$set": bson.M{
		"docId":                    settingsDocID,
		"shopName":                 settings.ShopName,
		"vendorId":                 settings.VendorID,
		"defaultFulfillmentStatus": settings.DefaultFulfillmentStatus,
		"updatedAt":                settings.UpdatedAt,
	}}
	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to upsert settings: %w", err)
	}
	return nil
}

// UpdateRefreshToken rotates the stored API token without touching the rest
// of the settings document.
func (r *SettingsRepository) UpdateRefreshToken(ctx context.Context, refreshToken string) error {
	opts := options.Update().SetUpsert(true)
	filter := bson.M{"docId": settingsDocID}
	update := bson.M{"$set": bson.M{
		"docId":        settingsDocID,
		"refreshToken": refreshToken,
		"updatedAt":    time.Now().UTC(),
	}}
	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to update refresh token: %w", err)
	}
	return nil
}

// RefreshTokenSource adapts the settings repository to the token manager's
// source interface.
type RefreshTokenSource struct {
	repo *SettingsRepository
}

// NewRefreshTokenSource creates a refresh token source backed by settings
func NewRefreshTokenSource(repo *SettingsRepository) *RefreshTokenSource {
	return &RefreshTokenSource{repo: repo}
}

func (s *RefreshTokenSource) RefreshToken(ctx context.Context) (string, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		return "", err
	}
	return settings.RefreshToken, nil
}
