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

// WarehouseRepository persists warehouses keyed by their external API id
type WarehouseRepository struct {
	collection *mongo.Collection
}

// NewWarehouseRepository creates a warehouse repository and ensures its
// indexes
func NewWarehouseRepository(db *mongo.Database) *WarehouseRepository {
	repo := &WarehouseRepository{collection: db.Collection("warehouses")}
	repo.collection.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys:    bson.D{{Key: "externalId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return repo
}

func (r *WarehouseRepository) Save(ctx context.Context, warehouse *domain.Warehouse) error {
	warehouse.UpdatedAt = time.Now().UTC()
	opts := options.Update().SetUpsert(true)
	filter := bson.M{"externalId": warehouse.ExternalID}
	update := bson.M{"$set": warehouse}
	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to save warehouse: %w", err)
	}
	return nil
}

func (r *WarehouseRepository) Update(ctx context.Context, warehouse *domain.Warehouse) error {
	warehouse.UpdatedAt = time.Now().UTC()
	filter := bson.M{"externalId": warehouse.ExternalID}
	result, err := r.collection.ReplaceOne(ctx, filter, warehouse)
	if err != nil {
		return fmt.Errorf("failed to update warehouse: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrWarehouseNotFound
	}
	return nil
}

func (r *WarehouseRepository) FindByID(ctx context.Context, id string) (*domain.Warehouse, error) {
	var warehouse domain.Warehouse
	err := r.collection.FindOne(ctx, bson.M{"externalId": id}).Decode(&warehouse)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrWarehouseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find warehouse: %w", err)
	}
	return &warehouse, nil
}

func (r *WarehouseRepository) FindAll(ctx context.Context) ([]*domain.Warehouse, error) {
	opts := options.Find().SetSort(bson.D{{Key: "code", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list warehouses: %w", err)
	}
	defer cursor.Close(ctx)

	var warehouses []*domain.Warehouse
	err = cursor.All(ctx, &warehouses)
	return warehouses, err
}

func (r *WarehouseRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"externalId": id})
	if err != nil {
		return fmt.Errorf("failed to delete warehouse: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrWarehouseNotFound
	}
	return nil
}
