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

// SwagItemRepository persists the swag catalog keyed by SKU
type SwagItemRepository struct {
	collection *mongo.Collection
}

// NewSwagItemRepository creates a swag item repository and ensures its
// indexes
func NewSwagItemRepository(db *mongo.Database) *SwagItemRepository {
	repo := &SwagItemRepository{collection: db.Collection("swag_items")}
	repo.collection.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys:    bson.D{{Key: "sku", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return repo
}

func (r *SwagItemRepository) Save(ctx context.Context, item *domain.SwagItem) error {
	item.UpdatedAt = time.Now().UTC()
	opts := options.Update().SetUpsert(true)
	filter := bson.M{"sku": item.SKU}
	update := bson.M{"$set": item}
	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to save swag item: %w", err)
	}
	return nil
}

func (r *SwagItemRepository) Update(ctx context.Context, item *domain.SwagItem) error {
	item.UpdatedAt = time.Now().UTC()
	filter := bson.M{"sku": item.SKU}
	result, err := r.collection.ReplaceOne(ctx, filter, item)
	if err != nil {
		return fmt.Errorf("failed to update swag item: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrSwagItemNotFound
	}
	return nil
}

func (r *SwagItemRepository) FindBySKU(ctx context.Context, sku string) (*domain.SwagItem, error) {
	var item domain.SwagItem
	err := r.collection.FindOne(ctx, bson.M{"sku": sku}).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrSwagItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find swag item: %w", err)
	}
	return &item, nil
}

func (r *SwagItemRepository) FindAll(ctx context.Context, activeOnly bool) ([]*domain.SwagItem, error) {
	filter := bson.M{}
	if activeOnly {
		filter["active"] = true
	}

	opts := options.Find().SetSort(bson.D{{Key: "sku", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list swag items: %w", err)
	}
	defer cursor.Close(ctx)

	var items []*domain.SwagItem
	err = cursor.All(ctx, &items)
	return items, err
}

func (r *SwagItemRepository) Delete(ctx context.Context, sku string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"sku": sku})
	if err != nil {
		return fmt.Errorf("failed to delete swag item: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrSwagItemNotFound
	}
	return nil
}
