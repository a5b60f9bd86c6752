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

// TourRepository persists tour aggregates in the tours collection. Tour
// numbers come from a counters collection so they survive restarts and
// never repeat.
type TourRepository struct {
	collection *mongo.Collection
	counters   *mongo.Collection
}

// NewTourRepository creates a tour repository and ensures its indexes
func NewTourRepository(db *mongo.Database) *TourRepository {
	repo := &TourRepository{
		collection: db.Collection("tours"),
		counters:   db.Collection("counters"),
	}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *TourRepository) ensureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "tourId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "tourNumber", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "scheduledFor", Value: 1}}},
	}
	r.collection.Indexes().CreateMany(ctx, indexes)
}

func (r *TourRepository) Save(ctx context.Context, tour *domain.Tour) error {
	if _, err := r.collection.InsertOne(ctx, tour); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("tour %s already exists: %w", tour.TourID, err)
		}
		return fmt.Errorf("failed to insert tour: %w", err)
	}
	return nil
}

func (r *TourRepository) Update(ctx context.Context, tour *domain.Tour) error {
	filter := bson.M{"tourId": tour.TourID}
	result, err := r.collection.ReplaceOne(ctx, filter, tour)
	if err != nil {
		return fmt.Errorf("failed to update tour: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrTourNotFound
	}
	return nil
}

func (r *TourRepository) FindByTourID(ctx context.Context, tourID string) (*domain.Tour, error) {
	var tour domain.Tour
	err := r.collection.FindOne(ctx, bson.M{"tourId": tourID}).Decode(&tour)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrTourNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find tour: %w", err)
	}
	return &tour, nil
}

func (r *TourRepository) FindAll(ctx context.Context, limit, offset int64) ([]*domain.Tour, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "scheduledFor", Value: -1}}).
		SetSkip(offset)
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list tours: %w", err)
	}
	defer cursor.Close(ctx)

	var tours []*domain.Tour
	err = cursor.All(ctx, &tours)
	return tours, err
}

func (r *TourRepository) FindByStatus(ctx context.Context, status domain.Status, limit int64) ([]*domain.Tour, error) {
	opts := options.Find().SetSort(bson.D{{Key: "scheduledFor", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := r.collection.Find(ctx, bson.M{"status": status}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list tours by status: %w", err)
	}
	defer cursor.Close(ctx)

	var tours []*domain.Tour
	err = cursor.All(ctx, &tours)
	return tours, err
}

// MarkFinalizing is the finalization gate: a conditional update that only
// matches tours still in an eligible status, so exactly one of any
// concurrent callers wins.
func (r *TourRepository) MarkFinalizing(ctx context.Context, tourID string) error {
	filter := bson.M{
		"tourId": tourID,
		"status": bson.M{"$in": []domain.Status{domain.StatusScheduled, domain.StatusValidated}},
	}
	update := bson.M{"$set": bson.M{
		"status":    domain.StatusFinalizing,
		"updatedAt": time.Now().UTC(),
	}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to mark tour finalizing: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrConcurrentUpdate
	}
	return nil
}

func (r *TourRepository) Delete(ctx context.Context, tourID string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"tourId": tourID})
	if err != nil {
		return fmt.Errorf("failed to delete tour: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrTourNotFound
	}
	return nil
}

// NextTourNumber atomically increments the tour counter, creating it at 1
// on first use.
func (r *TourRepository) NextTourNumber(ctx context.Context) (int, error) {
	filter := bson.M{"_id": "tourNumber"}
	update := bson.M{"$inc": bson.M{"seq": 1}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter struct {
		Seq int `bson:"seq"`
	}
	if err := r.counters.FindOneAndUpdate(ctx, filter, update, opts).Decode(&counter); err != nil {
		return 0, fmt.Errorf("failed to increment tour counter: %w", err)
	}
	return counter.Seq, nil
}
