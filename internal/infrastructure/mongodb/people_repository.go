package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mostafa-azimi/touring-app-sub000/internal/domain"
)

// ParticipantRepository persists tour participants
type ParticipantRepository struct {
	collection *mongo.Collection
}

// NewParticipantRepository creates a participant repository and ensures its
// indexes
func NewParticipantRepository(db *mongo.Database) *ParticipantRepository {
	repo := &ParticipantRepository{collection: db.Collection("participants")}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *ParticipantRepository) ensureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "tourId", Value: 1}, {Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "tourId", Value: 1}, {Key: "createdAt", Value: 1}}},
	}
	r.collection.Indexes().CreateMany(ctx, indexes)
}

func (r *ParticipantRepository) Save(ctx context.Context, participant *domain.Participant) error {
	if _, err := r.collection.InsertOne(ctx, participant); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateParticipantEmail
		}
		return fmt.Errorf("failed to insert participant: %w", err)
	}
	return nil
}

func (r *ParticipantRepository) SaveMany(ctx context.Context, participants []*domain.Participant) error {
	if len(participants) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(participants))
	for _, p := range participants {
		docs = append(docs, p)
	}
	if _, err := r.collection.InsertMany(ctx, docs); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateParticipantEmail
		}
		return fmt.Errorf("failed to insert participants: %w", err)
	}
	return nil
}

// FindByTourID returns the tour's participants in registration order. Order
// matters here: it fixes who receives which generated order.
func (r *ParticipantRepository) FindByTourID(ctx context.Context, tourID string) ([]*domain.Participant, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"tourId": tourID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	defer cursor.Close(ctx)

	var participants []*domain.Participant
	err = cursor.All(ctx, &participants)
	return participants, err
}

func (r *ParticipantRepository) ExistsByEmail(ctx context.Context, tourID, email string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"tourId": tourID, "email": email})
	if err != nil {
		return false, fmt.Errorf("failed to count participants: %w", err)
	}
	return count > 0, nil
}

func (r *ParticipantRepository) DeleteByTourID(ctx context.Context, tourID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"tourId": tourID})
	return err
}

// TeamMemberRepository persists tour hosts
type TeamMemberRepository struct {
	collection *mongo.Collection
}

// NewTeamMemberRepository creates a team member repository and ensures its
// indexes
func NewTeamMemberRepository(db *mongo.Database) *TeamMemberRepository {
	repo := &TeamMemberRepository{collection: db.Collection("team_members")}
	repo.collection.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys:    bson.D{{Key: "memberId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return repo
}

func (r *TeamMemberRepository) Save(ctx context.Context, member *domain.TeamMember) error {
	opts := options.Update().SetUpsert(true)
	filter := bson.M{"memberId": member.MemberID}
	update := bson.M{"$set": member}
	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to save team member: %w", err)
	}
	return nil
}

func (r *TeamMemberRepository) FindByMemberID(ctx context.Context, memberID string) (*domain.TeamMember, error) {
	var member domain.TeamMember
	err := r.collection.FindOne(ctx, bson.M{"memberId": memberID}).Decode(&member)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrTeamMemberNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find team member: %w", err)
	}
	return &member, nil
}

func (r *TeamMemberRepository) FindAll(ctx context.Context) ([]*domain.TeamMember, error) {
	opts := options.Find().SetSort(bson.D{{Key: "lastName", Value: 1}, {Key: "firstName", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}
	defer cursor.Close(ctx)

	var members []*domain.TeamMember
	err = cursor.All(ctx, &members)
	return members, err
}

func (r *TeamMemberRepository) Delete(ctx context.Context, memberID string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"memberId": memberID})
	if err != nil {
		return fmt.Errorf("failed to delete team member: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrTeamMemberNotFound
	}
	return nil
}

// ExtraCustomerRepository reads the filler identity pool. The pool is
// seeded once and ordered by position so the fill order never shifts.
type ExtraCustomerRepository struct {
	collection *mongo.Collection
}

// NewExtraCustomerRepository creates an extra customer repository
func NewExtraCustomerRepository(db *mongo.Database) *ExtraCustomerRepository {
	repo := &ExtraCustomerRepository{collection: db.Collection("extra_customers")}
	repo.collection.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys:    bson.D{{Key: "position", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return repo
}

func (r *ExtraCustomerRepository) FindAll(ctx context.Context) ([]*domain.ExtraCustomer, error) {
	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list extra customers: %w", err)
	}
	defer cursor.Close(ctx)

	var extras []*domain.ExtraCustomer
	err = cursor.All(ctx, &extras)
	return extras, err
}

// SeedDefaults inserts the default pool when the collection is empty
func (r *ExtraCustomerRepository) SeedDefaults(ctx context.Context) error {
	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("failed to count extra customers: %w", err)
	}
	if count > 0 {
		return nil
	}

	docs := make([]interface{}, 0, len(domain.DefaultExtraCustomers))
	for _, extra := range domain.DefaultExtraCustomers {
		docs = append(docs, extra)
	}
	if _, err := r.collection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to seed extra customers: %w", err)
	}
	return nil
}
