package mongo

import (
	"context"
	"errors"
	"log"
	"time"

	"matricare/maternal-app/internal/domain"
	"matricare/maternal-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const scheduleCollectionName = "checkup_schedule"

// mongoScheduleRepository implements repository.ScheduleRepository.
type mongoScheduleRepository struct {
	collection *mongo.Collection
}

// NewMongoScheduleRepository creates a new scheduled-checkup repository backed by MongoDB.
func NewMongoScheduleRepository(db *mongo.Database) repository.ScheduleRepository {
	return &mongoScheduleRepository{
		collection: db.Collection(scheduleCollectionName),
	}
}

// Create inserts a new scheduled checkup.
func (r *mongoScheduleRepository) Create(ctx context.Context, scheduled *domain.ScheduledCheckup) (primitive.ObjectID, error) {
	if scheduled.MotherID == primitive.NilObjectID || scheduled.MidwifeID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("scheduled checkup requires motherId and midwifeId")
	}

	scheduled.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	if scheduled.Status == "" {
		scheduled.Status = domain.SchedulePending
	}
	if scheduled.Type == "" {
		scheduled.Type = domain.CheckupRoutine
	}
	scheduled.CreatedAt = now
	scheduled.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, scheduled)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted scheduled checkup ID")
	}

	return insertedID, nil
}

// GetByID retrieves a scheduled checkup by its ID.
func (r *mongoScheduleRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ScheduledCheckup, error) {
	var scheduled domain.ScheduledCheckup
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&scheduled)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &scheduled, nil
}

// GetByMidwifeID retrieves a midwife's scheduled checkups, optionally
// filtered by status (empty status means all), soonest first.
func (r *mongoScheduleRepository) GetByMidwifeID(ctx context.Context, midwifeID primitive.ObjectID, status domain.ScheduledCheckupStatus) ([]domain.ScheduledCheckup, error) {
	filter := bson.M{"midwifeId": midwifeID}
	if status != "" {
		filter["status"] = status
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "scheduledDate", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var scheduled []domain.ScheduledCheckup
	if err = cursor.All(ctx, &scheduled); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return scheduled, nil
}

// UpdateStatus moves a scheduled checkup through its lifecycle.
func (r *mongoScheduleRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.ScheduledCheckupStatus, completedDate *time.Time) error {
	set := bson.M{
		"status":    status,
		"updatedAt": time.Now().UTC(),
	}
	if completedDate != nil {
		set["completedDate"] = completedDate.UTC()
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureScheduleIndexes creates necessary indexes for the checkup_schedule collection.
func EnsureScheduleIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "midwifeId", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index(),
		},
		{
			// For reminder sweeps over pending checkups by date.
			Keys:    bson.D{{Key: "scheduledDate", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "motherId", Value: 1}},
			Options: options.Index(),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
