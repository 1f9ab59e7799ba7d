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

const vitalsCollectionName = "vitals_readings"

// mongoVitalsRepository implements repository.VitalsRepository.
type mongoVitalsRepository struct {
	collection *mongo.Collection
}

// NewMongoVitalsRepository creates a new vitals repository backed by MongoDB.
func NewMongoVitalsRepository(db *mongo.Database) repository.VitalsRepository {
	return &mongoVitalsRepository{
		collection: db.Collection(vitalsCollectionName),
	}
}

// Create inserts a new vitals reading.
func (r *mongoVitalsRepository) Create(ctx context.Context, reading *domain.VitalsReading) (primitive.ObjectID, error) {
	if reading.MotherID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("vitals reading requires motherId")
	}

	reading.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	if reading.Date.IsZero() {
		reading.Date = now
	}
	reading.CreatedAt = now

	result, err := r.collection.InsertOne(ctx, reading)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted vitals reading ID")
	}

	return insertedID, nil
}

// GetByMotherID retrieves a mother's vitals history, newest first.
func (r *mongoVitalsRepository) GetByMotherID(ctx context.Context, motherID primitive.ObjectID) ([]domain.VitalsReading, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"motherId": motherID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var readings []domain.VitalsReading
	if err = cursor.All(ctx, &readings); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return readings, nil
}

// EnsureVitalsIndexes creates necessary indexes for the vitals_readings collection.
func EnsureVitalsIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "motherId", Value: 1}, {Key: "date", Value: -1}},
			Options: options.Index(),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
