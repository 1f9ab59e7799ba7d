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

const maternalCollectionName = "maternal_records"

// mongoMaternalRepository implements repository.MaternalRecordRepository.
type mongoMaternalRepository struct {
	collection *mongo.Collection
}

// NewMongoMaternalRepository creates a new MaternalRecord repository backed by MongoDB.
func NewMongoMaternalRepository(db *mongo.Database) repository.MaternalRecordRepository {
	return &mongoMaternalRepository{
		collection: db.Collection(maternalCollectionName),
	}
}

// Create inserts a new maternal record. The unique index on motherId makes
// a second live record for the same mother a conflict rather than a
// duplicate, regardless of interleaving with concurrent creates.
func (r *mongoMaternalRepository) Create(ctx context.Context, record *domain.MaternalRecord) (primitive.ObjectID, error) {
	if record.MotherID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("maternal record requires motherId")
	}

	record.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	record.CreatedAt = now
	record.UpdatedAt = now
	if record.RiskFlags == nil {
		record.RiskFlags = []string{}
	}

	result, err := r.collection.InsertOne(ctx, record)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrConflict
		}
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted maternal record ID")
	}

	return insertedID, nil
}

// GetByMotherID retrieves the live maternal record for a mother.
func (r *mongoMaternalRepository) GetByMotherID(ctx context.Context, motherID primitive.ObjectID) (*domain.MaternalRecord, error) {
	var record domain.MaternalRecord
	filter := bson.M{"motherId": motherID}

	err := r.collection.FindOne(ctx, filter).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// AddRiskFlag appends a risk tag to the mother's record. $addToSet keeps the
// tag set free of duplicates.
func (r *mongoMaternalRepository) AddRiskFlag(ctx context.Context, motherID primitive.ObjectID, flag string) error {
	filter := bson.M{"motherId": motherID}
	update := bson.M{
		"$addToSet": bson.M{"riskFlags": flag},
		"$set":      bson.M{"updatedAt": time.Now().UTC()},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteByMotherID removes the mother's maternal record, closing the cycle.
func (r *mongoMaternalRepository) DeleteByMotherID(ctx context.Context, motherID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"motherId": motherID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureMaternalIndexes creates necessary indexes for the maternal_records collection.
func EnsureMaternalIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// One live pregnancy cycle per mother.
			Keys:    bson.D{{Key: "motherId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
