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

const adviceCollectionName = "doctor_advice"

// mongoAdviceRepository implements repository.AdviceRepository.
type mongoAdviceRepository struct {
	collection *mongo.Collection
}

// NewMongoAdviceRepository creates a new advice repository backed by MongoDB.
func NewMongoAdviceRepository(db *mongo.Database) repository.AdviceRepository {
	return &mongoAdviceRepository{
		collection: db.Collection(adviceCollectionName),
	}
}

// Create inserts a new piece of doctor advice.
func (r *mongoAdviceRepository) Create(ctx context.Context, advice *domain.DoctorAdvice) (primitive.ObjectID, error) {
	if advice.DoctorID == primitive.NilObjectID || advice.MotherID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("advice requires doctorId and motherId")
	}

	advice.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	advice.CreatedAt = now
	advice.UpdatedAt = now
	if advice.AdviceType == "" {
		advice.AdviceType = domain.AdviceGeneral
	}
	if advice.Priority == "" {
		advice.Priority = domain.PriorityMedium
	}

	result, err := r.collection.InsertOne(ctx, advice)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted advice ID")
	}

	return insertedID, nil
}

// GetByID retrieves a piece of advice by its ID.
func (r *mongoAdviceRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.DoctorAdvice, error) {
	var advice domain.DoctorAdvice
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&advice)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &advice, nil
}

// GetByMotherID retrieves all advice addressed to a mother, newest first.
func (r *mongoAdviceRepository) GetByMotherID(ctx context.Context, motherID primitive.ObjectID) ([]domain.DoctorAdvice, error) {
	return r.find(ctx, bson.M{"motherId": motherID})
}

// GetByDoctorID retrieves all advice a doctor has written, newest first.
func (r *mongoAdviceRepository) GetByDoctorID(ctx context.Context, doctorID primitive.ObjectID) ([]domain.DoctorAdvice, error) {
	return r.find(ctx, bson.M{"doctorId": doctorID})
}

// MarkRead flags advice as read by its mother and returns the updated
// document. The motherId in the filter doubles as the ownership check.
func (r *mongoAdviceRepository) MarkRead(ctx context.Context, id, motherID primitive.ObjectID) (*domain.DoctorAdvice, error) {
	now := time.Now().UTC()
	filter := bson.M{"_id": id, "motherId": motherID}
	update := bson.M{
		"$set": bson.M{
			"isRead":    true,
			"readAt":    now,
			"updatedAt": now,
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var advice domain.DoctorAdvice
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&advice)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &advice, nil
}

func (r *mongoAdviceRepository) find(ctx context.Context, filter bson.M) ([]domain.DoctorAdvice, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var advice []domain.DoctorAdvice
	if err = cursor.All(ctx, &advice); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return advice, nil
}

// EnsureAdviceIndexes creates necessary indexes for the doctor_advice collection.
func EnsureAdviceIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "motherId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "doctorId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
