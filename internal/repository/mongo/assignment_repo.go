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

const assignmentCollectionName = "midwife_assignments"

// mongoAssignmentRepository implements repository.AssignmentRepository.
type mongoAssignmentRepository struct {
	collection *mongo.Collection
}

// NewMongoAssignmentRepository creates a new assignment repository backed by MongoDB.
func NewMongoAssignmentRepository(db *mongo.Database) repository.AssignmentRepository {
	return &mongoAssignmentRepository{
		collection: db.Collection(assignmentCollectionName),
	}
}

// Create inserts a new midwife-mother assignment. The partial unique index
// on the (midwifeId, motherId) pair rejects a duplicate active assignment
// atomically; the capacity bound is checked by the service before calling
// this.
func (r *mongoAssignmentRepository) Create(ctx context.Context, assignment *domain.MidwifeAssignment) (primitive.ObjectID, error) {
	if assignment.MidwifeID == primitive.NilObjectID || assignment.MotherID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("assignment requires midwifeId and motherId")
	}

	assignment.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	if assignment.AssignedDate.IsZero() {
		assignment.AssignedDate = now
	}
	if assignment.Status == "" {
		assignment.Status = domain.AssignmentActive
	}
	assignment.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, assignment)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrConflict
		}
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted assignment ID")
	}

	return insertedID, nil
}

// GetByID retrieves an assignment by its ID.
func (r *mongoAssignmentRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.MidwifeAssignment, error) {
	var assignment domain.MidwifeAssignment
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&assignment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &assignment, nil
}

// GetByMidwifeID retrieves a midwife's assignments, optionally filtered by
// status (empty status means all).
func (r *mongoAssignmentRepository) GetByMidwifeID(ctx context.Context, midwifeID primitive.ObjectID, status domain.AssignmentStatus) ([]domain.MidwifeAssignment, error) {
	filter := bson.M{"midwifeId": midwifeID}
	if status != "" {
		filter["status"] = status
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "assignedDate", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var assignments []domain.MidwifeAssignment
	if err = cursor.All(ctx, &assignments); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return assignments, nil
}

// CountActiveByMidwifeID counts a midwife's active assignments, for the
// capacity check.
func (r *mongoAssignmentRepository) CountActiveByMidwifeID(ctx context.Context, midwifeID primitive.ObjectID) (int64, error) {
	filter := bson.M{"midwifeId": midwifeID, "status": domain.AssignmentActive}
	return r.collection.CountDocuments(ctx, filter)
}

// UpdateStatus moves an assignment through its lifecycle (active ->
// completed/transferred).
func (r *mongoAssignmentRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.AssignmentStatus) error {
	filter := bson.M{"_id": id}
	update := bson.M{
		"$set": bson.M{
			"status":    status,
			"updatedAt": time.Now().UTC(),
		},
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

// assignmentIndexModels returns the index models for the midwife_assignments
// collection. Uniqueness of the (midwifeId, motherId) pair is scoped to
// active assignments so the same pair can be recreated after completion,
// e.g. for a later pregnancy.
func assignmentIndexModels() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			// One active assignment per (midwife, mother) pair.
			Keys: bson.D{
				{Key: "midwifeId", Value: 1},
				{Key: "motherId", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"status": string(domain.AssignmentActive)}),
		},
		{
			Keys:    bson.D{{Key: "midwifeId", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "motherId", Value: 1}},
			Options: options.Index(),
		},
	}
}

// EnsureAssignmentIndexes creates necessary indexes for the midwife_assignments collection.
func EnsureAssignmentIndexes(ctx context.Context, collection *mongo.Collection) {
	_, err := collection.Indexes().CreateMany(ctx, assignmentIndexModels())
	if err != nil {
		log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
