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

const (
	childCollectionName   = "child_records"
	growthCollectionName  = "growth_entries"
	vaccineCollectionName = "vaccine_records"
)

// mongoChildRepository implements repository.ChildRepository across the
// child, growth and vaccine collections.
type mongoChildRepository struct {
	children *mongo.Collection
	growth   *mongo.Collection
	vaccines *mongo.Collection
}

// NewMongoChildRepository creates a new child repository backed by MongoDB.
func NewMongoChildRepository(db *mongo.Database) repository.ChildRepository {
	return &mongoChildRepository{
		children: db.Collection(childCollectionName),
		growth:   db.Collection(growthCollectionName),
		vaccines: db.Collection(vaccineCollectionName),
	}
}

// Create inserts a new child record.
func (r *mongoChildRepository) Create(ctx context.Context, child *domain.ChildRecord) (primitive.ObjectID, error) {
	if child.MotherID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("child record requires motherId")
	}
	if child.Name == "" || child.DateOfBirth.IsZero() {
		return primitive.NilObjectID, errors.New("child name and date of birth are required")
	}

	child.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	child.CreatedAt = now
	child.UpdatedAt = now

	result, err := r.children.InsertOne(ctx, child)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted child ID")
	}

	return insertedID, nil
}

// GetByID retrieves a child record by its ID.
func (r *mongoChildRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ChildRecord, error) {
	var child domain.ChildRecord
	err := r.children.FindOne(ctx, bson.M{"_id": id}).Decode(&child)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &child, nil
}

// GetByMotherID retrieves all children registered by a mother.
func (r *mongoChildRepository) GetByMotherID(ctx context.Context, motherID primitive.ObjectID) ([]domain.ChildRecord, error) {
	cursor, err := r.children.Find(ctx, bson.M{"motherId": motherID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var children []domain.ChildRecord
	if err = cursor.All(ctx, &children); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return children, nil
}

// AddGrowthEntry inserts a growth measurement for a child.
func (r *mongoChildRepository) AddGrowthEntry(ctx context.Context, entry *domain.GrowthEntry) (primitive.ObjectID, error) {
	if entry.ChildID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("growth entry requires childId")
	}

	entry.ID = primitive.NewObjectID()
	entry.CreatedAt = time.Now().UTC()
	if entry.Date.IsZero() {
		entry.Date = entry.CreatedAt
	}

	result, err := r.growth.InsertOne(ctx, entry)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted growth entry ID")
	}

	return insertedID, nil
}

// GetGrowthEntries retrieves a child's growth history, newest first.
func (r *mongoChildRepository) GetGrowthEntries(ctx context.Context, childID primitive.ObjectID) ([]domain.GrowthEntry, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cursor, err := r.growth.Find(ctx, bson.M{"childId": childID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []domain.GrowthEntry
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// AddVaccineRecord schedules a vaccine dose for a child.
func (r *mongoChildRepository) AddVaccineRecord(ctx context.Context, record *domain.VaccineRecord) (primitive.ObjectID, error) {
	if record.ChildID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("vaccine record requires childId")
	}
	if record.Code == "" {
		return primitive.NilObjectID, errors.New("vaccine code is required")
	}

	record.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	record.CreatedAt = now
	record.UpdatedAt = now
	if record.Status == "" {
		record.Status = domain.VaccineDue
	}

	result, err := r.vaccines.InsertOne(ctx, record)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted vaccine record ID")
	}

	return insertedID, nil
}

// GetVaccineRecords retrieves a child's vaccine schedule, earliest due first.
func (r *mongoChildRepository) GetVaccineRecords(ctx context.Context, childID primitive.ObjectID) ([]domain.VaccineRecord, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "dueDate", Value: 1}})

	cursor, err := r.vaccines.Find(ctx, bson.M{"childId": childID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []domain.VaccineRecord
	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// MarkVaccineGiven records that a scheduled dose was administered.
func (r *mongoChildRepository) MarkVaccineGiven(ctx context.Context, id, providerID primitive.ObjectID, givenDate time.Time) (*domain.VaccineRecord, error) {
	filter := bson.M{"_id": id}
	update := bson.M{
		"$set": bson.M{
			"status":     domain.VaccineGiven,
			"givenDate":  givenDate,
			"providerId": providerID,
			"updatedAt":  time.Now().UTC(),
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var record domain.VaccineRecord
	err := r.vaccines.FindOneAndUpdate(ctx, filter, update, opts).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// CountVaccinesDueByChildIDs counts outstanding doses across the given children.
func (r *mongoChildRepository) CountVaccinesDueByChildIDs(ctx context.Context, childIDs []primitive.ObjectID) (int64, error) {
	if len(childIDs) == 0 {
		return 0, nil
	}
	filter := bson.M{
		"childId": bson.M{"$in": childIDs},
		"status":  domain.VaccineDue,
	}
	return r.vaccines.CountDocuments(ctx, filter)
}

// EnsureChildIndexes creates necessary indexes for the child-related collections.
func EnsureChildIndexes(ctx context.Context, db *mongo.Database) {
	collectionIndexes := map[string][]mongo.IndexModel{
		childCollectionName: {
			{Keys: bson.D{{Key: "motherId", Value: 1}}, Options: options.Index()},
		},
		growthCollectionName: {
			{Keys: bson.D{{Key: "childId", Value: 1}, {Key: "date", Value: -1}}, Options: options.Index()},
		},
		vaccineCollectionName: {
			{Keys: bson.D{{Key: "childId", Value: 1}, {Key: "dueDate", Value: 1}}, Options: options.Index()},
			{Keys: bson.D{{Key: "status", Value: 1}}, Options: options.Index()},
		},
	}

	for name, indexes := range collectionIndexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, indexes); err != nil {
			log.Printf("WARN: Failed to create indexes for collection %s: %v", name, err)
		}
	}
}
