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

const checkupCollectionName = "weekly_checkups"

// mongoCheckupRepository implements repository.CheckupRepository.
type mongoCheckupRepository struct {
	collection *mongo.Collection
}

// NewMongoCheckupRepository creates a new WeeklyCheckup repository backed by MongoDB.
func NewMongoCheckupRepository(db *mongo.Database) repository.CheckupRepository {
	return &mongoCheckupRepository{
		collection: db.Collection(checkupCollectionName),
	}
}

// Create inserts a new weekly checkup. The unique compound index on
// (motherId, year, weekNumber) is the authoritative duplicate guard: two
// concurrent creates for the same mother and week cannot both succeed, and
// the loser gets ErrConflict. Multiple server instances share this guarantee
// since the constraint lives at the storage layer.
func (r *mongoCheckupRepository) Create(ctx context.Context, checkup *domain.WeeklyCheckup) (primitive.ObjectID, error) {
	if checkup.MotherID == primitive.NilObjectID || checkup.ProviderID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("checkup requires motherId and providerId")
	}

	checkup.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	checkup.CreatedAt = now
	checkup.LockedAt = now

	result, err := r.collection.InsertOne(ctx, checkup)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrConflict
		}
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted checkup ID")
	}

	return insertedID, nil
}

// GetByID retrieves a checkup by its ID.
func (r *mongoCheckupRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WeeklyCheckup, error) {
	var checkup domain.WeeklyCheckup
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&checkup)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &checkup, nil
}

// GetByMotherID retrieves a mother's full checkup history, newest first.
func (r *mongoCheckupRepository) GetByMotherID(ctx context.Context, motherID primitive.ObjectID) ([]domain.WeeklyCheckup, error) {
	var checkups []domain.WeeklyCheckup
	filter := bson.M{"motherId": motherID}
	findOptions := options.Find().SetSort(bson.D{{Key: "checkupDate", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &checkups); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return checkups, nil
}

// GetByProviderID retrieves a provider's checkups, newest first, paginated.
// It also returns the total count for pagination metadata.
func (r *mongoCheckupRepository) GetByProviderID(ctx context.Context, providerID primitive.ObjectID, page, limit int) ([]domain.WeeklyCheckup, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	filter := bson.M{"providerId": providerID}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "checkupDate", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var checkups []domain.WeeklyCheckup
	if err = cursor.All(ctx, &checkups); err != nil {
		return nil, 0, err
	}
	if err = cursor.Err(); err != nil {
		return nil, 0, err
	}
	return checkups, total, nil
}

// FindByMotherWeek looks up the checkup for a mother in a specific ISO week.
func (r *mongoCheckupRepository) FindByMotherWeek(ctx context.Context, motherID primitive.ObjectID, year, week int) (*domain.WeeklyCheckup, error) {
	var checkup domain.WeeklyCheckup
	filter := bson.M{"motherId": motherID, "year": year, "weekNumber": week}

	err := r.collection.FindOne(ctx, filter).Decode(&checkup)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &checkup, nil
}

// CountByProviderWeek counts checkups a provider recorded in a given ISO week.
func (r *mongoCheckupRepository) CountByProviderWeek(ctx context.Context, providerID primitive.ObjectID, year, week int) (int64, error) {
	filter := bson.M{"providerId": providerID, "year": year, "weekNumber": week}
	return r.collection.CountDocuments(ctx, filter)
}

// DistinctMothersByWeek lists the mothers who already have a checkup in the
// given ISO week.
func (r *mongoCheckupRepository) DistinctMothersByWeek(ctx context.Context, year, week int) ([]primitive.ObjectID, error) {
	filter := bson.M{"year": year, "weekNumber": week}
	values, err := r.collection.Distinct(ctx, "motherId", filter)
	if err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(values))
	for _, v := range values {
		if id, ok := v.(primitive.ObjectID); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// LatestByMotherID returns the mother's most recent checkup.
func (r *mongoCheckupRepository) LatestByMotherID(ctx context.Context, motherID primitive.ObjectID) (*domain.WeeklyCheckup, error) {
	var checkup domain.WeeklyCheckup
	filter := bson.M{"motherId": motherID}
	findOptions := options.FindOne().SetSort(bson.D{{Key: "checkupDate", Value: -1}})

	err := r.collection.FindOne(ctx, filter, findOptions).Decode(&checkup)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &checkup, nil
}

// EnsureCheckupIndexes creates necessary indexes for the weekly_checkups collection.
func EnsureCheckupIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// One checkup per mother per ISO week. This is the invariant the
			// whole checkup flow leans on; it must stay unique.
			Keys: bson.D{
				{Key: "motherId", Value: 1},
				{Key: "year", Value: 1},
				{Key: "weekNumber", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "providerId", Value: 1}, {Key: "checkupDate", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "motherId", Value: 1}, {Key: "checkupDate", Value: -1}},
			Options: options.Index(),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
