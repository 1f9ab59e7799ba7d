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

const appointmentCollectionName = "appointments"

// mongoAppointmentRepository implements repository.AppointmentRepository.
type mongoAppointmentRepository struct {
	collection *mongo.Collection
}

// NewMongoAppointmentRepository creates a new appointment repository backed by MongoDB.
func NewMongoAppointmentRepository(db *mongo.Database) repository.AppointmentRepository {
	return &mongoAppointmentRepository{
		collection: db.Collection(appointmentCollectionName),
	}
}

// Create inserts a new appointment.
func (r *mongoAppointmentRepository) Create(ctx context.Context, appointment *domain.Appointment) (primitive.ObjectID, error) {
	if appointment.MotherID == primitive.NilObjectID || appointment.DoctorID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("appointment requires motherId and doctorId")
	}

	appointment.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	appointment.CreatedAt = now
	appointment.UpdatedAt = now
	if appointment.Status == "" {
		appointment.Status = domain.AppointmentPending
	}

	result, err := r.collection.InsertOne(ctx, appointment)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted appointment ID")
	}

	return insertedID, nil
}

// GetByID retrieves an appointment by its ID.
func (r *mongoAppointmentRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Appointment, error) {
	var appointment domain.Appointment
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&appointment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &appointment, nil
}

// GetByMotherID retrieves all of a mother's appointments, soonest first.
func (r *mongoAppointmentRepository) GetByMotherID(ctx context.Context, motherID primitive.ObjectID) ([]domain.Appointment, error) {
	return r.find(ctx, bson.M{"motherId": motherID})
}

// GetByDoctorID retrieves all of a doctor's appointments, soonest first.
func (r *mongoAppointmentRepository) GetByDoctorID(ctx context.Context, doctorID primitive.ObjectID) ([]domain.Appointment, error) {
	return r.find(ctx, bson.M{"doctorId": doctorID})
}

// GetUpcomingByMotherID retrieves the mother's next non-cancelled
// appointments after the given time.
func (r *mongoAppointmentRepository) GetUpcomingByMotherID(ctx context.Context, motherID primitive.ObjectID, after time.Time, limit int) ([]domain.Appointment, error) {
	filter := bson.M{
		"motherId":        motherID,
		"appointmentDate": bson.M{"$gte": after},
		"status":          bson.M{"$ne": domain.AppointmentCancelled},
	}
	findOptions := options.Find().
		SetSort(bson.D{{Key: "appointmentDate", Value: 1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var appointments []domain.Appointment
	if err = cursor.All(ctx, &appointments); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return appointments, nil
}

// UpdateStatus transitions an appointment's status.
func (r *mongoAppointmentRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.AppointmentStatus) error {
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

func (r *mongoAppointmentRepository) find(ctx context.Context, filter bson.M) ([]domain.Appointment, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "appointmentDate", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var appointments []domain.Appointment
	if err = cursor.All(ctx, &appointments); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return appointments, nil
}

// EnsureAppointmentIndexes creates necessary indexes for the appointments collection.
func EnsureAppointmentIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "motherId", Value: 1}, {Key: "appointmentDate", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "doctorId", Value: 1}, {Key: "appointmentDate", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}},
			Options: options.Index(),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
