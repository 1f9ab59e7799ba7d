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

const messageCollectionName = "messages"

// mongoMessageRepository implements repository.MessageRepository.
type mongoMessageRepository struct {
	collection *mongo.Collection
}

// NewMongoMessageRepository creates a new message repository backed by MongoDB.
func NewMongoMessageRepository(db *mongo.Database) repository.MessageRepository {
	return &mongoMessageRepository{
		collection: db.Collection(messageCollectionName),
	}
}

// Create inserts a new message.
func (r *mongoMessageRepository) Create(ctx context.Context, message *domain.Message) (primitive.ObjectID, error) {
	if message.SenderID == primitive.NilObjectID || message.ReceiverID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("message requires senderId and receiverId")
	}
	if message.Body == "" {
		return primitive.NilObjectID, errors.New("message body is required")
	}

	message.ID = primitive.NewObjectID()
	message.CreatedAt = time.Now().UTC()
	if message.Type == "" {
		message.Type = domain.MessageText
	}

	result, err := r.collection.InsertOne(ctx, message)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted message ID")
	}

	return insertedID, nil
}

// GetByReceiverID retrieves all messages addressed to a user, newest first.
func (r *mongoMessageRepository) GetByReceiverID(ctx context.Context, receiverID primitive.ObjectID) ([]domain.Message, error) {
	return r.find(ctx, bson.M{"receiverId": receiverID})
}

// GetConversation retrieves the messages exchanged between two users, in
// either direction, newest first.
func (r *mongoMessageRepository) GetConversation(ctx context.Context, a, b primitive.ObjectID) ([]domain.Message, error) {
	filter := bson.M{
		"$or": []bson.M{
			{"senderId": a, "receiverId": b},
			{"senderId": b, "receiverId": a},
		},
	}
	return r.find(ctx, filter)
}

// MarkRead flags a message as read by its receiver and returns the updated
// document.
func (r *mongoMessageRepository) MarkRead(ctx context.Context, id, receiverID primitive.ObjectID) (*domain.Message, error) {
	filter := bson.M{"_id": id, "receiverId": receiverID}
	update := bson.M{"$set": bson.M{"isRead": true}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var message domain.Message
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&message)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &message, nil
}

func (r *mongoMessageRepository) find(ctx context.Context, filter bson.M) ([]domain.Message, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []domain.Message
	if err = cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return messages, nil
}

// EnsureMessageIndexes creates necessary indexes for the messages collection.
func EnsureMessageIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "receiverId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "senderId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
