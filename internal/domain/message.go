package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MessageType distinguishes plain text from system-generated messages.
type MessageType string

const (
	MessageText     MessageType = "text"
	MessageAlert    MessageType = "alert"
	MessageReminder MessageType = "reminder"
	MessageAdvice   MessageType = "advice"
)

// Message is a direct message between a caregiver and a mother.
type Message struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SenderID   primitive.ObjectID `bson:"senderId" json:"senderId"`
	ReceiverID primitive.ObjectID `bson:"receiverId" json:"receiverId"`
	Body       string             `bson:"message" json:"message"`
	Type       MessageType        `bson:"messageType" json:"messageType"`
	IsRead     bool               `bson:"isRead" json:"isRead"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}
