package service

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrInvalidID marks an identifier that is not a valid ObjectID hex string.
var ErrInvalidID = errors.New("invalid id")

// ParseObjectID converts a hex string (as carried in JWTs and URL params)
// into an ObjectID.
func ParseObjectID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return id, nil
}
