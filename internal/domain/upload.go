package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Upload stores metadata about a file uploaded by a user (a medical report
// PDF or a profile image). The actual file resides in S3.
type Upload struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID     primitive.ObjectID `bson:"ownerId" json:"ownerId"`
	S3ObjectKey string             `bson:"s3ObjectKey" json:"-"` // internal S3 key, not exposed
	FileName    string             `bson:"fileName" json:"fileName"`
	ContentType string             `bson:"contentType" json:"contentType"` // e.g. "application/pdf"
	Size        int64              `bson:"size" json:"size"`
	UploadedAt  time.Time          `bson:"uploadedAt" json:"uploadedAt"`
}
