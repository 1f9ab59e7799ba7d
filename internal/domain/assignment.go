package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AssignmentStatus type for the midwife-mother assignment lifecycle
type AssignmentStatus string

const (
	AssignmentActive      AssignmentStatus = "active"
	AssignmentCompleted   AssignmentStatus = "completed"
	AssignmentTransferred AssignmentStatus = "transferred"
)

// MaxActiveMothersPerMidwife caps how many mothers a midwife may have
// actively assigned at once.
const MaxActiveMothersPerMidwife = 20

// MidwifeAssignment links a mother to her caring midwife. The pair
// (midwifeId, motherId) is unique among active assignments; once an
// assignment is completed or transferred the same pair can be created
// again for a later pregnancy.
type MidwifeAssignment struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MidwifeID    primitive.ObjectID `bson:"midwifeId" json:"midwifeId"`
	MotherID     primitive.ObjectID `bson:"motherId" json:"motherId"`
	AssignedDate time.Time          `bson:"assignedDate" json:"assignedDate"`
	Status       AssignmentStatus   `bson:"status" json:"status"`
	Notes        string             `bson:"notes,omitempty" json:"notes,omitempty"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
