package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaternalRecord tracks a single pregnancy cycle for a mother.
// At most one live record exists per mother (unique index on motherId);
// the record is deleted when the cycle ends (e.g. after childbirth).
type MaternalRecord struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MotherID primitive.ObjectID `bson:"motherId" json:"motherId"`

	// LMPDate is the last menstrual period date, the pregnancy-dating
	// reference point. EDD is always LMPDate + 280 days; exactly one of
	// the two is supplied at creation and the other is derived.
	LMPDate time.Time `bson:"lmpDate" json:"lmpDate"`
	EDD     time.Time `bson:"edd" json:"edd"`

	// Parity is the number of prior births.
	Parity    int      `bson:"parity" json:"parity"`
	RiskFlags []string `bson:"riskFlags" json:"riskFlags"` // e.g. "pre-eclampsia-risk"; inert tags

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
