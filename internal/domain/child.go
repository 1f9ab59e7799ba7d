package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChildRecord registers a child born to a mother. Growth entries and vaccine
// records reference the child by ID from their own collections rather than
// growing embedded arrays on this document.
type ChildRecord struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MotherID primitive.ObjectID `bson:"motherId" json:"motherId"`

	Name        string    `bson:"name" json:"name"`
	DateOfBirth time.Time `bson:"dob" json:"dob"`
	Gender      string    `bson:"gender" json:"gender"` // "male" or "female"

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// GrowthEntry is one growth measurement for a child.
type GrowthEntry struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ChildID primitive.ObjectID `bson:"childId" json:"childId"`

	Date     time.Time `bson:"date" json:"date"`
	WeightKg *float64  `bson:"weightKg,omitempty" json:"weightKg,omitempty"`
	HeightCm *float64  `bson:"heightCm,omitempty" json:"heightCm,omitempty"`
	MUACCm   *float64  `bson:"muacCm,omitempty" json:"muacCm,omitempty"` // mid-upper arm circumference

	Alerts []string `bson:"alerts,omitempty" json:"alerts,omitempty"` // e.g. "stunting-risk"

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// VaccineStatus tracks whether a scheduled vaccine has been given.
type VaccineStatus string

const (
	VaccineDue    VaccineStatus = "due"
	VaccineGiven  VaccineStatus = "given"
	VaccineMissed VaccineStatus = "missed"
)

// VaccineRecord is one scheduled or administered vaccine dose for a child.
type VaccineRecord struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ChildID primitive.ObjectID `bson:"childId" json:"childId"`

	Code       string              `bson:"code" json:"code"` // e.g. "BCG", "OPV1"
	DueDate    time.Time           `bson:"dueDate" json:"dueDate"`
	Status     VaccineStatus       `bson:"status" json:"status"`
	GivenDate  *time.Time          `bson:"givenDate,omitempty" json:"givenDate,omitempty"`
	ProviderID *primitive.ObjectID `bson:"providerId,omitempty" json:"providerId,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
