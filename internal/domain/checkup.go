package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Valid measurement ranges for a checkup. Values outside these bounds are
// rejected at input validation, never clamped.
const (
	MinSystolic  = 70
	MaxSystolic  = 250
	MinDiastolic = 40
	MaxDiastolic = 180
	MinWeightKg  = 30
	MaxWeightKg  = 200
	MinHeightCm  = 100
	MaxHeightCm  = 250
)

// BloodPressure holds one BP measurement.
type BloodPressure struct {
	Systolic  int `bson:"systolic" json:"systolic"`
	Diastolic int `bson:"diastolic" json:"diastolic"`
}

// WeeklyCheckup is a midwife-recorded checkup for a mother. The pair
// (motherId, year, weekNumber) is unique: at most one checkup per mother per
// ISO week, enforced by a unique compound index. A checkup is write-once;
// no update or delete operation exists for it.
type WeeklyCheckup struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MotherID   primitive.ObjectID `bson:"motherId" json:"motherId"`
	ProviderID primitive.ObjectID `bson:"providerId" json:"providerId"` // recording midwife/doctor

	CheckupDate time.Time `bson:"checkupDate" json:"checkupDate"`
	// WeekNumber and Year follow ISO-8601 week numbering derived from
	// CheckupDate. Year is the ISO year, which may differ from the calendar
	// year around New Year.
	WeekNumber int `bson:"weekNumber" json:"weekNumber"`
	Year       int `bson:"year" json:"year"`

	BloodPressure BloodPressure `bson:"bloodPressure" json:"bloodPressure"`
	WeightKg      float64       `bson:"weight" json:"weight"`
	HeightCm      *float64      `bson:"height,omitempty" json:"height,omitempty"`

	// PregnancyWeek is the gestational week at checkup time, when the mother
	// has a maternal record with an LMP date.
	PregnancyWeek *int   `bson:"pregnancyWeek,omitempty" json:"pregnancyWeek,omitempty"`
	Notes         string `bson:"notes,omitempty" json:"notes,omitempty"`

	LockedAt  time.Time `bson:"lockedAt" json:"lockedAt"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
