package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VitalsReading is a self-reported vitals entry: a blood pressure reading,
// a weight reading, or both. Status carries the classification derived at
// write time (BP category when blood pressure is present, otherwise the BMI
// category when weight and height allow it).
type VitalsReading struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MotherID primitive.ObjectID `bson:"motherId" json:"motherId"`

	Date time.Time `bson:"date" json:"date"`

	BloodPressure *BloodPressure `bson:"bloodPressure,omitempty" json:"bloodPressure,omitempty"`
	WeightKg      *float64       `bson:"weight,omitempty" json:"weight,omitempty"`
	HeightCm      *float64       `bson:"height,omitempty" json:"height,omitempty"`

	Status string `bson:"status,omitempty" json:"status,omitempty"`
	Notes  string `bson:"notes,omitempty" json:"notes,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
