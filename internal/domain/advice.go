package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdviceType categorizes doctor advice for a mother.
type AdviceType string

const (
	AdviceGeneral    AdviceType = "general"
	AdviceMedication AdviceType = "medication"
	AdviceDiet       AdviceType = "diet"
	AdviceExercise   AdviceType = "exercise"
	AdviceEmergency  AdviceType = "emergency"
	AdviceFollowup   AdviceType = "followup"
)

// AdvicePriority ranks how urgent a piece of advice is.
type AdvicePriority string

const (
	PriorityLow    AdvicePriority = "low"
	PriorityMedium AdvicePriority = "medium"
	PriorityHigh   AdvicePriority = "high"
	PriorityUrgent AdvicePriority = "urgent"
)

// DoctorAdvice is a written recommendation from a doctor to a mother,
// optionally tied to a specific checkup and flagged for follow-up.
type DoctorAdvice struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DoctorID primitive.ObjectID `bson:"doctorId" json:"doctorId"`
	MotherID primitive.ObjectID `bson:"motherId" json:"motherId"`

	AdviceType AdviceType     `bson:"adviceType" json:"adviceType"`
	Subject    string         `bson:"subject" json:"subject"`
	Message    string         `bson:"message" json:"message"`
	Priority   AdvicePriority `bson:"priority" json:"priority"`

	IsRead bool       `bson:"isRead" json:"isRead"`
	ReadAt *time.Time `bson:"readAt,omitempty" json:"readAt,omitempty"`

	RelatedCheckupID *primitive.ObjectID `bson:"relatedCheckupId,omitempty" json:"relatedCheckupId,omitempty"`

	RequiresFollowup  bool       `bson:"requiresFollowup" json:"requiresFollowup"`
	FollowupDate      *time.Time `bson:"followupDate,omitempty" json:"followupDate,omitempty"`
	FollowupCompleted bool       `bson:"followupCompleted" json:"followupCompleted"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
