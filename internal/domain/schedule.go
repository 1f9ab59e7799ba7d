package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ScheduledCheckupStatus type for the scheduled-checkup lifecycle
type ScheduledCheckupStatus string

const (
	SchedulePending     ScheduledCheckupStatus = "pending"
	ScheduleCompleted   ScheduledCheckupStatus = "completed"
	ScheduleMissed      ScheduledCheckupStatus = "missed"
	ScheduleRescheduled ScheduledCheckupStatus = "rescheduled"
)

// CheckupType categorizes a scheduled checkup.
type CheckupType string

const (
	CheckupRoutine   CheckupType = "routine"
	CheckupFollowup  CheckupType = "followup"
	CheckupEmergency CheckupType = "emergency"
	CheckupAntenatal CheckupType = "antenatal"
	CheckupPostnatal CheckupType = "postnatal"
)

// ScheduledCheckup is a midwife-booked future checkup for a mother. It is a
// planning record, separate from the WeeklyCheckup that gets written once
// the visit actually happens.
type ScheduledCheckup struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MotherID  primitive.ObjectID `bson:"motherId" json:"motherId"`
	MidwifeID primitive.ObjectID `bson:"midwifeId" json:"midwifeId"`

	ScheduledDate time.Time              `bson:"scheduledDate" json:"scheduledDate"`
	Type          CheckupType            `bson:"checkupType" json:"checkupType"`
	Status        ScheduledCheckupStatus `bson:"status" json:"status"`
	CompletedDate *time.Time             `bson:"completedDate,omitempty" json:"completedDate,omitempty"`
	Notes         string                 `bson:"notes,omitempty" json:"notes,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
