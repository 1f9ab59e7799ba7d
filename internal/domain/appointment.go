package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AppointmentType categorizes what the visit is for.
type AppointmentType string

const (
	AppointmentCheckup     AppointmentType = "checkup"
	AppointmentUltrasound  AppointmentType = "ultrasound"
	AppointmentFollowup    AppointmentType = "followup"
	AppointmentEmergency   AppointmentType = "emergency"
	AppointmentVaccination AppointmentType = "vaccination"
)

// AppointmentStatus tracks the state of an appointment.
type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "pending"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

// Appointment is a scheduled visit between a mother and a doctor.
type Appointment struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MotherID primitive.ObjectID `bson:"motherId" json:"motherId"`
	DoctorID primitive.ObjectID `bson:"doctorId" json:"doctorId"`

	Date     time.Time         `bson:"appointmentDate" json:"appointmentDate"`
	TimeSlot string            `bson:"appointmentTime" json:"appointmentTime"` // e.g. "10:30"
	Type     AppointmentType   `bson:"type" json:"type"`
	Status   AppointmentStatus `bson:"status" json:"status"`
	Notes    string            `bson:"notes,omitempty" json:"notes,omitempty"`
	Location string            `bson:"location,omitempty" json:"location,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
