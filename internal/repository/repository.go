package repository

import (
	"context"
	"time"

	"matricare/maternal-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrConflict     = RepositoryError("conflict: record already exists")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	GetByRole(ctx context.Context, role domain.Role) ([]domain.User, error)
	SetRefreshToken(ctx context.Context, id primitive.ObjectID, token string) error
	SetProfileImageKey(ctx context.Context, id primitive.ObjectID, objectKey string) error
}

// MaternalRecordRepository manages pregnancy cycle records. A mother has at
// most one record; Create returns ErrConflict when one already exists.
type MaternalRecordRepository interface {
	Create(ctx context.Context, record *domain.MaternalRecord) (primitive.ObjectID, error)
	GetByMotherID(ctx context.Context, motherID primitive.ObjectID) (*domain.MaternalRecord, error)
	AddRiskFlag(ctx context.Context, motherID primitive.ObjectID, flag string) error
	DeleteByMotherID(ctx context.Context, motherID primitive.ObjectID) error
}

// CheckupRepository manages weekly checkups. Create must be atomic with
// respect to the (motherId, year, weekNumber) key: the unique index on that
// tuple, not a read-then-write check, closes the race between two concurrent
// creates for the same week. Checkups are write-once, so no update method
// exists.
type CheckupRepository interface {
	Create(ctx context.Context, checkup *domain.WeeklyCheckup) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WeeklyCheckup, error)
	GetByMotherID(ctx context.Context, motherID primitive.ObjectID) ([]domain.WeeklyCheckup, error)
	GetByProviderID(ctx context.Context, providerID primitive.ObjectID, page, limit int) ([]domain.WeeklyCheckup, int64, error)
	FindByMotherWeek(ctx context.Context, motherID primitive.ObjectID, year, week int) (*domain.WeeklyCheckup, error)
	CountByProviderWeek(ctx context.Context, providerID primitive.ObjectID, year, week int) (int64, error)
	DistinctMothersByWeek(ctx context.Context, year, week int) ([]primitive.ObjectID, error)
	LatestByMotherID(ctx context.Context, motherID primitive.ObjectID) (*domain.WeeklyCheckup, error)
}

// VitalsRepository manages self-reported vitals readings.
type VitalsRepository interface {
	Create(ctx context.Context, reading *domain.VitalsReading) (primitive.ObjectID, error)
	GetByMotherID(ctx context.Context, motherID primitive.ObjectID) ([]domain.VitalsReading, error)
}

// ScheduleRepository manages midwife-booked scheduled checkups.
type ScheduleRepository interface {
	Create(ctx context.Context, scheduled *domain.ScheduledCheckup) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ScheduledCheckup, error)
	GetByMidwifeID(ctx context.Context, midwifeID primitive.ObjectID, status domain.ScheduledCheckupStatus) ([]domain.ScheduledCheckup, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.ScheduledCheckupStatus, completedDate *time.Time) error
}

// AssignmentRepository manages midwife-mother assignments. Create returns
// ErrConflict for a duplicate active (midwifeId, motherId) pair.
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *domain.MidwifeAssignment) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.MidwifeAssignment, error)
	GetByMidwifeID(ctx context.Context, midwifeID primitive.ObjectID, status domain.AssignmentStatus) ([]domain.MidwifeAssignment, error)
	CountActiveByMidwifeID(ctx context.Context, midwifeID primitive.ObjectID) (int64, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.AssignmentStatus) error
}

// AppointmentRepository manages mother-doctor appointments.
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *domain.Appointment) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Appointment, error)
	GetByMotherID(ctx context.Context, motherID primitive.ObjectID) ([]domain.Appointment, error)
	GetByDoctorID(ctx context.Context, doctorID primitive.ObjectID) ([]domain.Appointment, error)
	GetUpcomingByMotherID(ctx context.Context, motherID primitive.ObjectID, after time.Time, limit int) ([]domain.Appointment, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.AppointmentStatus) error
}

// AdviceRepository manages doctor advice for mothers.
type AdviceRepository interface {
	Create(ctx context.Context, advice *domain.DoctorAdvice) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.DoctorAdvice, error)
	GetByMotherID(ctx context.Context, motherID primitive.ObjectID) ([]domain.DoctorAdvice, error)
	GetByDoctorID(ctx context.Context, doctorID primitive.ObjectID) ([]domain.DoctorAdvice, error)
	MarkRead(ctx context.Context, id, motherID primitive.ObjectID) (*domain.DoctorAdvice, error)
}

// MessageRepository manages direct messages.
type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) (primitive.ObjectID, error)
	GetByReceiverID(ctx context.Context, receiverID primitive.ObjectID) ([]domain.Message, error)
	GetConversation(ctx context.Context, a, b primitive.ObjectID) ([]domain.Message, error)
	MarkRead(ctx context.Context, id, receiverID primitive.ObjectID) (*domain.Message, error)
}

// ChildRepository manages child records with their growth entries and
// vaccine records (separate collections referencing the child).
type ChildRepository interface {
	Create(ctx context.Context, child *domain.ChildRecord) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ChildRecord, error)
	GetByMotherID(ctx context.Context, motherID primitive.ObjectID) ([]domain.ChildRecord, error)

	AddGrowthEntry(ctx context.Context, entry *domain.GrowthEntry) (primitive.ObjectID, error)
	GetGrowthEntries(ctx context.Context, childID primitive.ObjectID) ([]domain.GrowthEntry, error)

	AddVaccineRecord(ctx context.Context, record *domain.VaccineRecord) (primitive.ObjectID, error)
	GetVaccineRecords(ctx context.Context, childID primitive.ObjectID) ([]domain.VaccineRecord, error)
	MarkVaccineGiven(ctx context.Context, id, providerID primitive.ObjectID, givenDate time.Time) (*domain.VaccineRecord, error)
	CountVaccinesDueByChildIDs(ctx context.Context, childIDs []primitive.ObjectID) (int64, error)
}

// UploadRepository manages metadata of files stored in object storage.
type UploadRepository interface {
	Create(ctx context.Context, upload *domain.Upload) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Upload, error)
	GetByOwnerID(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Upload, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}
