package service

import (
	"context"
	"time"

	"matricare/maternal-app/internal/domain"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockUserRepository is a mock implementation of repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) SetRefreshToken(ctx context.Context, id primitive.ObjectID, token string) error {
	args := m.Called(ctx, id, token)
	return args.Error(0)
}

func (m *MockUserRepository) SetProfileImageKey(ctx context.Context, id primitive.ObjectID, objectKey string) error {
	args := m.Called(ctx, id, objectKey)
	return args.Error(0)
}

// MockMaternalRepository is a mock implementation of repository.MaternalRecordRepository
type MockMaternalRepository struct {
	mock.Mock
}

func (m *MockMaternalRepository) Create(ctx context.Context, record *domain.MaternalRecord) (primitive.ObjectID, error) {
	args := m.Called(ctx, record)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockMaternalRepository) GetByMotherID(ctx context.Context, motherID primitive.ObjectID) (*domain.MaternalRecord, error) {
	args := m.Called(ctx, motherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MaternalRecord), args.Error(1)
}

func (m *MockMaternalRepository) AddRiskFlag(ctx context.Context, motherID primitive.ObjectID, flag string) error {
	args := m.Called(ctx, motherID, flag)
	return args.Error(0)
}

func (m *MockMaternalRepository) DeleteByMotherID(ctx context.Context, motherID primitive.ObjectID) error {
	args := m.Called(ctx, motherID)
	return args.Error(0)
}

// MockCheckupRepository is a mock implementation of repository.CheckupRepository
type MockCheckupRepository struct {
	mock.Mock
}

func (m *MockCheckupRepository) Create(ctx context.Context, checkup *domain.WeeklyCheckup) (primitive.ObjectID, error) {
	args := m.Called(ctx, checkup)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockCheckupRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WeeklyCheckup, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WeeklyCheckup), args.Error(1)
}

func (m *MockCheckupRepository) GetByMotherID(ctx context.Context, motherID primitive.ObjectID) ([]domain.WeeklyCheckup, error) {
	args := m.Called(ctx, motherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WeeklyCheckup), args.Error(1)
}

func (m *MockCheckupRepository) GetByProviderID(ctx context.Context, providerID primitive.ObjectID, page, limit int) ([]domain.WeeklyCheckup, int64, error) {
	args := m.Called(ctx, providerID, page, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.WeeklyCheckup), args.Get(1).(int64), args.Error(2)
}

func (m *MockCheckupRepository) FindByMotherWeek(ctx context.Context, motherID primitive.ObjectID, year, week int) (*domain.WeeklyCheckup, error) {
	args := m.Called(ctx, motherID, year, week)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WeeklyCheckup), args.Error(1)
}

func (m *MockCheckupRepository) CountByProviderWeek(ctx context.Context, providerID primitive.ObjectID, year, week int) (int64, error) {
	args := m.Called(ctx, providerID, year, week)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCheckupRepository) DistinctMothersByWeek(ctx context.Context, year, week int) ([]primitive.ObjectID, error) {
	args := m.Called(ctx, year, week)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]primitive.ObjectID), args.Error(1)
}

func (m *MockCheckupRepository) LatestByMotherID(ctx context.Context, motherID primitive.ObjectID) (*domain.WeeklyCheckup, error) {
	args := m.Called(ctx, motherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WeeklyCheckup), args.Error(1)
}

// MockAssignmentRepository is a mock implementation of repository.AssignmentRepository
type MockAssignmentRepository struct {
	mock.Mock
}

func (m *MockAssignmentRepository) Create(ctx context.Context, assignment *domain.MidwifeAssignment) (primitive.ObjectID, error) {
	args := m.Called(ctx, assignment)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockAssignmentRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.MidwifeAssignment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MidwifeAssignment), args.Error(1)
}

func (m *MockAssignmentRepository) GetByMidwifeID(ctx context.Context, midwifeID primitive.ObjectID, status domain.AssignmentStatus) ([]domain.MidwifeAssignment, error) {
	args := m.Called(ctx, midwifeID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MidwifeAssignment), args.Error(1)
}

func (m *MockAssignmentRepository) CountActiveByMidwifeID(ctx context.Context, midwifeID primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, midwifeID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAssignmentRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.AssignmentStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// MockAdviceRepository is a mock implementation of repository.AdviceRepository
type MockAdviceRepository struct {
	mock.Mock
}

func (m *MockAdviceRepository) Create(ctx context.Context, advice *domain.DoctorAdvice) (primitive.ObjectID, error) {
	args := m.Called(ctx, advice)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockAdviceRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.DoctorAdvice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DoctorAdvice), args.Error(1)
}

func (m *MockAdviceRepository) GetByMotherID(ctx context.Context, motherID primitive.ObjectID) ([]domain.DoctorAdvice, error) {
	args := m.Called(ctx, motherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DoctorAdvice), args.Error(1)
}

func (m *MockAdviceRepository) GetByDoctorID(ctx context.Context, doctorID primitive.ObjectID) ([]domain.DoctorAdvice, error) {
	args := m.Called(ctx, doctorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DoctorAdvice), args.Error(1)
}

func (m *MockAdviceRepository) MarkRead(ctx context.Context, id, motherID primitive.ObjectID) (*domain.DoctorAdvice, error) {
	args := m.Called(ctx, id, motherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DoctorAdvice), args.Error(1)
}

// MockAppointmentRepository is a mock implementation of repository.AppointmentRepository
type MockAppointmentRepository struct {
	mock.Mock
}

func (m *MockAppointmentRepository) Create(ctx context.Context, appointment *domain.Appointment) (primitive.ObjectID, error) {
	args := m.Called(ctx, appointment)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockAppointmentRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) GetByMotherID(ctx context.Context, motherID primitive.ObjectID) ([]domain.Appointment, error) {
	args := m.Called(ctx, motherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) GetByDoctorID(ctx context.Context, doctorID primitive.ObjectID) ([]domain.Appointment, error) {
	args := m.Called(ctx, doctorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) GetUpcomingByMotherID(ctx context.Context, motherID primitive.ObjectID, after time.Time, limit int) ([]domain.Appointment, error) {
	args := m.Called(ctx, motherID, after, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.AppointmentStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// MockFileStorage is a mock implementation of storage.FileStorage
type MockFileStorage struct {
	mock.Mock
}

func (m *MockFileStorage) GeneratePresignedUploadURL(ctx context.Context, objectKey string, contentType string, expires time.Duration) (string, error) {
	args := m.Called(ctx, objectKey, contentType, expires)
	return args.String(0), args.Error(1)
}

func (m *MockFileStorage) GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error) {
	args := m.Called(ctx, objectKey, expires)
	return args.String(0), args.Error(1)
}

func (m *MockFileStorage) DeleteObject(ctx context.Context, objectKey string) error {
	args := m.Called(ctx, objectKey)
	return args.Error(0)
}

// MockUploadRepository is a mock implementation of repository.UploadRepository
type MockUploadRepository struct {
	mock.Mock
}

func (m *MockUploadRepository) Create(ctx context.Context, upload *domain.Upload) (primitive.ObjectID, error) {
	args := m.Called(ctx, upload)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockUploadRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Upload, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Upload), args.Error(1)
}

func (m *MockUploadRepository) GetByOwnerID(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Upload, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Upload), args.Error(1)
}

func (m *MockUploadRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockVitalsRepository is a mock implementation of repository.VitalsRepository
type MockVitalsRepository struct {
	mock.Mock
}

func (m *MockVitalsRepository) Create(ctx context.Context, reading *domain.VitalsReading) (primitive.ObjectID, error) {
	args := m.Called(ctx, reading)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockVitalsRepository) GetByMotherID(ctx context.Context, motherID primitive.ObjectID) ([]domain.VitalsReading, error) {
	args := m.Called(ctx, motherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VitalsReading), args.Error(1)
}

// MockScheduleRepository is a mock implementation of repository.ScheduleRepository
type MockScheduleRepository struct {
	mock.Mock
}

func (m *MockScheduleRepository) Create(ctx context.Context, scheduled *domain.ScheduledCheckup) (primitive.ObjectID, error) {
	args := m.Called(ctx, scheduled)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockScheduleRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ScheduledCheckup, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScheduledCheckup), args.Error(1)
}

func (m *MockScheduleRepository) GetByMidwifeID(ctx context.Context, midwifeID primitive.ObjectID, status domain.ScheduledCheckupStatus) ([]domain.ScheduledCheckup, error) {
	args := m.Called(ctx, midwifeID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ScheduledCheckup), args.Error(1)
}

func (m *MockScheduleRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.ScheduledCheckupStatus, completedDate *time.Time) error {
	args := m.Called(ctx, id, status, completedDate)
	return args.Error(0)
}
