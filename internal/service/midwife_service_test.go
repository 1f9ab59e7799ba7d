package service

import (
	"context"
	"testing"
	"time"

	"matricare/maternal-app/internal/domain"
	"matricare/maternal-app/internal/pregnancy"
	"matricare/maternal-app/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newMidwifeServiceForTest() (MidwifeService, *MockUserRepository, *MockAssignmentRepository, *MockCheckupRepository, *MockMaternalRepository, *MockAdviceRepository) {
	userRepo := new(MockUserRepository)
	assignmentRepo := new(MockAssignmentRepository)
	checkupRepo := new(MockCheckupRepository)
	maternalRepo := new(MockMaternalRepository)
	adviceRepo := new(MockAdviceRepository)
	svc := NewMidwifeService(userRepo, assignmentRepo, checkupRepo, maternalRepo, adviceRepo, new(MockScheduleRepository))
	return svc, userRepo, assignmentRepo, checkupRepo, maternalRepo, adviceRepo
}

func TestAssignMotherByEmail_Success(t *testing.T) {
	svc, userRepo, assignmentRepo, _, _, _ := newMidwifeServiceForTest()
	midwifeID := primitive.NewObjectID()
	mother := &domain.User{ID: primitive.NewObjectID(), Email: "amina@example.com", Role: domain.RoleMother}

	userRepo.On("GetByEmail", mock.Anything, "amina@example.com").Return(mother, nil)
	assignmentRepo.On("CountActiveByMidwifeID", mock.Anything, midwifeID).Return(int64(5), nil)
	assignmentRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.MidwifeAssignment")).Return(primitive.NewObjectID(), nil)

	assignment, err := svc.AssignMotherByEmail(context.Background(), midwifeID, "amina@example.com", "first visit done")
	require.NoError(t, err)
	assert.Equal(t, mother.ID, assignment.MotherID)
	assert.Equal(t, midwifeID, assignment.MidwifeID)
	assert.Equal(t, domain.AssignmentActive, assignment.Status)
	assignmentRepo.AssertExpectations(t)
}

func TestAssignMotherByEmail_AtCapacity(t *testing.T) {
	svc, userRepo, assignmentRepo, _, _, _ := newMidwifeServiceForTest()
	midwifeID := primitive.NewObjectID()
	mother := &domain.User{ID: primitive.NewObjectID(), Email: "amina@example.com", Role: domain.RoleMother}

	userRepo.On("GetByEmail", mock.Anything, "amina@example.com").Return(mother, nil)
	assignmentRepo.On("CountActiveByMidwifeID", mock.Anything, midwifeID).Return(int64(domain.MaxActiveMothersPerMidwife), nil)

	_, err := svc.AssignMotherByEmail(context.Background(), midwifeID, "amina@example.com", "")
	assert.ErrorIs(t, err, ErrMidwifeAtCapacity)
	assignmentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAssignMotherByEmail_LastFreeSlotSucceeds(t *testing.T) {
	svc, userRepo, assignmentRepo, _, _, _ := newMidwifeServiceForTest()
	midwifeID := primitive.NewObjectID()
	mother := &domain.User{ID: primitive.NewObjectID(), Email: "amina@example.com", Role: domain.RoleMother}

	userRepo.On("GetByEmail", mock.Anything, "amina@example.com").Return(mother, nil)
	assignmentRepo.On("CountActiveByMidwifeID", mock.Anything, midwifeID).Return(int64(domain.MaxActiveMothersPerMidwife-1), nil)
	assignmentRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.MidwifeAssignment")).Return(primitive.NewObjectID(), nil)

	_, err := svc.AssignMotherByEmail(context.Background(), midwifeID, "amina@example.com", "")
	assert.NoError(t, err)
}

func TestAssignMotherByEmail_DuplicatePair(t *testing.T) {
	svc, userRepo, assignmentRepo, _, _, _ := newMidwifeServiceForTest()
	midwifeID := primitive.NewObjectID()
	mother := &domain.User{ID: primitive.NewObjectID(), Email: "amina@example.com", Role: domain.RoleMother}

	userRepo.On("GetByEmail", mock.Anything, "amina@example.com").Return(mother, nil)
	assignmentRepo.On("CountActiveByMidwifeID", mock.Anything, midwifeID).Return(int64(3), nil)
	assignmentRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.MidwifeAssignment")).Return(primitive.NilObjectID, repository.ErrConflict)

	_, err := svc.AssignMotherByEmail(context.Background(), midwifeID, "amina@example.com", "")
	assert.ErrorIs(t, err, ErrAlreadyAssigned)
}

func TestAssignMotherByEmail_NotAMother(t *testing.T) {
	svc, userRepo, _, _, _, _ := newMidwifeServiceForTest()
	doctor := &domain.User{ID: primitive.NewObjectID(), Email: "dr@example.com", Role: domain.RoleDoctor}

	userRepo.On("GetByEmail", mock.Anything, "dr@example.com").Return(doctor, nil)

	_, err := svc.AssignMotherByEmail(context.Background(), primitive.NewObjectID(), "dr@example.com", "")
	assert.ErrorIs(t, err, ErrNotMotherRole)
}

func TestAssignMotherByEmail_MotherMissing(t *testing.T) {
	svc, userRepo, _, _, _, _ := newMidwifeServiceForTest()

	userRepo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, repository.ErrNotFound)

	_, err := svc.AssignMotherByEmail(context.Background(), primitive.NewObjectID(), "ghost@example.com", "")
	assert.ErrorIs(t, err, ErrMotherNotFound)
}

func TestCompleteAssignment_OwnershipEnforced(t *testing.T) {
	svc, _, assignmentRepo, _, _, _ := newMidwifeServiceForTest()
	owner := primitive.NewObjectID()
	other := primitive.NewObjectID()
	assignmentID := primitive.NewObjectID()

	assignmentRepo.On("GetByID", mock.Anything, assignmentID).Return(&domain.MidwifeAssignment{
		ID:        assignmentID,
		MidwifeID: owner,
		Status:    domain.AssignmentActive,
	}, nil)

	err := svc.CompleteAssignment(context.Background(), other, assignmentID)
	assert.ErrorIs(t, err, ErrAssignmentAccessDenied)
	assignmentRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateCheckup_Success(t *testing.T) {
	svc, userRepo, _, checkupRepo, maternalRepo, _ := newMidwifeServiceForTest()
	midwifeID := primitive.NewObjectID()
	motherID := primitive.NewObjectID()
	year, week := pregnancy.CheckupWeek(time.Now().UTC())

	userRepo.On("GetByID", mock.Anything, motherID).Return(&domain.User{ID: motherID, Role: domain.RoleMother}, nil)
	checkupRepo.On("FindByMotherWeek", mock.Anything, motherID, year, week).Return(nil, repository.ErrNotFound)
	lmp := time.Now().UTC().AddDate(0, 0, -20*7)
	maternalRepo.On("GetByMotherID", mock.Anything, motherID).Return(&domain.MaternalRecord{
		MotherID: motherID,
		LMPDate:  lmp,
		EDD:      pregnancy.EDDFromLMP(lmp),
	}, nil)
	checkupRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.WeeklyCheckup")).Return(primitive.NewObjectID(), nil)

	height := 165.0
	details, err := svc.CreateCheckup(context.Background(), midwifeID, CheckupParams{
		MotherID:  motherID,
		Systolic:  142,
		Diastolic: 85,
		WeightKg:  68,
		HeightCm:  &height,
	})
	require.NoError(t, err)

	// The stored bucket must come from the shared week derivation.
	assert.Equal(t, year, details.Year)
	assert.Equal(t, week, details.WeekNumber)
	assert.Equal(t, midwifeID, details.ProviderID)
	assert.Equal(t, pregnancy.BPHigh, details.BPStatus)
	require.NotNil(t, details.PregnancyWeek)
	assert.Equal(t, 20, *details.PregnancyWeek)
	require.NotNil(t, details.BMI)
	assert.Equal(t, pregnancy.BMINormal, details.BMI.Category)
}

func TestCreateCheckup_WeekAlreadyTaken(t *testing.T) {
	svc, userRepo, _, checkupRepo, _, _ := newMidwifeServiceForTest()
	motherID := primitive.NewObjectID()
	year, week := pregnancy.CheckupWeek(time.Now().UTC())

	userRepo.On("GetByID", mock.Anything, motherID).Return(&domain.User{ID: motherID, Role: domain.RoleMother}, nil)
	checkupRepo.On("FindByMotherWeek", mock.Anything, motherID, year, week).Return(&domain.WeeklyCheckup{MotherID: motherID}, nil)

	_, err := svc.CreateCheckup(context.Background(), primitive.NewObjectID(), CheckupParams{
		MotherID:  motherID,
		Systolic:  120,
		Diastolic: 80,
		WeightKg:  60,
	})
	assert.ErrorIs(t, err, ErrCheckupWeekTaken)
	checkupRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateCheckup_ConcurrentInsertLosesAsConflict(t *testing.T) {
	// The pre-check passed but another midwife's insert won the unique index
	// race; the storage conflict must surface as the same error.
	svc, userRepo, _, checkupRepo, maternalRepo, _ := newMidwifeServiceForTest()
	motherID := primitive.NewObjectID()
	year, week := pregnancy.CheckupWeek(time.Now().UTC())

	userRepo.On("GetByID", mock.Anything, motherID).Return(&domain.User{ID: motherID, Role: domain.RoleMother}, nil)
	checkupRepo.On("FindByMotherWeek", mock.Anything, motherID, year, week).Return(nil, repository.ErrNotFound)
	maternalRepo.On("GetByMotherID", mock.Anything, motherID).Return(nil, repository.ErrNotFound)
	checkupRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.WeeklyCheckup")).Return(primitive.NilObjectID, repository.ErrConflict)

	_, err := svc.CreateCheckup(context.Background(), primitive.NewObjectID(), CheckupParams{
		MotherID:  motherID,
		Systolic:  120,
		Diastolic: 80,
		WeightKg:  60,
	})
	assert.ErrorIs(t, err, ErrCheckupWeekTaken)
}

func TestCreateCheckup_RejectsOutOfRangeVitals(t *testing.T) {
	svc, _, _, checkupRepo, _, _ := newMidwifeServiceForTest()
	motherID := primitive.NewObjectID()

	tests := []struct {
		name   string
		params CheckupParams
	}{
		{"systolic too high", CheckupParams{MotherID: motherID, Systolic: 260, Diastolic: 80, WeightKg: 60}},
		{"systolic too low", CheckupParams{MotherID: motherID, Systolic: 60, Diastolic: 80, WeightKg: 60}},
		{"diastolic too high", CheckupParams{MotherID: motherID, Systolic: 120, Diastolic: 190, WeightKg: 60}},
		{"weight too low", CheckupParams{MotherID: motherID, Systolic: 120, Diastolic: 80, WeightKg: 25}},
		{"weight too high", CheckupParams{MotherID: motherID, Systolic: 120, Diastolic: 80, WeightKg: 210}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateCheckup(context.Background(), primitive.NewObjectID(), tt.params)
			assert.ErrorIs(t, err, ErrVitalsOutOfRange)
		})
	}
	checkupRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateCheckup_RejectsOutOfRangeHeight(t *testing.T) {
	svc, _, _, _, _, _ := newMidwifeServiceForTest()
	short := 90.0

	_, err := svc.CreateCheckup(context.Background(), primitive.NewObjectID(), CheckupParams{
		MotherID:  primitive.NewObjectID(),
		Systolic:  120,
		Diastolic: 80,
		WeightKg:  60,
		HeightCm:  &short,
	})
	assert.ErrorIs(t, err, ErrVitalsOutOfRange)
}

func TestGetDashboard_CountsMissedMothers(t *testing.T) {
	svc, userRepo, _, checkupRepo, _, _ := newMidwifeServiceForTest()
	midwifeID := primitive.NewObjectID()
	year, week := pregnancy.CheckupWeek(time.Now())

	mothers := []domain.User{
		{ID: primitive.NewObjectID(), Role: domain.RoleMother},
		{ID: primitive.NewObjectID(), Role: domain.RoleMother},
		{ID: primitive.NewObjectID(), Role: domain.RoleMother},
	}
	userRepo.On("GetByRole", mock.Anything, domain.RoleMother).Return(mothers, nil)
	checkupRepo.On("CountByProviderWeek", mock.Anything, midwifeID, year, week).Return(int64(2), nil)
	checkupRepo.On("DistinctMothersByWeek", mock.Anything, year, week).Return([]primitive.ObjectID{mothers[0].ID, mothers[1].ID}, nil)

	dashboard, err := svc.GetDashboard(context.Background(), midwifeID)
	require.NoError(t, err)
	assert.Equal(t, year, dashboard.CurrentYear)
	assert.Equal(t, week, dashboard.CurrentWeek)
	assert.Equal(t, 3, dashboard.TotalMothers)
	assert.Equal(t, int64(2), dashboard.CheckupsThisWeek)
	assert.Equal(t, 1, dashboard.MothersMissedCheckup)
}

func TestGetMotherDetails_FlagsCurrentWeekCheckup(t *testing.T) {
	svc, userRepo, _, checkupRepo, maternalRepo, adviceRepo := newMidwifeServiceForTest()
	motherID := primitive.NewObjectID()
	year, week := pregnancy.CheckupWeek(time.Now())

	userRepo.On("GetByID", mock.Anything, motherID).Return(&domain.User{ID: motherID, Role: domain.RoleMother}, nil)
	maternalRepo.On("GetByMotherID", mock.Anything, motherID).Return(nil, repository.ErrNotFound)
	checkupRepo.On("GetByMotherID", mock.Anything, motherID).Return([]domain.WeeklyCheckup{}, nil)
	adviceRepo.On("GetByMotherID", mock.Anything, motherID).Return([]domain.DoctorAdvice{}, nil)
	checkupRepo.On("FindByMotherWeek", mock.Anything, motherID, year, week).Return(&domain.WeeklyCheckup{MotherID: motherID}, nil)

	details, err := svc.GetMotherDetails(context.Background(), primitive.NewObjectID(), motherID)
	require.NoError(t, err)
	assert.True(t, details.HasCheckupThisWeek)
	assert.Nil(t, details.MaternalRecord)
}

func newScheduleServiceForTest() (MidwifeService, *MockAssignmentRepository, *MockScheduleRepository) {
	assignmentRepo := new(MockAssignmentRepository)
	scheduleRepo := new(MockScheduleRepository)
	svc := NewMidwifeService(new(MockUserRepository), assignmentRepo, new(MockCheckupRepository), new(MockMaternalRepository), new(MockAdviceRepository), scheduleRepo)
	return svc, assignmentRepo, scheduleRepo
}

func TestScheduleCheckup_AssignedMother(t *testing.T) {
	svc, assignmentRepo, scheduleRepo := newScheduleServiceForTest()
	midwifeID := primitive.NewObjectID()
	motherID := primitive.NewObjectID()
	date := time.Now().Add(72 * time.Hour)

	assignmentRepo.On("GetByMidwifeID", mock.Anything, midwifeID, domain.AssignmentActive).
		Return([]domain.MidwifeAssignment{{MidwifeID: midwifeID, MotherID: motherID}}, nil)
	scheduleRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.ScheduledCheckup")).
		Return(primitive.NewObjectID(), nil)

	scheduled, err := svc.ScheduleCheckup(context.Background(), midwifeID, motherID, date, domain.CheckupAntenatal, "36-week visit")

	require.NoError(t, err)
	assert.Equal(t, domain.SchedulePending, scheduled.Status)
	assert.Equal(t, domain.CheckupAntenatal, scheduled.Type)
	assert.False(t, scheduled.ID.IsZero())
	scheduleRepo.AssertExpectations(t)
}

func TestScheduleCheckup_MotherNotInCaseload(t *testing.T) {
	svc, assignmentRepo, scheduleRepo := newScheduleServiceForTest()
	midwifeID := primitive.NewObjectID()

	assignmentRepo.On("GetByMidwifeID", mock.Anything, midwifeID, domain.AssignmentActive).
		Return([]domain.MidwifeAssignment{}, nil)

	_, err := svc.ScheduleCheckup(context.Background(), midwifeID, primitive.NewObjectID(), time.Now().Add(24*time.Hour), domain.CheckupRoutine, "")

	assert.ErrorIs(t, err, ErrMotherNotAssigned)
	scheduleRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCompleteScheduledCheckup(t *testing.T) {
	svc, _, scheduleRepo := newScheduleServiceForTest()
	midwifeID := primitive.NewObjectID()
	scheduleID := primitive.NewObjectID()

	scheduleRepo.On("GetByID", mock.Anything, scheduleID).
		Return(&domain.ScheduledCheckup{ID: scheduleID, MidwifeID: midwifeID, Status: domain.SchedulePending}, nil)
	scheduleRepo.On("UpdateStatus", mock.Anything, scheduleID, domain.ScheduleCompleted, mock.AnythingOfType("*time.Time")).
		Return(nil)

	scheduled, err := svc.CompleteScheduledCheckup(context.Background(), midwifeID, scheduleID)

	require.NoError(t, err)
	assert.Equal(t, domain.ScheduleCompleted, scheduled.Status)
	require.NotNil(t, scheduled.CompletedDate)
	scheduleRepo.AssertExpectations(t)
}

func TestCompleteScheduledCheckup_HidesOtherMidwivesSchedules(t *testing.T) {
	svc, _, scheduleRepo := newScheduleServiceForTest()
	scheduleID := primitive.NewObjectID()

	scheduleRepo.On("GetByID", mock.Anything, scheduleID).
		Return(&domain.ScheduledCheckup{ID: scheduleID, MidwifeID: primitive.NewObjectID(), Status: domain.SchedulePending}, nil)

	_, err := svc.CompleteScheduledCheckup(context.Background(), primitive.NewObjectID(), scheduleID)

	assert.ErrorIs(t, err, ErrScheduleNotFound)
	scheduleRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCompleteScheduledCheckup_AlreadyCompleted(t *testing.T) {
	svc, _, scheduleRepo := newScheduleServiceForTest()
	midwifeID := primitive.NewObjectID()
	scheduleID := primitive.NewObjectID()

	scheduleRepo.On("GetByID", mock.Anything, scheduleID).
		Return(&domain.ScheduledCheckup{ID: scheduleID, MidwifeID: midwifeID, Status: domain.ScheduleCompleted}, nil)

	_, err := svc.CompleteScheduledCheckup(context.Background(), midwifeID, scheduleID)

	assert.ErrorIs(t, err, ErrScheduleNotPending)
	scheduleRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
