package service

import (
	"context"
	"errors"
	"strings"
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

func newMotherServiceForTest() (MotherService, *MockUserRepository, *MockMaternalRepository, *MockAppointmentRepository) {
	userRepo := new(MockUserRepository)
	maternalRepo := new(MockMaternalRepository)
	appointmentRepo := new(MockAppointmentRepository)
	svc := NewMotherService(userRepo, maternalRepo, new(MockCheckupRepository), new(MockAdviceRepository), nil, appointmentRepo, nil, nil, nil, nil)
	return svc, userRepo, maternalRepo, appointmentRepo
}

func utcDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCreateMaternalRecord_FromLMP(t *testing.T) {
	svc, _, maternalRepo, _ := newMotherServiceForTest()
	motherID := primitive.NewObjectID()
	lmp := utcDate(2025, time.January, 1)

	maternalRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.MaternalRecord")).Return(primitive.NewObjectID(), nil)

	record, err := svc.CreateMaternalRecord(context.Background(), motherID, &lmp, nil, 1)
	require.NoError(t, err)
	assert.Equal(t, lmp, record.LMPDate)
	assert.Equal(t, utcDate(2025, time.October, 8), record.EDD)
}

func TestCreateMaternalRecord_FromEDD(t *testing.T) {
	svc, _, maternalRepo, _ := newMotherServiceForTest()
	motherID := primitive.NewObjectID()
	edd := utcDate(2025, time.October, 8)

	maternalRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.MaternalRecord")).Return(primitive.NewObjectID(), nil)

	record, err := svc.CreateMaternalRecord(context.Background(), motherID, nil, &edd, 0)
	require.NoError(t, err)
	assert.Equal(t, utcDate(2025, time.January, 1), record.LMPDate)
	assert.Equal(t, edd, record.EDD)
}

func TestCreateMaternalRecord_RequiresExactlyOneDate(t *testing.T) {
	svc, _, maternalRepo, _ := newMotherServiceForTest()
	motherID := primitive.NewObjectID()
	lmp := utcDate(2025, time.January, 1)
	edd := utcDate(2025, time.October, 8)

	_, err := svc.CreateMaternalRecord(context.Background(), motherID, nil, nil, 0)
	assert.ErrorIs(t, err, ErrLMPOrEDDRequired)

	_, err = svc.CreateMaternalRecord(context.Background(), motherID, &lmp, &edd, 0)
	assert.ErrorIs(t, err, ErrLMPOrEDDRequired)

	maternalRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateMaternalRecord_SecondRecordConflicts(t *testing.T) {
	svc, _, maternalRepo, _ := newMotherServiceForTest()
	lmp := utcDate(2025, time.January, 1)

	maternalRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.MaternalRecord")).Return(primitive.NilObjectID, repository.ErrConflict)

	_, err := svc.CreateMaternalRecord(context.Background(), primitive.NewObjectID(), &lmp, nil, 0)
	assert.ErrorIs(t, err, ErrMaternalRecordExists)
}

func TestCreateMaternalRecord_NegativeParity(t *testing.T) {
	svc, _, _, _ := newMotherServiceForTest()
	lmp := utcDate(2025, time.January, 1)

	_, err := svc.CreateMaternalRecord(context.Background(), primitive.NewObjectID(), &lmp, nil, -1)
	assert.ErrorIs(t, err, ErrNegativeParity)
}

func TestGetPregnancyStatus(t *testing.T) {
	svc, _, maternalRepo, _ := newMotherServiceForTest()
	motherID := primitive.NewObjectID()
	lmp := utcDate(2025, time.January, 1)

	maternalRepo.On("GetByMotherID", mock.Anything, motherID).Return(&domain.MaternalRecord{
		MotherID: motherID,
		LMPDate:  lmp,
		EDD:      pregnancy.EDDFromLMP(lmp),
	}, nil)

	status, err := svc.GetPregnancyStatus(context.Background(), motherID, utcDate(2025, time.July, 2))
	require.NoError(t, err)
	assert.Equal(t, 26, status.Week)
	assert.Equal(t, 0, status.Day)
	assert.Equal(t, 2, status.Trimester)
	assert.Equal(t, utcDate(2025, time.October, 8), status.EDD)
}

func TestGetPregnancyStatus_NoRecord(t *testing.T) {
	svc, _, maternalRepo, _ := newMotherServiceForTest()
	motherID := primitive.NewObjectID()

	maternalRepo.On("GetByMotherID", mock.Anything, motherID).Return(nil, repository.ErrNotFound)

	_, err := svc.GetPregnancyStatus(context.Background(), motherID, time.Now())
	assert.ErrorIs(t, err, ErrMaternalRecordNotFound)
}

func TestGetPregnancyStatus_FutureLMP(t *testing.T) {
	svc, _, maternalRepo, _ := newMotherServiceForTest()
	motherID := primitive.NewObjectID()
	lmp := utcDate(2025, time.June, 1)

	maternalRepo.On("GetByMotherID", mock.Anything, motherID).Return(&domain.MaternalRecord{
		MotherID: motherID,
		LMPDate:  lmp,
		EDD:      pregnancy.EDDFromLMP(lmp),
	}, nil)

	_, err := svc.GetPregnancyStatus(context.Background(), motherID, utcDate(2025, time.May, 1))
	assert.ErrorIs(t, err, pregnancy.ErrFutureLMP)
}

func TestRequestAppointment_DoctorRoleRequired(t *testing.T) {
	svc, userRepo, _, appointmentRepo := newMotherServiceForTest()
	midwife := &domain.User{ID: primitive.NewObjectID(), Role: domain.RoleMidwife}

	userRepo.On("GetByID", mock.Anything, midwife.ID).Return(midwife, nil)

	_, err := svc.RequestAppointment(context.Background(), primitive.NewObjectID(), midwife.ID, utcDate(2025, time.August, 1), "10:30", domain.AppointmentCheckup, "", "")
	assert.ErrorIs(t, err, ErrNotDoctorRole)
	appointmentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCancelAppointment_OtherMothersAppointmentHidden(t *testing.T) {
	svc, _, _, appointmentRepo := newMotherServiceForTest()
	appointmentID := primitive.NewObjectID()

	appointmentRepo.On("GetByID", mock.Anything, appointmentID).Return(&domain.Appointment{
		ID:       appointmentID,
		MotherID: primitive.NewObjectID(), // someone else's
		Status:   domain.AppointmentPending,
	}, nil)

	err := svc.CancelAppointment(context.Background(), primitive.NewObjectID(), appointmentID)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
	appointmentRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func newUploadServiceForTest() (MotherService, *MockUserRepository, *MockUploadRepository, *MockFileStorage) {
	userRepo := new(MockUserRepository)
	uploadRepo := new(MockUploadRepository)
	fileStorage := new(MockFileStorage)
	svc := NewMotherService(userRepo, new(MockMaternalRepository), new(MockCheckupRepository), new(MockAdviceRepository), nil, new(MockAppointmentRepository), nil, uploadRepo, nil, fileStorage)
	return svc, userRepo, uploadRepo, fileStorage
}

func TestRequestProfileImageUploadURL(t *testing.T) {
	svc, _, _, fileStorage := newUploadServiceForTest()
	motherID := primitive.NewObjectID()
	prefix := "profiles/" + motherID.Hex() + "/"

	fileStorage.On("GeneratePresignedUploadURL", mock.Anything, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, prefix)
	}), "image/jpeg", mock.Anything).Return("https://storage.example/put", nil)

	resp, err := svc.RequestProfileImageUploadURL(context.Background(), motherID, "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "https://storage.example/put", resp.UploadURL)
	assert.True(t, strings.HasPrefix(resp.ObjectKey, prefix))
}

func TestRequestProfileImageUploadURL_RejectsNonImage(t *testing.T) {
	svc, _, _, fileStorage := newUploadServiceForTest()

	_, err := svc.RequestProfileImageUploadURL(context.Background(), primitive.NewObjectID(), "application/pdf")
	assert.ErrorIs(t, err, ErrUnsupportedImageType)
	fileStorage.AssertNotCalled(t, "GeneratePresignedUploadURL", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestConfirmProfileImage(t *testing.T) {
	svc, userRepo, _, _ := newUploadServiceForTest()
	motherID := primitive.NewObjectID()
	objectKey := "profiles/" + motherID.Hex() + "/abc123"

	userRepo.On("SetProfileImageKey", mock.Anything, motherID, objectKey).Return(nil)

	err := svc.ConfirmProfileImage(context.Background(), motherID, objectKey)
	require.NoError(t, err)
	userRepo.AssertExpectations(t)
}

func TestConfirmProfileImage_RejectsForeignKey(t *testing.T) {
	svc, userRepo, _, _ := newUploadServiceForTest()
	motherID := primitive.NewObjectID()
	otherKey := "profiles/" + primitive.NewObjectID().Hex() + "/abc123"

	err := svc.ConfirmProfileImage(context.Background(), motherID, otherKey)
	assert.ErrorIs(t, err, ErrInvalidObjectKey)
	userRepo.AssertNotCalled(t, "SetProfileImageKey", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteReport(t *testing.T) {
	svc, _, uploadRepo, fileStorage := newUploadServiceForTest()
	motherID := primitive.NewObjectID()
	uploadID := primitive.NewObjectID()
	upload := &domain.Upload{ID: uploadID, OwnerID: motherID, S3ObjectKey: "reports/" + motherID.Hex() + "/f1"}

	uploadRepo.On("GetByID", mock.Anything, uploadID).Return(upload, nil)
	fileStorage.On("DeleteObject", mock.Anything, upload.S3ObjectKey).Return(nil)
	uploadRepo.On("Delete", mock.Anything, uploadID).Return(nil)

	err := svc.DeleteReport(context.Background(), motherID, uploadID)
	require.NoError(t, err)
	uploadRepo.AssertExpectations(t)
	fileStorage.AssertExpectations(t)
}

func TestDeleteReport_HidesOtherMothersUploads(t *testing.T) {
	svc, _, uploadRepo, fileStorage := newUploadServiceForTest()
	uploadID := primitive.NewObjectID()
	upload := &domain.Upload{ID: uploadID, OwnerID: primitive.NewObjectID(), S3ObjectKey: "reports/x/f1"}

	uploadRepo.On("GetByID", mock.Anything, uploadID).Return(upload, nil)

	err := svc.DeleteReport(context.Background(), primitive.NewObjectID(), uploadID)
	assert.ErrorIs(t, err, ErrReportNotFound)
	fileStorage.AssertNotCalled(t, "DeleteObject", mock.Anything, mock.Anything)
	uploadRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteReport_StorageFailureKeepsMetadata(t *testing.T) {
	svc, _, uploadRepo, fileStorage := newUploadServiceForTest()
	motherID := primitive.NewObjectID()
	uploadID := primitive.NewObjectID()
	upload := &domain.Upload{ID: uploadID, OwnerID: motherID, S3ObjectKey: "reports/" + motherID.Hex() + "/f1"}

	uploadRepo.On("GetByID", mock.Anything, uploadID).Return(upload, nil)
	fileStorage.On("DeleteObject", mock.Anything, upload.S3ObjectKey).Return(errors.New("connection refused"))

	err := svc.DeleteReport(context.Background(), motherID, uploadID)
	assert.ErrorIs(t, err, ErrObjectDeleteError)
	uploadRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func newVitalsServiceForTest() (MotherService, *MockMaternalRepository, *MockVitalsRepository) {
	maternalRepo := new(MockMaternalRepository)
	vitalsRepo := new(MockVitalsRepository)
	svc := NewMotherService(new(MockUserRepository), maternalRepo, new(MockCheckupRepository), new(MockAdviceRepository), nil, new(MockAppointmentRepository), nil, nil, vitalsRepo, nil)
	return svc, maternalRepo, vitalsRepo
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestRecordVitals_ClassifiesBloodPressure(t *testing.T) {
	svc, maternalRepo, vitalsRepo := newVitalsServiceForTest()
	motherID := primitive.NewObjectID()

	maternalRepo.On("GetByMotherID", mock.Anything, motherID).
		Return(&domain.MaternalRecord{MotherID: motherID}, nil)
	vitalsRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.VitalsReading")).
		Return(primitive.NewObjectID(), nil)

	reading, err := svc.RecordVitals(context.Background(), motherID, VitalsParams{
		Systolic:  intPtr(150),
		Diastolic: intPtr(95),
	})

	require.NoError(t, err)
	require.NotNil(t, reading.BloodPressure)
	assert.Equal(t, 150, reading.BloodPressure.Systolic)
	assert.Equal(t, string(pregnancy.BPHigh), reading.Status)
	vitalsRepo.AssertExpectations(t)
}

func TestRecordVitals_ClassifiesBMI(t *testing.T) {
	svc, maternalRepo, vitalsRepo := newVitalsServiceForTest()
	motherID := primitive.NewObjectID()

	maternalRepo.On("GetByMotherID", mock.Anything, motherID).
		Return(&domain.MaternalRecord{MotherID: motherID}, nil)
	vitalsRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.VitalsReading")).
		Return(primitive.NewObjectID(), nil)

	reading, err := svc.RecordVitals(context.Background(), motherID, VitalsParams{
		WeightKg: floatPtr(65),
		HeightCm: floatPtr(165),
	})

	require.NoError(t, err)
	assert.Nil(t, reading.BloodPressure)
	assert.Equal(t, string(pregnancy.BMINormal), reading.Status)
}

func TestRecordVitals_RejectsIncompletePair(t *testing.T) {
	svc, _, vitalsRepo := newVitalsServiceForTest()
	motherID := primitive.NewObjectID()

	// Systolic without diastolic.
	_, err := svc.RecordVitals(context.Background(), motherID, VitalsParams{Systolic: intPtr(120)})
	assert.ErrorIs(t, err, ErrVitalsIncomplete)

	// Neither blood pressure nor weight.
	_, err = svc.RecordVitals(context.Background(), motherID, VitalsParams{Notes: "feeling fine"})
	assert.ErrorIs(t, err, ErrVitalsIncomplete)

	vitalsRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRecordVitals_RejectsOutOfRange(t *testing.T) {
	svc, _, vitalsRepo := newVitalsServiceForTest()
	motherID := primitive.NewObjectID()

	_, err := svc.RecordVitals(context.Background(), motherID, VitalsParams{
		Systolic:  intPtr(300),
		Diastolic: intPtr(90),
	})
	assert.ErrorIs(t, err, ErrVitalsOutOfRange)

	_, err = svc.RecordVitals(context.Background(), motherID, VitalsParams{WeightKg: floatPtr(10)})
	assert.ErrorIs(t, err, ErrVitalsOutOfRange)

	vitalsRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRecordVitals_RequiresMaternalRecord(t *testing.T) {
	svc, maternalRepo, vitalsRepo := newVitalsServiceForTest()
	motherID := primitive.NewObjectID()

	maternalRepo.On("GetByMotherID", mock.Anything, motherID).
		Return(nil, repository.ErrNotFound)

	_, err := svc.RecordVitals(context.Background(), motherID, VitalsParams{
		Systolic:  intPtr(120),
		Diastolic: intPtr(80),
	})

	assert.ErrorIs(t, err, ErrMaternalRecordNotFound)
	vitalsRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
