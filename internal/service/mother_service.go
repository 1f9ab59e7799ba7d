package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"matricare/maternal-app/internal/domain"
	"matricare/maternal-app/internal/pregnancy"
	"matricare/maternal-app/internal/repository"
	"matricare/maternal-app/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrMaternalRecordExists   = errors.New("maternal record already exists for this mother")
	ErrMaternalRecordNotFound = errors.New("maternal record not found")
	ErrLMPOrEDDRequired       = errors.New("exactly one of lmpDate and edd must be provided")
	ErrNegativeParity         = errors.New("parity cannot be negative")
	ErrAppointmentNotFound    = errors.New("appointment not found")
	ErrAdviceNotFound         = errors.New("advice not found")
	ErrMessageNotFound        = errors.New("message not found")
	ErrChildNotFound          = errors.New("child record not found")
	ErrChildAccessDenied      = errors.New("access denied to this child record")
	ErrUploadURLError         = errors.New("failed to generate upload URL")
	ErrDownloadURLError       = errors.New("failed to generate download URL")
	ErrObjectDeleteError      = errors.New("failed to delete stored object")
	ErrReportNotFound         = errors.New("report not found")
	ErrUnsupportedReportType  = errors.New("unsupported report content type")
	ErrUnsupportedImageType   = errors.New("profile image must be an image")
	ErrInvalidObjectKey       = errors.New("object key does not belong to this mother")
	ErrVitalsIncomplete       = errors.New("a vitals reading needs a blood pressure pair or a weight")
)

// PregnancyStatus is the read-only projection of the current pregnancy
// state, derived from the maternal record at request time.
type PregnancyStatus struct {
	Week      int       `json:"week"`
	Day       int       `json:"day"`
	Trimester int       `json:"trimester"`
	EDD       time.Time `json:"edd"`
}

// MotherDashboard aggregates what the mother's home screen shows.
type MotherDashboard struct {
	Pregnancy            *PregnancyStatus      `json:"pregnancy,omitempty"`
	UpcomingAppointments []domain.Appointment  `json:"upcomingAppointments"`
	RecentMessages       []domain.Message      `json:"recentMessages"`
	RecentAdvice         []domain.DoctorAdvice `json:"recentAdvice"`
	VaccinesDue          int64                 `json:"vaccinesDue"`
}

// VitalsParams carries one self-reported vitals entry. A reading is a blood
// pressure pair, a weight (optionally with height), or both.
type VitalsParams struct {
	Systolic  *int
	Diastolic *int
	WeightKg  *float64
	HeightCm  *float64
	Notes     string
}

// UploadURLResponse carries a presigned PUT URL and the object key the
// client must report back on confirm.
type UploadURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
}

// ReportDetails is upload metadata enriched with a temporary download URL.
type ReportDetails struct {
	domain.Upload
	DownloadURL string `json:"downloadUrl"`
}

// --- Service Interface ---
type MotherService interface {
	// Maternal record lifecycle
	CreateMaternalRecord(ctx context.Context, motherID primitive.ObjectID, lmpDate, edd *time.Time, parity int) (*domain.MaternalRecord, error)
	GetMaternalRecord(ctx context.Context, motherID primitive.ObjectID) (*domain.MaternalRecord, error)
	CloseMaternalRecord(ctx context.Context, motherID primitive.ObjectID) error

	// Pregnancy projection
	GetPregnancyStatus(ctx context.Context, motherID primitive.ObjectID, asOf time.Time) (*PregnancyStatus, error)

	// Dashboard and history
	GetDashboard(ctx context.Context, motherID primitive.ObjectID) (*MotherDashboard, error)
	GetCheckupHistory(ctx context.Context, motherID primitive.ObjectID) ([]domain.WeeklyCheckup, error)

	// Self-reported vitals
	RecordVitals(ctx context.Context, motherID primitive.ObjectID, params VitalsParams) (*domain.VitalsReading, error)
	GetVitalsHistory(ctx context.Context, motherID primitive.ObjectID) ([]domain.VitalsReading, error)

	// Advice and messages
	GetAdvice(ctx context.Context, motherID primitive.ObjectID) ([]domain.DoctorAdvice, error)
	MarkAdviceRead(ctx context.Context, motherID, adviceID primitive.ObjectID) (*domain.DoctorAdvice, error)
	GetMessages(ctx context.Context, motherID primitive.ObjectID) ([]domain.Message, error)
	MarkMessageRead(ctx context.Context, motherID, messageID primitive.ObjectID) (*domain.Message, error)

	// Appointments
	RequestAppointment(ctx context.Context, motherID, doctorID primitive.ObjectID, date time.Time, timeSlot string, apptType domain.AppointmentType, notes, location string) (*domain.Appointment, error)
	GetAppointments(ctx context.Context, motherID primitive.ObjectID) ([]domain.Appointment, error)
	CancelAppointment(ctx context.Context, motherID, appointmentID primitive.ObjectID) error

	// Children and vaccines
	RegisterChild(ctx context.Context, motherID primitive.ObjectID, name string, dob time.Time, gender string) (*domain.ChildRecord, error)
	GetChildren(ctx context.Context, motherID primitive.ObjectID) ([]domain.ChildRecord, error)
	GetVaccineSchedule(ctx context.Context, motherID, childID primitive.ObjectID) ([]domain.VaccineRecord, error)

	// Medical report uploads (presigned S3 flow)
	RequestReportUploadURL(ctx context.Context, motherID primitive.ObjectID, contentType string) (*UploadURLResponse, error)
	ConfirmReportUpload(ctx context.Context, motherID primitive.ObjectID, objectKey, fileName string, size int64, contentType string) (*domain.Upload, error)
	GetReports(ctx context.Context, motherID primitive.ObjectID) ([]ReportDetails, error)
	DeleteReport(ctx context.Context, motherID, uploadID primitive.ObjectID) error

	// Profile image (presigned S3 flow)
	RequestProfileImageUploadURL(ctx context.Context, motherID primitive.ObjectID, contentType string) (*UploadURLResponse, error)
	ConfirmProfileImage(ctx context.Context, motherID primitive.ObjectID, objectKey string) error
}

// --- Service Implementation ---

// motherService implements the MotherService interface.
type motherService struct {
	userRepo        repository.UserRepository
	maternalRepo    repository.MaternalRecordRepository
	checkupRepo     repository.CheckupRepository
	adviceRepo      repository.AdviceRepository
	messageRepo     repository.MessageRepository
	appointmentRepo repository.AppointmentRepository
	childRepo       repository.ChildRepository
	uploadRepo      repository.UploadRepository
	vitalsRepo      repository.VitalsRepository
	fileStorage     storage.FileStorage
}

// NewMotherService creates a new instance of motherService.
func NewMotherService(
	userRepo repository.UserRepository,
	maternalRepo repository.MaternalRecordRepository,
	checkupRepo repository.CheckupRepository,
	adviceRepo repository.AdviceRepository,
	messageRepo repository.MessageRepository,
	appointmentRepo repository.AppointmentRepository,
	childRepo repository.ChildRepository,
	uploadRepo repository.UploadRepository,
	vitalsRepo repository.VitalsRepository,
	fileStorage storage.FileStorage,
) MotherService {
	return &motherService{
		userRepo:        userRepo,
		maternalRepo:    maternalRepo,
		checkupRepo:     checkupRepo,
		adviceRepo:      adviceRepo,
		messageRepo:     messageRepo,
		appointmentRepo: appointmentRepo,
		childRepo:       childRepo,
		uploadRepo:      uploadRepo,
		vitalsRepo:      vitalsRepo,
		fileStorage:     fileStorage,
	}
}

// === Maternal Record Lifecycle ===

// CreateMaternalRecord opens a new pregnancy cycle. Exactly one of lmpDate
// and edd must be given; the other is derived (EDD = LMP + 280 days). At
// most one live record exists per mother.
func (s *motherService) CreateMaternalRecord(ctx context.Context, motherID primitive.ObjectID, lmpDate, edd *time.Time, parity int) (*domain.MaternalRecord, error) {
	if motherID == primitive.NilObjectID {
		return nil, errors.New("mother ID is required")
	}
	if (lmpDate == nil) == (edd == nil) {
		return nil, ErrLMPOrEDDRequired
	}
	if parity < 0 {
		return nil, ErrNegativeParity
	}

	var lmp, expectedDelivery time.Time
	if lmpDate != nil {
		lmp = lmpDate.UTC()
		expectedDelivery = pregnancy.EDDFromLMP(lmp)
	} else {
		expectedDelivery = edd.UTC()
		lmp = pregnancy.LMPFromEDD(expectedDelivery)
	}

	record := &domain.MaternalRecord{
		MotherID:  motherID,
		LMPDate:   lmp,
		EDD:       expectedDelivery,
		Parity:    parity,
		RiskFlags: []string{},
	}

	recordID, err := s.maternalRepo.Create(ctx, record)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrMaternalRecordExists
		}
		return nil, err
	}
	record.ID = recordID

	return record, nil
}

// GetMaternalRecord retrieves the mother's live pregnancy record.
func (s *motherService) GetMaternalRecord(ctx context.Context, motherID primitive.ObjectID) (*domain.MaternalRecord, error) {
	record, err := s.maternalRepo.GetByMotherID(ctx, motherID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMaternalRecordNotFound
		}
		return nil, err
	}
	return record, nil
}

// CloseMaternalRecord deletes the live record, ending the cycle (e.g. on
// childbirth). A new cycle can be opened afterwards.
func (s *motherService) CloseMaternalRecord(ctx context.Context, motherID primitive.ObjectID) error {
	err := s.maternalRepo.DeleteByMotherID(ctx, motherID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrMaternalRecordNotFound
	}
	return err
}

// === Pregnancy Projection ===

// GetPregnancyStatus computes the current gestational week, day and
// trimester from the LMP date. An LMP in the future relative to asOf is
// rejected as invalid input.
func (s *motherService) GetPregnancyStatus(ctx context.Context, motherID primitive.ObjectID, asOf time.Time) (*PregnancyStatus, error) {
	record, err := s.GetMaternalRecord(ctx, motherID)
	if err != nil {
		return nil, err
	}

	age, err := pregnancy.AgeAt(record.LMPDate, asOf)
	if err != nil {
		return nil, err
	}

	return &PregnancyStatus{
		Week:      age.Week,
		Day:       age.Day,
		Trimester: pregnancy.Trimester(age.Week),
		EDD:       record.EDD,
	}, nil
}

// === Dashboard & History ===

// GetDashboard aggregates the mother's home-screen data. A missing maternal
// record is not an error here; the pregnancy section is simply absent.
func (s *motherService) GetDashboard(ctx context.Context, motherID primitive.ObjectID) (*MotherDashboard, error) {
	dashboard := &MotherDashboard{}

	status, err := s.GetPregnancyStatus(ctx, motherID, time.Now())
	if err == nil {
		dashboard.Pregnancy = status
	} else if !errors.Is(err, ErrMaternalRecordNotFound) && !errors.Is(err, pregnancy.ErrFutureLMP) {
		return nil, err
	}

	appointments, err := s.appointmentRepo.GetUpcomingByMotherID(ctx, motherID, time.Now(), 5)
	if err != nil {
		return nil, err
	}
	dashboard.UpcomingAppointments = appointments

	messages, err := s.messageRepo.GetByReceiverID(ctx, motherID)
	if err != nil {
		return nil, err
	}
	if len(messages) > 5 {
		messages = messages[:5]
	}
	dashboard.RecentMessages = messages

	advice, err := s.adviceRepo.GetByMotherID(ctx, motherID)
	if err != nil {
		return nil, err
	}
	if len(advice) > 5 {
		advice = advice[:5]
	}
	dashboard.RecentAdvice = advice

	children, err := s.childRepo.GetByMotherID(ctx, motherID)
	if err != nil {
		return nil, err
	}
	childIDs := make([]primitive.ObjectID, 0, len(children))
	for _, child := range children {
		childIDs = append(childIDs, child.ID)
	}
	vaccinesDue, err := s.childRepo.CountVaccinesDueByChildIDs(ctx, childIDs)
	if err != nil {
		return nil, err
	}
	dashboard.VaccinesDue = vaccinesDue

	return dashboard, nil
}

// GetCheckupHistory retrieves the mother's own checkups (read-only; checkups
// are write-once and only midwives create them).
func (s *motherService) GetCheckupHistory(ctx context.Context, motherID primitive.ObjectID) ([]domain.WeeklyCheckup, error) {
	return s.checkupRepo.GetByMotherID(ctx, motherID)
}

// === Self-Reported Vitals ===

// RecordVitals stores a self-reported vitals entry. The classification is
// derived at write time and stored with the reading: the BP category when
// blood pressure is given, otherwise the BMI category when weight and height
// allow it. A live maternal record is required.
func (s *motherService) RecordVitals(ctx context.Context, motherID primitive.ObjectID, params VitalsParams) (*domain.VitalsReading, error) {
	if (params.Systolic == nil) != (params.Diastolic == nil) {
		return nil, ErrVitalsIncomplete
	}
	if params.Systolic == nil && params.WeightKg == nil {
		return nil, ErrVitalsIncomplete
	}
	if params.Systolic != nil &&
		(*params.Systolic < domain.MinSystolic || *params.Systolic > domain.MaxSystolic ||
			*params.Diastolic < domain.MinDiastolic || *params.Diastolic > domain.MaxDiastolic) {
		return nil, fmt.Errorf("%w: systolic must be in [%d,%d], diastolic in [%d,%d]",
			ErrVitalsOutOfRange, domain.MinSystolic, domain.MaxSystolic, domain.MinDiastolic, domain.MaxDiastolic)
	}
	if params.WeightKg != nil && (*params.WeightKg < domain.MinWeightKg || *params.WeightKg > domain.MaxWeightKg) {
		return nil, fmt.Errorf("%w: weight must be in [%d,%d] kg", ErrVitalsOutOfRange, domain.MinWeightKg, domain.MaxWeightKg)
	}
	if params.HeightCm != nil && (*params.HeightCm < domain.MinHeightCm || *params.HeightCm > domain.MaxHeightCm) {
		return nil, fmt.Errorf("%w: height must be in [%d,%d] cm", ErrVitalsOutOfRange, domain.MinHeightCm, domain.MaxHeightCm)
	}

	if _, err := s.GetMaternalRecord(ctx, motherID); err != nil {
		return nil, err
	}

	reading := &domain.VitalsReading{
		MotherID: motherID,
		WeightKg: params.WeightKg,
		HeightCm: params.HeightCm,
		Notes:    params.Notes,
	}
	if params.Systolic != nil {
		reading.BloodPressure = &domain.BloodPressure{
			Systolic:  *params.Systolic,
			Diastolic: *params.Diastolic,
		}
		reading.Status = string(pregnancy.ClassifyBP(*params.Systolic, *params.Diastolic))
	} else if params.WeightKg != nil && params.HeightCm != nil {
		bmi := pregnancy.ClassifyBMI(*params.WeightKg, *params.HeightCm)
		reading.Status = string(bmi.Category)
	}

	readingID, err := s.vitalsRepo.Create(ctx, reading)
	if err != nil {
		return nil, err
	}
	reading.ID = readingID

	return reading, nil
}

// GetVitalsHistory retrieves the mother's self-reported vitals, newest first.
func (s *motherService) GetVitalsHistory(ctx context.Context, motherID primitive.ObjectID) ([]domain.VitalsReading, error) {
	return s.vitalsRepo.GetByMotherID(ctx, motherID)
}

// === Advice & Messages ===

func (s *motherService) GetAdvice(ctx context.Context, motherID primitive.ObjectID) ([]domain.DoctorAdvice, error) {
	return s.adviceRepo.GetByMotherID(ctx, motherID)
}

func (s *motherService) MarkAdviceRead(ctx context.Context, motherID, adviceID primitive.ObjectID) (*domain.DoctorAdvice, error) {
	advice, err := s.adviceRepo.MarkRead(ctx, adviceID, motherID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAdviceNotFound
		}
		return nil, err
	}
	return advice, nil
}

func (s *motherService) GetMessages(ctx context.Context, motherID primitive.ObjectID) ([]domain.Message, error) {
	return s.messageRepo.GetByReceiverID(ctx, motherID)
}

func (s *motherService) MarkMessageRead(ctx context.Context, motherID, messageID primitive.ObjectID) (*domain.Message, error) {
	message, err := s.messageRepo.MarkRead(ctx, messageID, motherID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	return message, nil
}

// === Appointments ===

// RequestAppointment books a pending appointment with a doctor.
func (s *motherService) RequestAppointment(ctx context.Context, motherID, doctorID primitive.ObjectID, date time.Time, timeSlot string, apptType domain.AppointmentType, notes, location string) (*domain.Appointment, error) {
	if doctorID == primitive.NilObjectID {
		return nil, errors.New("doctor ID is required")
	}
	if timeSlot == "" || date.IsZero() {
		return nil, errors.New("appointment date and time are required")
	}

	doctor, err := s.userRepo.GetByID(ctx, doctorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDoctorNotFound
		}
		return nil, err
	}
	if !doctor.IsDoctor() {
		return nil, ErrNotDoctorRole
	}

	appointment := &domain.Appointment{
		MotherID: motherID,
		DoctorID: doctorID,
		Date:     date.UTC(),
		TimeSlot: timeSlot,
		Type:     apptType,
		Status:   domain.AppointmentPending,
		Notes:    notes,
		Location: location,
	}

	appointmentID, err := s.appointmentRepo.Create(ctx, appointment)
	if err != nil {
		return nil, err
	}
	appointment.ID = appointmentID

	return appointment, nil
}

func (s *motherService) GetAppointments(ctx context.Context, motherID primitive.ObjectID) ([]domain.Appointment, error) {
	return s.appointmentRepo.GetByMotherID(ctx, motherID)
}

// CancelAppointment cancels one of the mother's own appointments.
func (s *motherService) CancelAppointment(ctx context.Context, motherID, appointmentID primitive.ObjectID) error {
	appointment, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAppointmentNotFound
		}
		return err
	}
	if appointment.MotherID != motherID {
		return ErrAppointmentNotFound // Do not reveal other mothers' appointments
	}

	return s.appointmentRepo.UpdateStatus(ctx, appointmentID, domain.AppointmentCancelled)
}

// === Children & Vaccines ===

func (s *motherService) RegisterChild(ctx context.Context, motherID primitive.ObjectID, name string, dob time.Time, gender string) (*domain.ChildRecord, error) {
	if name == "" || dob.IsZero() {
		return nil, errors.New("child name and date of birth are required")
	}
	gender = strings.ToLower(gender)
	if gender != "male" && gender != "female" {
		return nil, errors.New("gender must be male or female")
	}

	child := &domain.ChildRecord{
		MotherID:    motherID,
		Name:        name,
		DateOfBirth: dob.UTC(),
		Gender:      gender,
	}

	childID, err := s.childRepo.Create(ctx, child)
	if err != nil {
		return nil, err
	}
	child.ID = childID

	return child, nil
}

func (s *motherService) GetChildren(ctx context.Context, motherID primitive.ObjectID) ([]domain.ChildRecord, error) {
	return s.childRepo.GetByMotherID(ctx, motherID)
}

// GetVaccineSchedule lists a child's vaccine records after verifying the
// child belongs to the requesting mother.
func (s *motherService) GetVaccineSchedule(ctx context.Context, motherID, childID primitive.ObjectID) ([]domain.VaccineRecord, error) {
	child, err := s.childRepo.GetByID(ctx, childID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrChildNotFound
		}
		return nil, err
	}
	if child.MotherID != motherID {
		return nil, ErrChildAccessDenied
	}

	return s.childRepo.GetVaccineRecords(ctx, childID)
}

// === Report Uploads ===

// RequestReportUploadURL generates a presigned PUT URL for a medical report
// (PDF or image). The file goes straight to object storage; the server never
// holds it.
func (s *motherService) RequestReportUploadURL(ctx context.Context, motherID primitive.ObjectID, contentType string) (*UploadURLResponse, error) {
	lower := strings.ToLower(contentType)
	if lower != "application/pdf" && !strings.HasPrefix(lower, "image/") {
		return nil, ErrUnsupportedReportType
	}

	// Unique key per upload, namespaced by mother.
	objectKey := path.Join("reports", motherID.Hex(), uuid.NewString())

	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUploadURLError, err)
	}

	return &UploadURLResponse{UploadURL: uploadURL, ObjectKey: objectKey}, nil
}

// ConfirmReportUpload records metadata after the client finished the
// presigned upload.
func (s *motherService) ConfirmReportUpload(ctx context.Context, motherID primitive.ObjectID, objectKey, fileName string, size int64, contentType string) (*domain.Upload, error) {
	if objectKey == "" || fileName == "" {
		return nil, errors.New("object key and file name are required")
	}
	// The key must be one we handed out for this mother.
	if !strings.HasPrefix(objectKey, path.Join("reports", motherID.Hex())+"/") {
		return nil, ErrInvalidObjectKey
	}

	upload := &domain.Upload{
		OwnerID:     motherID,
		S3ObjectKey: objectKey,
		FileName:    fileName,
		ContentType: contentType,
		Size:        size,
	}

	uploadID, err := s.uploadRepo.Create(ctx, upload)
	if err != nil {
		return nil, err
	}
	upload.ID = uploadID

	return upload, nil
}

// GetReports lists the mother's uploads with temporary download URLs.
func (s *motherService) GetReports(ctx context.Context, motherID primitive.ObjectID) ([]ReportDetails, error) {
	uploads, err := s.uploadRepo.GetByOwnerID(ctx, motherID)
	if err != nil {
		return nil, err
	}

	reports := make([]ReportDetails, 0, len(uploads))
	for _, upload := range uploads {
		url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, upload.S3ObjectKey, storage.DefaultPresignedURLExpiry)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDownloadURLError, err)
		}
		reports = append(reports, ReportDetails{Upload: upload, DownloadURL: url})
	}
	return reports, nil
}

// DeleteReport removes one of the mother's uploads together with the
// stored object. The object is deleted first; if storage is unavailable
// the metadata stays intact and the call can be retried.
func (s *motherService) DeleteReport(ctx context.Context, motherID, uploadID primitive.ObjectID) error {
	upload, err := s.uploadRepo.GetByID(ctx, uploadID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrReportNotFound
		}
		return err
	}
	if upload.OwnerID != motherID {
		return ErrReportNotFound // Do not reveal other mothers' uploads
	}

	if err := s.fileStorage.DeleteObject(ctx, upload.S3ObjectKey); err != nil {
		return fmt.Errorf("%w: %v", ErrObjectDeleteError, err)
	}

	return s.uploadRepo.Delete(ctx, uploadID)
}

// === Profile Image ===

// RequestProfileImageUploadURL generates a presigned PUT URL for the
// mother's profile picture.
func (s *motherService) RequestProfileImageUploadURL(ctx context.Context, motherID primitive.ObjectID, contentType string) (*UploadURLResponse, error) {
	if !strings.HasPrefix(strings.ToLower(contentType), "image/") {
		return nil, ErrUnsupportedImageType
	}

	objectKey := path.Join("profiles", motherID.Hex(), uuid.NewString())

	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUploadURLError, err)
	}

	return &UploadURLResponse{UploadURL: uploadURL, ObjectKey: objectKey}, nil
}

// ConfirmProfileImage stores the uploaded object key on the user record,
// replacing any previous profile image reference.
func (s *motherService) ConfirmProfileImage(ctx context.Context, motherID primitive.ObjectID, objectKey string) error {
	if !strings.HasPrefix(objectKey, path.Join("profiles", motherID.Hex())+"/") {
		return ErrInvalidObjectKey
	}

	err := s.userRepo.SetProfileImageKey(ctx, motherID, objectKey)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrMotherNotFound
	}
	return err
}
