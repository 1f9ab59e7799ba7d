package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"matricare/maternal-app/internal/domain"
	"matricare/maternal-app/internal/pregnancy"
	"matricare/maternal-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrDoctorNotFound        = errors.New("doctor not found")
	ErrNotDoctorRole         = errors.New("user found but is not a doctor")
	ErrVaccineNotFound       = errors.New("vaccine record not found")
	ErrInvalidAdvice         = errors.New("advice subject and message are required")
	ErrInvalidStatusChange   = errors.New("invalid appointment status transition")
	ErrReceiverNotFound      = errors.New("message receiver not found")
	ErrGrowthEntryIncomplete = errors.New("a growth entry needs at least one measurement")
	ErrInvalidRiskFlag       = errors.New("risk flags must be non-empty tags")
)

// PatientSummary is one row in the doctor's patient list: the mother plus
// her latest recorded vitals, classified.
type PatientSummary struct {
	Mother        domain.User           `json:"mother"`
	LatestCheckup *domain.WeeklyCheckup `json:"latestCheckup,omitempty"`
	BPStatus      *pregnancy.BPStatus   `json:"bpStatus,omitempty"`
	BMI           *pregnancy.BMIResult  `json:"bmi,omitempty"`
}

// PatientDetails is the doctor's full view of one mother.
type PatientDetails struct {
	Mother         domain.User            `json:"mother"`
	MaternalRecord *domain.MaternalRecord `json:"maternalRecord,omitempty"`
	Pregnancy      *PregnancyStatus       `json:"pregnancy,omitempty"`
	CheckupHistory []domain.WeeklyCheckup `json:"checkupHistory"`
	Children       []domain.ChildRecord   `json:"children"`
	Appointments   []domain.Appointment   `json:"appointments"`
}

// AdviceParams carries a new piece of doctor advice.
type AdviceParams struct {
	MotherID         primitive.ObjectID
	AdviceType       domain.AdviceType
	Subject          string
	Message          string
	Priority         domain.AdvicePriority
	RelatedCheckupID *primitive.ObjectID
	RequiresFollowup bool
	FollowupDate     *time.Time
}

// GrowthEntryParams carries one growth measurement for a child. At least
// one of the three measurements must be present.
type GrowthEntryParams struct {
	ChildID  primitive.ObjectID
	Date     time.Time
	WeightKg *float64
	HeightCm *float64
	MUACCm   *float64
	Alerts   []string
}

// --- Service Interface ---
type DoctorService interface {
	// Patients
	GetPatients(ctx context.Context, doctorID primitive.ObjectID) ([]PatientSummary, error)
	GetPatientDetails(ctx context.Context, doctorID, motherID primitive.ObjectID) (*PatientDetails, error)
	AddRiskFlags(ctx context.Context, doctorID, motherID primitive.ObjectID, flags []string) (*domain.MaternalRecord, error)

	// Advice
	CreateAdvice(ctx context.Context, doctorID primitive.ObjectID, params AdviceParams) (*domain.DoctorAdvice, error)
	GetMyAdvice(ctx context.Context, doctorID primitive.ObjectID) ([]domain.DoctorAdvice, error)

	// Appointments
	GetAppointments(ctx context.Context, doctorID primitive.ObjectID) ([]domain.Appointment, error)
	UpdateAppointmentStatus(ctx context.Context, doctorID, appointmentID primitive.ObjectID, status domain.AppointmentStatus) (*domain.Appointment, error)

	// Messaging
	SendMessage(ctx context.Context, senderID, receiverID primitive.ObjectID, body string, msgType domain.MessageType) (*domain.Message, error)
	GetConversation(ctx context.Context, doctorID, otherID primitive.ObjectID) ([]domain.Message, error)

	// Child health
	ScheduleVaccine(ctx context.Context, doctorID, childID primitive.ObjectID, code string, dueDate time.Time) (*domain.VaccineRecord, error)
	MarkVaccineGiven(ctx context.Context, doctorID, vaccineID primitive.ObjectID, givenDate time.Time) (*domain.VaccineRecord, error)
	AddGrowthEntry(ctx context.Context, doctorID primitive.ObjectID, params GrowthEntryParams) (*domain.GrowthEntry, error)
	GetGrowthHistory(ctx context.Context, childID primitive.ObjectID) ([]domain.GrowthEntry, error)
}

// --- Service Implementation ---

// doctorService implements the DoctorService interface.
type doctorService struct {
	userRepo        repository.UserRepository
	maternalRepo    repository.MaternalRecordRepository
	checkupRepo     repository.CheckupRepository
	adviceRepo      repository.AdviceRepository
	appointmentRepo repository.AppointmentRepository
	messageRepo     repository.MessageRepository
	childRepo       repository.ChildRepository
}

// NewDoctorService creates a new instance of doctorService.
func NewDoctorService(
	userRepo repository.UserRepository,
	maternalRepo repository.MaternalRecordRepository,
	checkupRepo repository.CheckupRepository,
	adviceRepo repository.AdviceRepository,
	appointmentRepo repository.AppointmentRepository,
	messageRepo repository.MessageRepository,
	childRepo repository.ChildRepository,
) DoctorService {
	return &doctorService{
		userRepo:        userRepo,
		maternalRepo:    maternalRepo,
		checkupRepo:     checkupRepo,
		adviceRepo:      adviceRepo,
		appointmentRepo: appointmentRepo,
		messageRepo:     messageRepo,
		childRepo:       childRepo,
	}
}

// === Patients ===

// GetPatients lists all mothers with their most recent vitals classified.
// Doctors see every mother; caseload scoping applies to midwives only.
func (s *doctorService) GetPatients(ctx context.Context, doctorID primitive.ObjectID) ([]PatientSummary, error) {
	mothers, err := s.userRepo.GetByRole(ctx, domain.RoleMother)
	if err != nil {
		return nil, err
	}

	patients := make([]PatientSummary, 0, len(mothers))
	for _, mother := range mothers {
		mother.PasswordHash = ""
		mother.RefreshToken = ""
		summary := PatientSummary{Mother: mother}

		latest, err := s.checkupRepo.LatestByMotherID(ctx, mother.ID)
		switch {
		case err == nil:
			summary.LatestCheckup = latest
			status := pregnancy.ClassifyBP(latest.BloodPressure.Systolic, latest.BloodPressure.Diastolic)
			summary.BPStatus = &status
			if latest.HeightCm != nil {
				bmi := pregnancy.ClassifyBMI(latest.WeightKg, *latest.HeightCm)
				summary.BMI = &bmi
			}
		case errors.Is(err, repository.ErrNotFound):
			// No checkup yet; vitals stay empty
		default:
			return nil, err
		}

		patients = append(patients, summary)
	}
	return patients, nil
}

// GetPatientDetails assembles the doctor's full view of one mother.
func (s *doctorService) GetPatientDetails(ctx context.Context, doctorID, motherID primitive.ObjectID) (*PatientDetails, error) {
	mother, err := s.userRepo.GetByID(ctx, motherID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMotherNotFound
		}
		return nil, err
	}
	if !mother.IsMother() {
		return nil, ErrNotMotherRole
	}
	mother.PasswordHash = ""
	mother.RefreshToken = ""

	details := &PatientDetails{Mother: *mother}

	record, err := s.maternalRepo.GetByMotherID(ctx, motherID)
	if err == nil {
		details.MaternalRecord = record
		if age, ageErr := pregnancy.AgeAt(record.LMPDate, time.Now()); ageErr == nil {
			details.Pregnancy = &PregnancyStatus{
				Week:      age.Week,
				Day:       age.Day,
				Trimester: pregnancy.Trimester(age.Week),
				EDD:       record.EDD,
			}
		}
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	checkups, err := s.checkupRepo.GetByMotherID(ctx, motherID)
	if err != nil {
		return nil, err
	}
	details.CheckupHistory = checkups

	children, err := s.childRepo.GetByMotherID(ctx, motherID)
	if err != nil {
		return nil, err
	}
	details.Children = children

	appointments, err := s.appointmentRepo.GetByMotherID(ctx, motherID)
	if err != nil {
		return nil, err
	}
	details.Appointments = appointments

	return details, nil
}

// AddRiskFlags tags the mother's maternal record with risk markers. Tags
// are added, never removed; the record keeps a duplicate-free set.
func (s *doctorService) AddRiskFlags(ctx context.Context, doctorID, motherID primitive.ObjectID, flags []string) (*domain.MaternalRecord, error) {
	if len(flags) == 0 {
		return nil, ErrInvalidRiskFlag
	}
	cleaned := make([]string, 0, len(flags))
	for _, flag := range flags {
		flag = strings.TrimSpace(flag)
		if flag == "" {
			return nil, ErrInvalidRiskFlag
		}
		cleaned = append(cleaned, flag)
	}

	mother, err := s.userRepo.GetByID(ctx, motherID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMotherNotFound
		}
		return nil, err
	}
	if !mother.IsMother() {
		return nil, ErrNotMotherRole
	}

	for _, flag := range cleaned {
		if err := s.maternalRepo.AddRiskFlag(ctx, motherID, flag); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrMaternalRecordNotFound
			}
			return nil, err
		}
	}

	return s.maternalRepo.GetByMotherID(ctx, motherID)
}

// === Advice ===

// CreateAdvice writes a recommendation to a mother. When the advice is tied
// to a checkup, the checkup must belong to that mother.
func (s *doctorService) CreateAdvice(ctx context.Context, doctorID primitive.ObjectID, params AdviceParams) (*domain.DoctorAdvice, error) {
	if params.Subject == "" || params.Message == "" {
		return nil, ErrInvalidAdvice
	}

	mother, err := s.userRepo.GetByID(ctx, params.MotherID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMotherNotFound
		}
		return nil, err
	}
	if !mother.IsMother() {
		return nil, ErrNotMotherRole
	}

	if params.RelatedCheckupID != nil {
		checkup, err := s.checkupRepo.GetByID(ctx, *params.RelatedCheckupID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, errors.New("related checkup not found")
			}
			return nil, err
		}
		if checkup.MotherID != params.MotherID {
			return nil, errors.New("related checkup does not belong to this mother")
		}
	}

	if params.AdviceType == "" {
		params.AdviceType = domain.AdviceGeneral
	}
	if params.Priority == "" {
		params.Priority = domain.PriorityMedium
	}

	advice := &domain.DoctorAdvice{
		DoctorID:         doctorID,
		MotherID:         params.MotherID,
		AdviceType:       params.AdviceType,
		Subject:          params.Subject,
		Message:          params.Message,
		Priority:         params.Priority,
		RelatedCheckupID: params.RelatedCheckupID,
		RequiresFollowup: params.RequiresFollowup,
		FollowupDate:     params.FollowupDate,
	}

	adviceID, err := s.adviceRepo.Create(ctx, advice)
	if err != nil {
		return nil, err
	}
	advice.ID = adviceID

	return advice, nil
}

func (s *doctorService) GetMyAdvice(ctx context.Context, doctorID primitive.ObjectID) ([]domain.DoctorAdvice, error) {
	return s.adviceRepo.GetByDoctorID(ctx, doctorID)
}

// === Appointments ===

func (s *doctorService) GetAppointments(ctx context.Context, doctorID primitive.ObjectID) ([]domain.Appointment, error) {
	return s.appointmentRepo.GetByDoctorID(ctx, doctorID)
}

// UpdateAppointmentStatus confirms, completes or cancels one of the doctor's
// own appointments. Completed and cancelled appointments are terminal.
func (s *doctorService) UpdateAppointmentStatus(ctx context.Context, doctorID, appointmentID primitive.ObjectID, status domain.AppointmentStatus) (*domain.Appointment, error) {
	switch status {
	case domain.AppointmentConfirmed, domain.AppointmentCompleted, domain.AppointmentCancelled:
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatusChange, status)
	}

	appointment, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}
	if appointment.DoctorID != doctorID {
		return nil, ErrAppointmentNotFound // Do not reveal other doctors' appointments
	}
	if appointment.Status == domain.AppointmentCompleted || appointment.Status == domain.AppointmentCancelled {
		return nil, fmt.Errorf("%w: appointment is already %s", ErrInvalidStatusChange, appointment.Status)
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, appointmentID, status); err != nil {
		return nil, err
	}
	appointment.Status = status

	return appointment, nil
}

// === Messaging ===

// SendMessage delivers a direct message; midwives share this path via the
// same service.
func (s *doctorService) SendMessage(ctx context.Context, senderID, receiverID primitive.ObjectID, body string, msgType domain.MessageType) (*domain.Message, error) {
	if body == "" {
		return nil, errors.New("message body is required")
	}
	if msgType == "" {
		msgType = domain.MessageText
	}

	if _, err := s.userRepo.GetByID(ctx, receiverID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrReceiverNotFound
		}
		return nil, err
	}

	message := &domain.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Body:       body,
		Type:       msgType,
	}

	messageID, err := s.messageRepo.Create(ctx, message)
	if err != nil {
		return nil, err
	}
	message.ID = messageID

	return message, nil
}

func (s *doctorService) GetConversation(ctx context.Context, doctorID, otherID primitive.ObjectID) ([]domain.Message, error) {
	return s.messageRepo.GetConversation(ctx, doctorID, otherID)
}

// === Child Health ===

// ScheduleVaccine adds a due vaccine dose to a child's schedule.
func (s *doctorService) ScheduleVaccine(ctx context.Context, doctorID, childID primitive.ObjectID, code string, dueDate time.Time) (*domain.VaccineRecord, error) {
	if code == "" || dueDate.IsZero() {
		return nil, errors.New("vaccine code and due date are required")
	}

	if _, err := s.childRepo.GetByID(ctx, childID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrChildNotFound
		}
		return nil, err
	}

	record := &domain.VaccineRecord{
		ChildID: childID,
		Code:    code,
		DueDate: dueDate.UTC(),
		Status:  domain.VaccineDue,
	}

	recordID, err := s.childRepo.AddVaccineRecord(ctx, record)
	if err != nil {
		return nil, err
	}
	record.ID = recordID

	return record, nil
}

// MarkVaccineGiven records an administered dose, stamping the provider.
func (s *doctorService) MarkVaccineGiven(ctx context.Context, doctorID, vaccineID primitive.ObjectID, givenDate time.Time) (*domain.VaccineRecord, error) {
	if givenDate.IsZero() {
		givenDate = time.Now()
	}

	record, err := s.childRepo.MarkVaccineGiven(ctx, vaccineID, doctorID, givenDate.UTC())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrVaccineNotFound
		}
		return nil, err
	}
	return record, nil
}

// AddGrowthEntry records a growth measurement for a child.
func (s *doctorService) AddGrowthEntry(ctx context.Context, doctorID primitive.ObjectID, params GrowthEntryParams) (*domain.GrowthEntry, error) {
	if params.WeightKg == nil && params.HeightCm == nil && params.MUACCm == nil {
		return nil, ErrGrowthEntryIncomplete
	}
	if params.Date.IsZero() {
		params.Date = time.Now()
	}

	if _, err := s.childRepo.GetByID(ctx, params.ChildID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrChildNotFound
		}
		return nil, err
	}

	entry := &domain.GrowthEntry{
		ChildID:  params.ChildID,
		Date:     params.Date.UTC(),
		WeightKg: params.WeightKg,
		HeightCm: params.HeightCm,
		MUACCm:   params.MUACCm,
		Alerts:   params.Alerts,
	}

	entryID, err := s.childRepo.AddGrowthEntry(ctx, entry)
	if err != nil {
		return nil, err
	}
	entry.ID = entryID

	return entry, nil
}

func (s *doctorService) GetGrowthHistory(ctx context.Context, childID primitive.ObjectID) ([]domain.GrowthEntry, error) {
	return s.childRepo.GetGrowthEntries(ctx, childID)
}
