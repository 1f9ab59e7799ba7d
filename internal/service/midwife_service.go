package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"matricare/maternal-app/internal/domain"
	"matricare/maternal-app/internal/pregnancy"
	"matricare/maternal-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrMotherNotFound         = errors.New("mother not found")
	ErrNotMotherRole          = errors.New("user found but is not a mother")
	ErrMidwifeAtCapacity      = errors.New("midwife has reached the maximum number of assigned mothers")
	ErrAlreadyAssigned        = errors.New("mother is already assigned to this midwife")
	ErrCheckupWeekTaken       = errors.New("a checkup already exists for this mother this week")
	ErrVitalsOutOfRange       = errors.New("vitals out of valid range")
	ErrAssignmentNotFound     = errors.New("assignment not found")
	ErrAssignmentAccessDenied = errors.New("access denied to modify this assignment")
	ErrMotherNotAssigned      = errors.New("mother is not in this midwife's active caseload")
	ErrScheduleNotFound       = errors.New("scheduled checkup not found")
	ErrScheduleNotPending     = errors.New("scheduled checkup is no longer pending")
	ErrInvalidScheduleDate    = errors.New("mother ID and scheduled date are required")
)

// CheckupParams carries the measurements for a new weekly checkup.
// WeekNumber and year are never client-supplied; the server derives them
// from its own clock.
type CheckupParams struct {
	MotherID  primitive.ObjectID
	Systolic  int
	Diastolic int
	WeightKg  float64
	HeightCm  *float64
	Notes     string
}

// CheckupDetails is a stored checkup enriched with derived vitals
// classification for display.
type CheckupDetails struct {
	domain.WeeklyCheckup
	BPStatus pregnancy.BPStatus   `json:"bpStatus"`
	BMI      *pregnancy.BMIResult `json:"bmi,omitempty"`
}

// AssignedMother pairs an assignment with the mother's profile.
type AssignedMother struct {
	Mother     domain.User              `json:"mother"`
	Assignment domain.MidwifeAssignment `json:"assignment"`
}

// MidwifeDashboard aggregates the midwife's weekly work overview.
type MidwifeDashboard struct {
	CurrentYear          int   `json:"currentYear"`
	CurrentWeek          int   `json:"currentWeek"`
	TotalMothers         int   `json:"totalMothers"`
	CheckupsThisWeek     int64 `json:"checkupsThisWeek"`
	MothersMissedCheckup int   `json:"mothersMissedCheckup"`
}

// MotherDetails is the midwife's full view of one mother.
type MotherDetails struct {
	Mother             domain.User            `json:"mother"`
	MaternalRecord     *domain.MaternalRecord `json:"maternalRecord,omitempty"`
	CheckupHistory     []domain.WeeklyCheckup `json:"checkupHistory"`
	DoctorAdvice       []domain.DoctorAdvice  `json:"doctorAdvice"`
	HasCheckupThisWeek bool                   `json:"hasCheckupThisWeek"`
}

// --- Service Interface ---
type MidwifeService interface {
	// Mother assignment management
	AssignMotherByEmail(ctx context.Context, midwifeID primitive.ObjectID, motherEmail, notes string) (*domain.MidwifeAssignment, error)
	GetAssignedMothers(ctx context.Context, midwifeID primitive.ObjectID) ([]AssignedMother, error)
	CompleteAssignment(ctx context.Context, midwifeID, assignmentID primitive.ObjectID) error

	// Weekly checkups
	CreateCheckup(ctx context.Context, midwifeID primitive.ObjectID, params CheckupParams) (*CheckupDetails, error)
	GetMyCheckups(ctx context.Context, midwifeID primitive.ObjectID, page, limit int) ([]domain.WeeklyCheckup, int64, error)

	// Checkup scheduling
	ScheduleCheckup(ctx context.Context, midwifeID, motherID primitive.ObjectID, date time.Time, checkupType domain.CheckupType, notes string) (*domain.ScheduledCheckup, error)
	GetPendingCheckups(ctx context.Context, midwifeID primitive.ObjectID) ([]domain.ScheduledCheckup, error)
	CompleteScheduledCheckup(ctx context.Context, midwifeID, scheduleID primitive.ObjectID) (*domain.ScheduledCheckup, error)

	// Overview
	GetDashboard(ctx context.Context, midwifeID primitive.ObjectID) (*MidwifeDashboard, error)
	GetMotherDetails(ctx context.Context, midwifeID, motherID primitive.ObjectID) (*MotherDetails, error)
}

// --- Service Implementation ---

// midwifeService implements the MidwifeService interface.
type midwifeService struct {
	userRepo       repository.UserRepository
	assignmentRepo repository.AssignmentRepository
	checkupRepo    repository.CheckupRepository
	maternalRepo   repository.MaternalRecordRepository
	adviceRepo     repository.AdviceRepository
	scheduleRepo   repository.ScheduleRepository
}

// NewMidwifeService creates a new instance of midwifeService.
func NewMidwifeService(
	userRepo repository.UserRepository,
	assignmentRepo repository.AssignmentRepository,
	checkupRepo repository.CheckupRepository,
	maternalRepo repository.MaternalRecordRepository,
	adviceRepo repository.AdviceRepository,
	scheduleRepo repository.ScheduleRepository,
) MidwifeService {
	return &midwifeService{
		userRepo:       userRepo,
		assignmentRepo: assignmentRepo,
		checkupRepo:    checkupRepo,
		maternalRepo:   maternalRepo,
		adviceRepo:     adviceRepo,
		scheduleRepo:   scheduleRepo,
	}
}

// === Mother Assignment Management ===

// AssignMotherByEmail assigns a mother to the midwife's active caseload.
// The capacity bound (fewer than MaxActiveMothersPerMidwife active
// assignments) is checked before insert; the unique (midwifeId, motherId)
// index makes the duplicate-pair case atomic.
func (s *midwifeService) AssignMotherByEmail(ctx context.Context, midwifeID primitive.ObjectID, motherEmail, notes string) (*domain.MidwifeAssignment, error) {
	// 1. Validate input
	if midwifeID == primitive.NilObjectID || motherEmail == "" {
		return nil, errors.New("midwife ID and mother email are required")
	}

	// 2. Find the mother and verify the role
	mother, err := s.userRepo.GetByEmail(ctx, motherEmail)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMotherNotFound
		}
		return nil, err
	}
	if !mother.IsMother() {
		return nil, ErrNotMotherRole
	}

	// 3. Capacity check
	active, err := s.assignmentRepo.CountActiveByMidwifeID(ctx, midwifeID)
	if err != nil {
		return nil, err
	}
	if active >= domain.MaxActiveMothersPerMidwife {
		return nil, ErrMidwifeAtCapacity
	}

	// 4. Insert; the unique pair index rejects a duplicate assignment
	assignment := &domain.MidwifeAssignment{
		MidwifeID: midwifeID,
		MotherID:  mother.ID,
		Status:    domain.AssignmentActive,
		Notes:     notes,
	}

	assignmentID, err := s.assignmentRepo.Create(ctx, assignment)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrAlreadyAssigned
		}
		return nil, err
	}
	assignment.ID = assignmentID

	return assignment, nil
}

// GetAssignedMothers lists the midwife's active caseload with mother profiles.
func (s *midwifeService) GetAssignedMothers(ctx context.Context, midwifeID primitive.ObjectID) ([]AssignedMother, error) {
	assignments, err := s.assignmentRepo.GetByMidwifeID(ctx, midwifeID, domain.AssignmentActive)
	if err != nil {
		return nil, err
	}

	mothers := make([]AssignedMother, 0, len(assignments))
	for _, assignment := range assignments {
		mother, err := s.userRepo.GetByID(ctx, assignment.MotherID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue // Mother account deleted; skip the stale assignment
			}
			return nil, err
		}
		mother.PasswordHash = ""
		mother.RefreshToken = ""
		mothers = append(mothers, AssignedMother{Mother: *mother, Assignment: assignment})
	}
	return mothers, nil
}

// CompleteAssignment marks one of the midwife's own assignments completed,
// freeing a caseload slot.
func (s *midwifeService) CompleteAssignment(ctx context.Context, midwifeID, assignmentID primitive.ObjectID) error {
	assignment, err := s.assignmentRepo.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAssignmentNotFound
		}
		return err
	}
	if assignment.MidwifeID != midwifeID {
		return ErrAssignmentAccessDenied
	}

	return s.assignmentRepo.UpdateStatus(ctx, assignmentID, domain.AssignmentCompleted)
}

// === Weekly Checkups ===

// CreateCheckup records a new weekly checkup. The ISO week bucket is derived
// from the server clock via pregnancy.CheckupWeek — the same function the
// duplicate check and the stored weekNumber/year use, so the write path and
// the conflict path cannot disagree. The authoritative duplicate guard is
// the unique (motherId, year, weekNumber) index; the pre-check here only
// produces a friendlier error for the common sequential case.
func (s *midwifeService) CreateCheckup(ctx context.Context, midwifeID primitive.ObjectID, params CheckupParams) (*CheckupDetails, error) {
	// 1. Validate measurements; out-of-range values are rejected, not clamped
	if params.MotherID == primitive.NilObjectID {
		return nil, errors.New("mother ID is required")
	}
	if params.Systolic < domain.MinSystolic || params.Systolic > domain.MaxSystolic ||
		params.Diastolic < domain.MinDiastolic || params.Diastolic > domain.MaxDiastolic {
		return nil, fmt.Errorf("%w: systolic must be in [%d,%d], diastolic in [%d,%d]",
			ErrVitalsOutOfRange, domain.MinSystolic, domain.MaxSystolic, domain.MinDiastolic, domain.MaxDiastolic)
	}
	if params.WeightKg < domain.MinWeightKg || params.WeightKg > domain.MaxWeightKg {
		return nil, fmt.Errorf("%w: weight must be in [%d,%d] kg", ErrVitalsOutOfRange, domain.MinWeightKg, domain.MaxWeightKg)
	}
	if params.HeightCm != nil && (*params.HeightCm < domain.MinHeightCm || *params.HeightCm > domain.MaxHeightCm) {
		return nil, fmt.Errorf("%w: height must be in [%d,%d] cm", ErrVitalsOutOfRange, domain.MinHeightCm, domain.MaxHeightCm)
	}

	// 2. Verify the mother exists
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

	// 3. Derive the week bucket and pre-check for an existing checkup
	now := time.Now().UTC()
	year, week := pregnancy.CheckupWeek(now)

	_, err = s.checkupRepo.FindByMotherWeek(ctx, params.MotherID, year, week)
	if err == nil {
		return nil, ErrCheckupWeekTaken
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	// 4. Gestational week at checkup time, when a maternal record exists
	var pregnancyWeek *int
	record, err := s.maternalRepo.GetByMotherID(ctx, params.MotherID)
	if err == nil {
		if age, ageErr := pregnancy.AgeAt(record.LMPDate, now); ageErr == nil {
			w := age.Week
			pregnancyWeek = &w
		}
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	// 5. Insert; a concurrent winner surfaces here as a conflict
	checkup := &domain.WeeklyCheckup{
		MotherID:    params.MotherID,
		ProviderID:  midwifeID,
		CheckupDate: now,
		WeekNumber:  week,
		Year:        year,
		BloodPressure: domain.BloodPressure{
			Systolic:  params.Systolic,
			Diastolic: params.Diastolic,
		},
		WeightKg:      params.WeightKg,
		HeightCm:      params.HeightCm,
		PregnancyWeek: pregnancyWeek,
		Notes:         params.Notes,
	}

	checkupID, err := s.checkupRepo.Create(ctx, checkup)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrCheckupWeekTaken
		}
		return nil, err
	}
	checkup.ID = checkupID

	details := &CheckupDetails{
		WeeklyCheckup: *checkup,
		BPStatus:      pregnancy.ClassifyBP(params.Systolic, params.Diastolic),
	}
	if params.HeightCm != nil {
		bmi := pregnancy.ClassifyBMI(params.WeightKg, *params.HeightCm)
		details.BMI = &bmi
	}
	return details, nil
}

// GetMyCheckups retrieves the midwife's recorded checkups, paginated.
func (s *midwifeService) GetMyCheckups(ctx context.Context, midwifeID primitive.ObjectID, page, limit int) ([]domain.WeeklyCheckup, int64, error) {
	return s.checkupRepo.GetByProviderID(ctx, midwifeID, page, limit)
}

// === Checkup Scheduling ===

// hasActiveAssignment reports whether the mother is in the midwife's active
// caseload.
func (s *midwifeService) hasActiveAssignment(ctx context.Context, midwifeID, motherID primitive.ObjectID) (bool, error) {
	assignments, err := s.assignmentRepo.GetByMidwifeID(ctx, midwifeID, domain.AssignmentActive)
	if err != nil {
		return false, err
	}
	for _, assignment := range assignments {
		if assignment.MotherID == motherID {
			return true, nil
		}
	}
	return false, nil
}

// ScheduleCheckup books a future checkup visit for a mother in the midwife's
// active caseload.
func (s *midwifeService) ScheduleCheckup(ctx context.Context, midwifeID, motherID primitive.ObjectID, date time.Time, checkupType domain.CheckupType, notes string) (*domain.ScheduledCheckup, error) {
	if motherID == primitive.NilObjectID || date.IsZero() {
		return nil, ErrInvalidScheduleDate
	}

	assigned, err := s.hasActiveAssignment(ctx, midwifeID, motherID)
	if err != nil {
		return nil, err
	}
	if !assigned {
		return nil, ErrMotherNotAssigned
	}

	scheduled := &domain.ScheduledCheckup{
		MotherID:      motherID,
		MidwifeID:     midwifeID,
		ScheduledDate: date.UTC(),
		Type:          checkupType,
		Status:        domain.SchedulePending,
		Notes:         notes,
	}

	scheduleID, err := s.scheduleRepo.Create(ctx, scheduled)
	if err != nil {
		return nil, err
	}
	scheduled.ID = scheduleID

	return scheduled, nil
}

// GetPendingCheckups lists the midwife's pending scheduled checkups, soonest
// first.
func (s *midwifeService) GetPendingCheckups(ctx context.Context, midwifeID primitive.ObjectID) ([]domain.ScheduledCheckup, error) {
	return s.scheduleRepo.GetByMidwifeID(ctx, midwifeID, domain.SchedulePending)
}

// CompleteScheduledCheckup marks one of the midwife's own pending scheduled
// checkups as completed, stamping the completion time.
func (s *midwifeService) CompleteScheduledCheckup(ctx context.Context, midwifeID, scheduleID primitive.ObjectID) (*domain.ScheduledCheckup, error) {
	scheduled, err := s.scheduleRepo.GetByID(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}
	if scheduled.MidwifeID != midwifeID {
		return nil, ErrScheduleNotFound // Do not reveal other midwives' schedules
	}
	if scheduled.Status != domain.SchedulePending {
		return nil, fmt.Errorf("%w: already %s", ErrScheduleNotPending, scheduled.Status)
	}

	now := time.Now().UTC()
	if err := s.scheduleRepo.UpdateStatus(ctx, scheduleID, domain.ScheduleCompleted, &now); err != nil {
		return nil, err
	}
	scheduled.Status = domain.ScheduleCompleted
	scheduled.CompletedDate = &now

	return scheduled, nil
}

// === Overview ===

// GetDashboard summarizes the current ISO week for the midwife.
func (s *midwifeService) GetDashboard(ctx context.Context, midwifeID primitive.ObjectID) (*MidwifeDashboard, error) {
	year, week := pregnancy.CheckupWeek(time.Now())

	mothers, err := s.userRepo.GetByRole(ctx, domain.RoleMother)
	if err != nil {
		return nil, err
	}

	checkupsThisWeek, err := s.checkupRepo.CountByProviderWeek(ctx, midwifeID, year, week)
	if err != nil {
		return nil, err
	}

	seen, err := s.checkupRepo.DistinctMothersByWeek(ctx, year, week)
	if err != nil {
		return nil, err
	}

	missed := len(mothers) - len(seen)
	if missed < 0 {
		missed = 0
	}

	return &MidwifeDashboard{
		CurrentYear:          year,
		CurrentWeek:          week,
		TotalMothers:         len(mothers),
		CheckupsThisWeek:     checkupsThisWeek,
		MothersMissedCheckup: missed,
	}, nil
}

// GetMotherDetails assembles the midwife's full view of one mother.
func (s *midwifeService) GetMotherDetails(ctx context.Context, midwifeID, motherID primitive.ObjectID) (*MotherDetails, error) {
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

	details := &MotherDetails{Mother: *mother}

	record, err := s.maternalRepo.GetByMotherID(ctx, motherID)
	if err == nil {
		details.MaternalRecord = record
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	checkups, err := s.checkupRepo.GetByMotherID(ctx, motherID)
	if err != nil {
		return nil, err
	}
	details.CheckupHistory = checkups

	advice, err := s.adviceRepo.GetByMotherID(ctx, motherID)
	if err != nil {
		return nil, err
	}
	details.DoctorAdvice = advice

	year, week := pregnancy.CheckupWeek(time.Now())
	_, err = s.checkupRepo.FindByMotherWeek(ctx, motherID, year, week)
	switch {
	case err == nil:
		details.HasCheckupThisWeek = true
	case errors.Is(err, repository.ErrNotFound):
		details.HasCheckupThisWeek = false
	default:
		return nil, err
	}

	return details, nil
}
