package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"matricare/maternal-app/internal/domain"
	"matricare/maternal-app/internal/service"

	"github.com/gin-gonic/gin"
)

// MidwifeHandler holds the midwife-facing service dependency.
type MidwifeHandler struct {
	midwifeService service.MidwifeService
}

// NewMidwifeHandler creates a new MidwifeHandler.
func NewMidwifeHandler(midwifeService service.MidwifeService) *MidwifeHandler {
	return &MidwifeHandler{midwifeService: midwifeService}
}

// --- Request Structs ---

type AssignMotherRequest struct {
	MotherEmail string `json:"motherEmail" binding:"required,email"`
	Notes       string `json:"notes"`
}

type ScheduleCheckupRequest struct {
	MotherID string             `json:"motherId" binding:"required"`
	Date     time.Time          `json:"date" binding:"required"`
	Type     domain.CheckupType `json:"type" binding:"omitempty,oneof=routine followup emergency antenatal postnatal"`
	Notes    string             `json:"notes"`
}

type CreateCheckupRequest struct {
	MotherID  string   `json:"motherId" binding:"required"`
	Systolic  int      `json:"systolic" binding:"required,min=70,max=250"`
	Diastolic int      `json:"diastolic" binding:"required,min=40,max=180"`
	WeightKg  float64  `json:"weightKg" binding:"required,min=30,max=200"`
	HeightCm  *float64 `json:"heightCm" binding:"omitempty,min=100,max=250"`
	Notes     string   `json:"notes"`
}

// --- Handler Methods ---

// AssignMother adds a mother to the caller's active caseload.
func (h *MidwifeHandler) AssignMother(c *gin.Context) {
	midwifeID, ok := callerID(c)
	if !ok {
		return
	}

	var req AssignMotherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	assignment, err := h.midwifeService.AssignMotherByEmail(c.Request.Context(), midwifeID, req.MotherEmail, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMotherNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNotMotherRole):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrMidwifeAtCapacity), errors.Is(err, service.ErrAlreadyAssigned):
			abortWithError(c, http.StatusConflict, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Could not assign mother")
		}
		return
	}

	c.JSON(http.StatusCreated, assignment)
}

// GetAssignedMothers lists the caller's active caseload.
func (h *MidwifeHandler) GetAssignedMothers(c *gin.Context) {
	midwifeID, ok := callerID(c)
	if !ok {
		return
	}

	mothers, err := h.midwifeService.GetAssignedMothers(c.Request.Context(), midwifeID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not fetch assigned mothers")
		return
	}

	c.JSON(http.StatusOK, mothers)
}

// CompleteAssignment marks one of the caller's assignments completed.
func (h *MidwifeHandler) CompleteAssignment(c *gin.Context) {
	midwifeID, ok := callerID(c)
	if !ok {
		return
	}

	assignmentID, err := service.ParseObjectID(c.Param("assignmentId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid assignment ID format")
		return
	}

	if err := h.midwifeService.CompleteAssignment(c.Request.Context(), midwifeID, assignmentID); err != nil {
		switch {
		case errors.Is(err, service.ErrAssignmentNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrAssignmentAccessDenied):
			abortWithError(c, http.StatusForbidden, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Could not complete assignment")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "assignment completed"})
}

// CreateCheckup records a weekly checkup for a mother. The week bucket comes
// from the server clock, never from the request.
func (h *MidwifeHandler) CreateCheckup(c *gin.Context) {
	midwifeID, ok := callerID(c)
	if !ok {
		return
	}

	var req CreateCheckupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	motherID, err := service.ParseObjectID(req.MotherID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid mother ID format")
		return
	}

	checkup, err := h.midwifeService.CreateCheckup(c.Request.Context(), midwifeID, service.CheckupParams{
		MotherID:  motherID,
		Systolic:  req.Systolic,
		Diastolic: req.Diastolic,
		WeightKg:  req.WeightKg,
		HeightCm:  req.HeightCm,
		Notes:     req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMotherNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNotMotherRole), errors.Is(err, service.ErrVitalsOutOfRange):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrCheckupWeekTaken):
			abortWithError(c, http.StatusConflict, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Could not record checkup")
		}
		return
	}

	c.JSON(http.StatusCreated, checkup)
}

// GetMyCheckups lists the caller's recorded checkups, paginated via
// ?page=1&limit=20.
func (h *MidwifeHandler) GetMyCheckups(c *gin.Context) {
	midwifeID, ok := callerID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	checkups, total, err := h.midwifeService.GetMyCheckups(c.Request.Context(), midwifeID, page, limit)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not fetch checkups")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"checkups": checkups,
		"total":    total,
		"page":     page,
		"limit":    limit,
	})
}

// ScheduleCheckup plans a future checkup for a mother in the caller's
// caseload.
func (h *MidwifeHandler) ScheduleCheckup(c *gin.Context) {
	midwifeID, ok := callerID(c)
	if !ok {
		return
	}

	var req ScheduleCheckupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	motherID, err := service.ParseObjectID(req.MotherID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid mother ID format")
		return
	}

	scheduled, err := h.midwifeService.ScheduleCheckup(c.Request.Context(), midwifeID, motherID, req.Date, req.Type, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMotherNotAssigned):
			abortWithError(c, http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrInvalidScheduleDate):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Could not schedule checkup")
		}
		return
	}

	c.JSON(http.StatusCreated, scheduled)
}

// GetPendingCheckups lists the caller's not-yet-completed scheduled checkups,
// soonest first.
func (h *MidwifeHandler) GetPendingCheckups(c *gin.Context) {
	midwifeID, ok := callerID(c)
	if !ok {
		return
	}

	scheduled, err := h.midwifeService.GetPendingCheckups(c.Request.Context(), midwifeID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not fetch pending checkups")
		return
	}

	c.JSON(http.StatusOK, scheduled)
}

// CompleteScheduledCheckup marks one of the caller's pending scheduled
// checkups as done.
func (h *MidwifeHandler) CompleteScheduledCheckup(c *gin.Context) {
	midwifeID, ok := callerID(c)
	if !ok {
		return
	}

	scheduleID, err := service.ParseObjectID(c.Param("scheduleId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid schedule ID format")
		return
	}

	scheduled, err := h.midwifeService.CompleteScheduledCheckup(c.Request.Context(), midwifeID, scheduleID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrScheduleNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrScheduleNotPending):
			abortWithError(c, http.StatusConflict, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Could not complete scheduled checkup")
		}
		return
	}

	c.JSON(http.StatusOK, scheduled)
}

// GetDashboard summarizes the caller's current week.
func (h *MidwifeHandler) GetDashboard(c *gin.Context) {
	midwifeID, ok := callerID(c)
	if !ok {
		return
	}

	dashboard, err := h.midwifeService.GetDashboard(c.Request.Context(), midwifeID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not load dashboard")
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

// GetMotherDetails returns the full view of one mother.
func (h *MidwifeHandler) GetMotherDetails(c *gin.Context) {
	midwifeID, ok := callerID(c)
	if !ok {
		return
	}

	motherID, err := service.ParseObjectID(c.Param("motherId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid mother ID format")
		return
	}

	details, err := h.midwifeService.GetMotherDetails(c.Request.Context(), midwifeID, motherID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMotherNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNotMotherRole):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Could not fetch mother details")
		}
		return
	}

	c.JSON(http.StatusOK, details)
}
