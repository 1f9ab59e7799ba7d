package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"matricare/maternal-app/internal/domain"
	"matricare/maternal-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DoctorHandler holds the doctor-facing service dependency.
type DoctorHandler struct {
	doctorService service.DoctorService
}

// NewDoctorHandler creates a new DoctorHandler.
func NewDoctorHandler(doctorService service.DoctorService) *DoctorHandler {
	return &DoctorHandler{doctorService: doctorService}
}

// --- Request Structs ---

type CreateAdviceRequest struct {
	MotherID         string                `json:"motherId" binding:"required"`
	AdviceType       domain.AdviceType     `json:"adviceType" binding:"omitempty,oneof=general medication diet exercise emergency followup"`
	Subject          string                `json:"subject" binding:"required"`
	Message          string                `json:"message" binding:"required"`
	Priority         domain.AdvicePriority `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	RelatedCheckupID string                `json:"relatedCheckupId"`
	RequiresFollowup bool                  `json:"requiresFollowup"`
	FollowupDate     *time.Time            `json:"followupDate"`
}

type AddRiskFlagsRequest struct {
	Flags []string `json:"flags" binding:"required,min=1"`
}

type UpdateAppointmentStatusRequest struct {
	Status domain.AppointmentStatus `json:"status" binding:"required,oneof=confirmed completed cancelled"`
}

type SendMessageRequest struct {
	ReceiverID string             `json:"receiverId" binding:"required"`
	Message    string             `json:"message" binding:"required"`
	Type       domain.MessageType `json:"type" binding:"omitempty,oneof=text alert reminder advice"`
}

type ScheduleVaccineRequest struct {
	Code    string    `json:"code" binding:"required"`
	DueDate time.Time `json:"dueDate" binding:"required"`
}

type MarkVaccineGivenRequest struct {
	GivenDate *time.Time `json:"givenDate"`
}

type AddGrowthEntryRequest struct {
	Date     *time.Time `json:"date"`
	WeightKg *float64   `json:"weightKg" binding:"omitempty,gt=0"`
	HeightCm *float64   `json:"heightCm" binding:"omitempty,gt=0"`
	MUACCm   *float64   `json:"muacCm" binding:"omitempty,gt=0"`
	Alerts   []string   `json:"alerts"`
}

// --- Handler Methods ---

// GetPatients lists all mothers with their latest classified vitals.
func (h *DoctorHandler) GetPatients(c *gin.Context) {
	doctorID, ok := callerID(c)
	if !ok {
		return
	}

	patients, err := h.doctorService.GetPatients(c.Request.Context(), doctorID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not fetch patients")
		return
	}

	c.JSON(http.StatusOK, patients)
}

// GetPatientDetails returns the full view of one mother.
func (h *DoctorHandler) GetPatientDetails(c *gin.Context) {
	doctorID, ok := callerID(c)
	if !ok {
		return
	}

	motherID, err := service.ParseObjectID(c.Param("motherId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid mother ID format")
		return
	}

	details, err := h.doctorService.GetPatientDetails(c.Request.Context(), doctorID, motherID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMotherNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNotMotherRole):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Could not fetch patient details")
		}
		return
	}

	c.JSON(http.StatusOK, details)
}

// AddRiskFlags tags a mother's maternal record with risk markers.
func (h *DoctorHandler) AddRiskFlags(c *gin.Context) {
	doctorID, ok := callerID(c)
	if !ok {
		return
	}

	motherID, err := service.ParseObjectID(c.Param("motherId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid mother ID format")
		return
	}

	var req AddRiskFlagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	record, err := h.doctorService.AddRiskFlags(c.Request.Context(), doctorID, motherID, req.Flags)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRiskFlag):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrMotherNotFound), errors.Is(err, service.ErrMaternalRecordNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNotMotherRole):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Could not update risk flags")
		}
		return
	}

	c.JSON(http.StatusOK, record)
}

// CreateAdvice writes a recommendation to a mother.
func (h *DoctorHandler) CreateAdvice(c *gin.Context) {
	doctorID, ok := callerID(c)
	if !ok {
		return
	}

	var req CreateAdviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	motherID, err := service.ParseObjectID(req.MotherID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid mother ID format")
		return
	}

	var relatedCheckupID *primitive.ObjectID
	if req.RelatedCheckupID != "" {
		id, err := service.ParseObjectID(req.RelatedCheckupID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid related checkup ID format")
			return
		}
		relatedCheckupID = &id
	}

	advice, err := h.doctorService.CreateAdvice(c.Request.Context(), doctorID, service.AdviceParams{
		MotherID:         motherID,
		AdviceType:       req.AdviceType,
		Subject:          req.Subject,
		Message:          req.Message,
		Priority:         req.Priority,
		RelatedCheckupID: relatedCheckupID,
		RequiresFollowup: req.RequiresFollowup,
		FollowupDate:     req.FollowupDate,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMotherNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNotMotherRole), errors.Is(err, service.ErrInvalidAdvice):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusBadRequest, err.Error())
		}
		return
	}

	c.JSON(http.StatusCreated, advice)
}

// GetMyAdvice lists advice the caller has written.
func (h *DoctorHandler) GetMyAdvice(c *gin.Context) {
	doctorID, ok := callerID(c)
	if !ok {
		return
	}

	advice, err := h.doctorService.GetMyAdvice(c.Request.Context(), doctorID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not fetch advice")
		return
	}

	c.JSON(http.StatusOK, advice)
}

// GetAppointments lists the caller's appointments.
func (h *DoctorHandler) GetAppointments(c *gin.Context) {
	doctorID, ok := callerID(c)
	if !ok {
		return
	}

	appointments, err := h.doctorService.GetAppointments(c.Request.Context(), doctorID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not fetch appointments")
		return
	}

	c.JSON(http.StatusOK, appointments)
}

// UpdateAppointmentStatus confirms, completes or cancels an appointment.
func (h *DoctorHandler) UpdateAppointmentStatus(c *gin.Context) {
	doctorID, ok := callerID(c)
	if !ok {
		return
	}

	appointmentID, err := service.ParseObjectID(c.Param("appointmentId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	var req UpdateAppointmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	appointment, err := h.doctorService.UpdateAppointmentStatus(c.Request.Context(), doctorID, appointmentID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAppointmentNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrInvalidStatusChange):
			abortWithError(c, http.StatusConflict, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Could not update appointment")
		}
		return
	}

	c.JSON(http.StatusOK, appointment)
}

// SendMessage delivers a direct message to another user.
func (h *DoctorHandler) SendMessage(c *gin.Context) {
	senderID, ok := callerID(c)
	if !ok {
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	receiverID, err := service.ParseObjectID(req.ReceiverID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid receiver ID format")
		return
	}

	message, err := h.doctorService.SendMessage(c.Request.Context(), senderID, receiverID, req.Message, req.Type)
	if err != nil {
		if errors.Is(err, service.ErrReceiverNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusBadRequest, err.Error())
		}
		return
	}

	c.JSON(http.StatusCreated, message)
}

// GetConversation returns the message history with one other user.
func (h *DoctorHandler) GetConversation(c *gin.Context) {
	doctorID, ok := callerID(c)
	if !ok {
		return
	}

	otherID, err := service.ParseObjectID(c.Param("userId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	messages, err := h.doctorService.GetConversation(c.Request.Context(), doctorID, otherID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not fetch conversation")
		return
	}

	c.JSON(http.StatusOK, messages)
}

// ScheduleVaccine adds a due dose to a child's schedule.
func (h *DoctorHandler) ScheduleVaccine(c *gin.Context) {
	doctorID, ok := callerID(c)
	if !ok {
		return
	}

	childID, err := service.ParseObjectID(c.Param("childId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid child ID format")
		return
	}

	var req ScheduleVaccineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	record, err := h.doctorService.ScheduleVaccine(c.Request.Context(), doctorID, childID, req.Code, req.DueDate)
	if err != nil {
		if errors.Is(err, service.ErrChildNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusBadRequest, err.Error())
		}
		return
	}

	c.JSON(http.StatusCreated, record)
}

// MarkVaccineGiven records an administered dose.
func (h *DoctorHandler) MarkVaccineGiven(c *gin.Context) {
	doctorID, ok := callerID(c)
	if !ok {
		return
	}

	vaccineID, err := service.ParseObjectID(c.Param("vaccineId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid vaccine record ID format")
		return
	}

	// The body is optional; an empty request means "given now".
	var req MarkVaccineGivenRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
			return
		}
	}

	givenDate := time.Now()
	if req.GivenDate != nil {
		givenDate = *req.GivenDate
	}

	record, err := h.doctorService.MarkVaccineGiven(c.Request.Context(), doctorID, vaccineID, givenDate)
	if err != nil {
		if errors.Is(err, service.ErrVaccineNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Could not mark vaccine as given")
		}
		return
	}

	c.JSON(http.StatusOK, record)
}

// AddGrowthEntry records one growth measurement for a child.
func (h *DoctorHandler) AddGrowthEntry(c *gin.Context) {
	doctorID, ok := callerID(c)
	if !ok {
		return
	}

	childID, err := service.ParseObjectID(c.Param("childId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid child ID format")
		return
	}

	var req AddGrowthEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	params := service.GrowthEntryParams{
		ChildID:  childID,
		WeightKg: req.WeightKg,
		HeightCm: req.HeightCm,
		MUACCm:   req.MUACCm,
		Alerts:   req.Alerts,
	}
	if req.Date != nil {
		params.Date = *req.Date
	}

	entry, err := h.doctorService.AddGrowthEntry(c.Request.Context(), doctorID, params)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrChildNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrGrowthEntryIncomplete):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Could not record growth entry")
		}
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// GetGrowthHistory lists a child's growth measurements.
func (h *DoctorHandler) GetGrowthHistory(c *gin.Context) {
	childID, err := service.ParseObjectID(c.Param("childId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid child ID format")
		return
	}

	entries, err := h.doctorService.GetGrowthHistory(c.Request.Context(), childID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not fetch growth history")
		return
	}

	c.JSON(http.StatusOK, entries)
}
