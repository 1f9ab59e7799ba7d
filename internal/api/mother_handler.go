package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"matricare/maternal-app/internal/domain"
	"matricare/maternal-app/internal/pregnancy"
	"matricare/maternal-app/internal/service"

	"github.com/gin-gonic/gin"
)

// MotherHandler holds the mother-facing service dependency.
type MotherHandler struct {
	motherService service.MotherService
}

// NewMotherHandler creates a new MotherHandler.
func NewMotherHandler(motherService service.MotherService) *MotherHandler {
	return &MotherHandler{motherService: motherService}
}

// --- Request Structs ---

type CreateMaternalRecordRequest struct {
	// Exactly one of LMPDate and EDD must be set; the service derives the
	// other (EDD = LMP + 280 days).
	LMPDate *time.Time `json:"lmpDate"`
	EDD     *time.Time `json:"edd"`
	Parity  int        `json:"parity" binding:"min=0"`
}

type RequestAppointmentRequest struct {
	DoctorID string                 `json:"doctorId" binding:"required"`
	Date     time.Time              `json:"date" binding:"required"`
	TimeSlot string                 `json:"timeSlot" binding:"required"`
	Type     domain.AppointmentType `json:"type" binding:"required,oneof=checkup ultrasound followup emergency vaccination"`
	Notes    string                 `json:"notes"`
	Location string                 `json:"location"`
}

type RegisterChildRequest struct {
	Name        string    `json:"name" binding:"required"`
	DateOfBirth time.Time `json:"dob" binding:"required"`
	Gender      string    `json:"gender" binding:"required,oneof=male female"`
}

type RecordVitalsRequest struct {
	Systolic  *int     `json:"systolic" binding:"omitempty,min=70,max=250"`
	Diastolic *int     `json:"diastolic" binding:"omitempty,min=40,max=180"`
	WeightKg  *float64 `json:"weightKg" binding:"omitempty,min=30,max=200"`
	HeightCm  *float64 `json:"heightCm" binding:"omitempty,min=100,max=250"`
	Notes     string   `json:"notes"`
}

type ReportUploadURLRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

type ConfirmReportUploadRequest struct {
	ObjectKey   string `json:"objectKey" binding:"required"`
	FileName    string `json:"fileName" binding:"required"`
	Size        int64  `json:"size" binding:"min=0"`
	ContentType string `json:"contentType"`
}

type ProfileImageURLRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

type ConfirmProfileImageRequest struct {
	ObjectKey string `json:"objectKey" binding:"required"`
}

// --- Handler Methods ---

// CreateMaternalRecord opens a new pregnancy cycle for the caller.
func (h *MotherHandler) CreateMaternalRecord(c *gin.Context) {
	motherID, ok := callerID(c)
	if !ok {
		return
	}

	var req CreateMaternalRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	record, err := h.motherService.CreateMaternalRecord(c.Request.Context(), motherID, req.LMPDate, req.EDD, req.Parity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMaternalRecordExists):
			abortWithError(c, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrLMPOrEDDRequired), errors.Is(err, service.ErrNegativeParity):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Could not create maternal record")
		}
		return
	}

	c.JSON(http.StatusCreated, record)
}

// GetMaternalRecord returns the caller's live pregnancy record.
func (h *MotherHandler) GetMaternalRecord(c *gin.Context) {
	motherID, ok := callerID(c)
	if !ok {
		return
	}

	record, err := h.motherService.GetMaternalRecord(c.Request.Context(), motherID)
	if err != nil {
		if errors.Is(err, service.ErrMaternalRecordNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Could not fetch maternal record")
		}
		return
	}

	c.JSON(http.StatusOK, record)
}

// CloseMaternalRecord ends the caller's pregnancy cycle.
func (h *MotherHandler) CloseMaternalRecord(c *gin.Context) {
	motherID, ok := callerID(c)
	if !ok {
		return
	}

	if err := h.motherService.CloseMaternalRecord(c.Request.Context(), motherID); err != nil {
		if errors.Is(err, service.ErrMaternalRecordNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Could not close maternal record")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "maternal record closed"})
}

// GetPregnancyStatus returns the current gestational week, day and trimester.
// An optional ?asOf=2025-07-02 query computes the projection for that date.
func (h *MotherHandler) GetPregnancyStatus(c *gin.Context) {
	motherID, ok := callerID(c)
	if !ok {
		return
	}

	asOf := time.Now()
	if raw := c.Query("asOf"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "asOf must be formatted YYYY-MM-DD")
			return
		}
		asOf = parsed
	}

	status, err := h.motherService.GetPregnancyStatus(c.Request.Context(), motherID, asOf)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMaternalRecordNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, pregnancy.ErrFutureLMP):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Could not compute pregnancy status")
		}
		return
	}

	c.JSON(http.StatusOK, status)
}

// GetDashboard returns the mother's home-screen aggregate.
func (h *MotherHandler) GetDashboard(c *gin.Context) {
	motherID, ok := callerID(c)
	if !ok {
		return
	}

	dashboard, err := h.motherService.GetDashboard(c.Request.Context(), motherID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not load dashboard")
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

// GetCheckupHistory lists the caller's checkups, newest first.
func (h *MotherHandler) GetCheckupHistory(c *gin.Context) {
	motherID, ok := callerID(c)
	if !ok {
		return
	}

	checkups, err := h.motherService.GetCheckupHistory(c.Request.Context(), motherID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not fetch checkup history")
		return
	}

	c.JSON(http.StatusOK, checkups)
}

// RecordVitals stores a self-reported vitals entry with its derived
// classification.
func (h *MotherHandler) RecordVitals(c *gin.Context) {
	motherID, ok := callerID(c)
	if !ok {
		return
	}

	var req RecordVitalsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	reading, err := h.motherService.RecordVitals(c.Request.Context(), motherID, service.VitalsParams{
		Systolic:  req.Systolic,
		Diastolic: req.Diastolic,
		WeightKg:  req.WeightKg,
		HeightCm:  req.HeightCm,
		Notes:     req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrVitalsIncomplete), errors.Is(err, service.ErrVitalsOutOfRange):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrMaternalRecordNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Could not record vitals")
		}
		return
	}

	c.JSON(http.StatusCreated, reading)
}

// GetVitalsHistory lists the caller's self-reported vitals, newest first.
func (h *MotherHandler) GetVitalsHistory(c *gin.Context) {
	motherID, ok := callerID(c)
	if !ok {
		return
	}

	readings, err := h.motherService.GetVitalsHistory(c.Request.Context(), motherID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not fetch vitals history")
		return
	}

	c.JSON(http.StatusOK, readings)
}

// GetAdvice lists doctor advice addressed to the caller.
func (h *MotherHandler) GetAdvice(c *gin.Context) {
	motherID, ok := callerID(c)
	if !ok {
		return
	}

	advice, err := h.motherService.GetAdvice(c.Request.Context(), motherID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not fetch advice")
		return
	}

	c.JSON(http.StatusOK, advice)
}

// MarkAdviceRead marks one piece of advice as read.
func (h *MotherHandler) MarkAdviceRead(c *gin.Context) {
	motherID, ok := callerID(c)
	if !ok {
		return
	}

	adviceID, err := service.ParseObjectID(c.Param("adviceId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid advice ID format")
		return
	}

	advice, err := h.motherService.MarkAdviceRead(c.Request.Context(), motherID, adviceID)
	if err != nil {
		if errors.Is(err, service.ErrAdviceNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Could not mark advice as read")
		}
		return
	}

	c.JSON(http.StatusOK, advice)
}

// GetMessages lists messages received by the caller.
func (h *MotherHandler) GetMessages(c *gin.Context) {
	motherID, ok := callerID(c)
	if !ok {
		return
	}

	messages, err := h.motherService.GetMessages(c.Request.Context(), motherID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not fetch messages")
		return
	}

	c.JSON(http.StatusOK, messages)
}

// MarkMessageRead marks one received message as read.
func (h *MotherHandler) MarkMessageRead(c *gin.Context) {
	motherID, ok := callerID(c)
	if !ok {
		return
	}

	messageID, err := service.ParseObjectID(c.Param("messageId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid message ID format")
		return
	}

	message, err := h.motherService.MarkMessageRead(c.Request.Context(), motherID, messageID)
	if err != nil {
		if errors.Is(err, service.ErrMessageNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Could not mark message as read")
		}
		return
	}

	c.JSON(http.StatusOK, message)
}

// RequestAppointment books a pending appointment with a doctor.
func (h *MotherHandler) RequestAppointment(c *gin.Context) {
	motherID, ok := callerID(c)
	if !ok {
		return
	}

	var req RequestAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	doctorID, err := service.ParseObjectID(req.DoctorID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid doctor ID format")
		return
	}

	appointment, err := h.motherService.RequestAppointment(c.Request.Context(), motherID, doctorID, req.Date, req.TimeSlot, req.Type, req.Notes, req.Location)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDoctorNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNotDoctorRole):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Could not request appointment")
		}
		return
	}

	c.JSON(http.StatusCreated, appointment)
}

// GetAppointments lists the caller's appointments.
func (h *MotherHandler) GetAppointments(c *gin.Context) {
	motherID, ok := callerID(c)
	if !ok {
		return
	}

	appointments, err := h.motherService.GetAppointments(c.Request.Context(), motherID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not fetch appointments")
		return
	}

	c.JSON(http.StatusOK, appointments)
}

// CancelAppointment cancels one of the caller's own appointments.
func (h *MotherHandler) CancelAppointment(c *gin.Context) {
	motherID, ok := callerID(c)
	if !ok {
		return
	}

	appointmentID, err := service.ParseObjectID(c.Param("appointmentId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	if err := h.motherService.CancelAppointment(c.Request.Context(), motherID, appointmentID); err != nil {
		if errors.Is(err, service.ErrAppointmentNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Could not cancel appointment")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "appointment cancelled"})
}

// RegisterChild registers a newborn under the caller.
func (h *MotherHandler) RegisterChild(c *gin.Context) {
	motherID, ok := callerID(c)
	if !ok {
		return
	}

	var req RegisterChildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	child, err := h.motherService.RegisterChild(c.Request.Context(), motherID, req.Name, req.DateOfBirth, req.Gender)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusCreated, child)
}

// GetChildren lists the caller's registered children.
func (h *MotherHandler) GetChildren(c *gin.Context) {
	motherID, ok := callerID(c)
	if !ok {
		return
	}

	children, err := h.motherService.GetChildren(c.Request.Context(), motherID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not fetch children")
		return
	}

	c.JSON(http.StatusOK, children)
}

// GetVaccineSchedule lists one child's vaccine records.
func (h *MotherHandler) GetVaccineSchedule(c *gin.Context) {
	motherID, ok := callerID(c)
	if !ok {
		return
	}

	childID, err := service.ParseObjectID(c.Param("childId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid child ID format")
		return
	}

	records, err := h.motherService.GetVaccineSchedule(c.Request.Context(), motherID, childID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrChildNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrChildAccessDenied):
			abortWithError(c, http.StatusForbidden, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Could not fetch vaccine schedule")
		}
		return
	}

	c.JSON(http.StatusOK, records)
}

// RequestReportUploadURL returns a presigned PUT URL for a medical report.
func (h *MotherHandler) RequestReportUploadURL(c *gin.Context) {
	motherID, ok := callerID(c)
	if !ok {
		return
	}

	var req ReportUploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	resp, err := h.motherService.RequestReportUploadURL(c.Request.Context(), motherID, req.ContentType)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnsupportedReportType):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrUploadURLError):
			abortWithError(c, http.StatusBadGateway, "Object storage is unavailable")
		default:
			abortWithError(c, http.StatusInternalServerError, "Could not generate upload URL")
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ConfirmReportUpload records metadata after a finished presigned upload.
func (h *MotherHandler) ConfirmReportUpload(c *gin.Context) {
	motherID, ok := callerID(c)
	if !ok {
		return
	}

	var req ConfirmReportUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	upload, err := h.motherService.ConfirmReportUpload(c.Request.Context(), motherID, req.ObjectKey, req.FileName, req.Size, req.ContentType)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusCreated, upload)
}

// GetReports lists the caller's uploads with temporary download URLs.
func (h *MotherHandler) GetReports(c *gin.Context) {
	motherID, ok := callerID(c)
	if !ok {
		return
	}

	reports, err := h.motherService.GetReports(c.Request.Context(), motherID)
	if err != nil {
		if errors.Is(err, service.ErrDownloadURLError) {
			abortWithError(c, http.StatusBadGateway, "Object storage is unavailable")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Could not fetch reports")
		}
		return
	}

	c.JSON(http.StatusOK, reports)
}

// DeleteReport removes one of the caller's uploads and its stored object.
func (h *MotherHandler) DeleteReport(c *gin.Context) {
	motherID, ok := callerID(c)
	if !ok {
		return
	}

	uploadID, err := service.ParseObjectID(c.Param("reportId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid report ID format")
		return
	}

	if err := h.motherService.DeleteReport(c.Request.Context(), motherID, uploadID); err != nil {
		switch {
		case errors.Is(err, service.ErrReportNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrObjectDeleteError):
			abortWithError(c, http.StatusBadGateway, "Object storage is unavailable")
		default:
			abortWithError(c, http.StatusInternalServerError, "Could not delete report")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Report deleted"})
}

// RequestProfileImageUploadURL returns a presigned PUT URL for the caller's
// profile picture.
func (h *MotherHandler) RequestProfileImageUploadURL(c *gin.Context) {
	motherID, ok := callerID(c)
	if !ok {
		return
	}

	var req ProfileImageURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	resp, err := h.motherService.RequestProfileImageUploadURL(c.Request.Context(), motherID, req.ContentType)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnsupportedImageType):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrUploadURLError):
			abortWithError(c, http.StatusBadGateway, "Object storage is unavailable")
		default:
			abortWithError(c, http.StatusInternalServerError, "Could not generate upload URL")
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ConfirmProfileImage stores the uploaded object key on the caller's account.
func (h *MotherHandler) ConfirmProfileImage(c *gin.Context) {
	motherID, ok := callerID(c)
	if !ok {
		return
	}

	var req ConfirmProfileImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	err := h.motherService.ConfirmProfileImage(c.Request.Context(), motherID, req.ObjectKey)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidObjectKey):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrMotherNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Could not update profile image")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile image updated"})
}
