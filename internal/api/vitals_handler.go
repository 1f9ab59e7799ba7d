package api

import (
	"fmt"
	"net/http"

	"matricare/maternal-app/internal/pregnancy"

	"github.com/gin-gonic/gin"
)

// VitalsHandler serves stateless vitals classification. Nothing here touches
// storage; the endpoints exist so clients and field tools can classify
// readings without recording them.
type VitalsHandler struct{}

// NewVitalsHandler creates a new VitalsHandler.
func NewVitalsHandler() *VitalsHandler {
	return &VitalsHandler{}
}

type ClassifyBPRequest struct {
	Systolic  int `json:"systolic" binding:"required,min=70,max=250"`
	Diastolic int `json:"diastolic" binding:"required,min=40,max=180"`
}

type ClassifyBMIRequest struct {
	WeightKg float64 `json:"weightKg" binding:"required,min=30,max=200"`
	HeightCm float64 `json:"heightCm" binding:"required,min=100,max=250"`
}

// ClassifyBP classifies a blood pressure reading.
func (h *VitalsHandler) ClassifyBP(c *gin.Context) {
	var req ClassifyBPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"systolic":  req.Systolic,
		"diastolic": req.Diastolic,
		"status":    pregnancy.ClassifyBP(req.Systolic, req.Diastolic),
	})
}

// ClassifyBMI computes and categorizes BMI from weight and height.
func (h *VitalsHandler) ClassifyBMI(c *gin.Context) {
	var req ClassifyBMIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	c.JSON(http.StatusOK, pregnancy.ClassifyBMI(req.WeightKg, req.HeightCm))
}
