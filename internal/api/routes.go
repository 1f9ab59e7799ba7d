package api

import (
	"net/http"

	"matricare/maternal-app/internal/domain"
	"matricare/maternal-app/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	motherService service.MotherService,
	midwifeService service.MidwifeService,
	doctorService service.DoctorService,
) {
	authHandler := NewAuthHandler(authService)
	motherHandler := NewMotherHandler(motherService)
	midwifeHandler := NewMidwifeHandler(midwifeService)
	doctorHandler := NewDoctorHandler(doctorService)
	vitalsHandler := NewVitalsHandler()

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.POST("/auth/logout", authHandler.Logout)

		protected.GET("/me", func(c *gin.Context) {
			userIDStr, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			role, _ := getUserRoleFromContext(c)
			c.JSON(http.StatusOK, gin.H{"userId": userIDStr, "role": role})
		})

		// --- Stateless Vitals Classification ---
		vitalsGroup := protected.Group("/vitals")
		{
			vitalsGroup.POST("/bp", vitalsHandler.ClassifyBP)
			vitalsGroup.POST("/bmi", vitalsHandler.ClassifyBMI)
		}

		// --- Mother Routes ---
		motherGroup := protected.Group("/mother")
		motherGroup.Use(RoleMiddleware(domain.RoleMother))
		{
			motherGroup.POST("/record", motherHandler.CreateMaternalRecord)
			motherGroup.GET("/record", motherHandler.GetMaternalRecord)
			motherGroup.DELETE("/record", motherHandler.CloseMaternalRecord)
			motherGroup.GET("/pregnancy", motherHandler.GetPregnancyStatus)

			motherGroup.GET("/dashboard", motherHandler.GetDashboard)
			motherGroup.GET("/checkups", motherHandler.GetCheckupHistory)

			motherGroup.POST("/vitals", motherHandler.RecordVitals)
			motherGroup.GET("/vitals", motherHandler.GetVitalsHistory)

			motherGroup.GET("/advice", motherHandler.GetAdvice)
			motherGroup.PATCH("/advice/:adviceId/read", motherHandler.MarkAdviceRead)
			motherGroup.GET("/messages", motherHandler.GetMessages)
			motherGroup.PATCH("/messages/:messageId/read", motherHandler.MarkMessageRead)

			motherGroup.POST("/appointments", motherHandler.RequestAppointment)
			motherGroup.GET("/appointments", motherHandler.GetAppointments)
			motherGroup.DELETE("/appointments/:appointmentId", motherHandler.CancelAppointment)

			motherGroup.POST("/children", motherHandler.RegisterChild)
			motherGroup.GET("/children", motherHandler.GetChildren)
			motherGroup.GET("/children/:childId/vaccines", motherHandler.GetVaccineSchedule)

			motherGroup.POST("/reports/upload-url", motherHandler.RequestReportUploadURL)
			motherGroup.POST("/reports/confirm", motherHandler.ConfirmReportUpload)
			motherGroup.GET("/reports", motherHandler.GetReports)
			motherGroup.DELETE("/reports/:reportId", motherHandler.DeleteReport)

			motherGroup.POST("/profile-image/upload-url", motherHandler.RequestProfileImageUploadURL)
			motherGroup.POST("/profile-image/confirm", motherHandler.ConfirmProfileImage)
		}

		// --- Midwife Routes ---
		midwifeGroup := protected.Group("/midwife")
		midwifeGroup.Use(RoleMiddleware(domain.RoleMidwife))
		{
			midwifeGroup.POST("/mothers", midwifeHandler.AssignMother)
			midwifeGroup.GET("/mothers", midwifeHandler.GetAssignedMothers)
			midwifeGroup.GET("/mothers/:motherId", midwifeHandler.GetMotherDetails)
			midwifeGroup.PATCH("/assignments/:assignmentId/complete", midwifeHandler.CompleteAssignment)

			midwifeGroup.POST("/checkups", midwifeHandler.CreateCheckup)
			midwifeGroup.GET("/checkups", midwifeHandler.GetMyCheckups)

			midwifeGroup.POST("/schedule", midwifeHandler.ScheduleCheckup)
			midwifeGroup.GET("/schedule/pending", midwifeHandler.GetPendingCheckups)
			midwifeGroup.PATCH("/schedule/:scheduleId/complete", midwifeHandler.CompleteScheduledCheckup)

			midwifeGroup.GET("/dashboard", midwifeHandler.GetDashboard)
		}

		// --- Doctor Routes ---
		doctorGroup := protected.Group("/doctor")
		doctorGroup.Use(RoleMiddleware(domain.RoleDoctor))
		{
			doctorGroup.GET("/patients", doctorHandler.GetPatients)
			doctorGroup.GET("/patients/:motherId", doctorHandler.GetPatientDetails)
			doctorGroup.PATCH("/patients/:motherId/risk-flags", doctorHandler.AddRiskFlags)

			doctorGroup.POST("/advice", doctorHandler.CreateAdvice)
			doctorGroup.GET("/advice", doctorHandler.GetMyAdvice)

			doctorGroup.GET("/appointments", doctorHandler.GetAppointments)
			doctorGroup.PATCH("/appointments/:appointmentId/status", doctorHandler.UpdateAppointmentStatus)

			doctorGroup.GET("/children/:childId/growth", doctorHandler.GetGrowthHistory)
			doctorGroup.POST("/children/:childId/growth", doctorHandler.AddGrowthEntry)
			doctorGroup.POST("/children/:childId/vaccines", doctorHandler.ScheduleVaccine)
			doctorGroup.PATCH("/vaccines/:vaccineId/given", doctorHandler.MarkVaccineGiven)
		}

		// --- Messaging (doctors and midwives) ---
		messagingGroup := protected.Group("/messages")
		messagingGroup.Use(RoleMiddleware(domain.RoleDoctor, domain.RoleMidwife))
		{
			messagingGroup.POST("", doctorHandler.SendMessage)
			messagingGroup.GET("/:userId", doctorHandler.GetConversation)
		}
	}
}
