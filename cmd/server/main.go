package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"matricare/maternal-app/internal/api"
	"matricare/maternal-app/internal/config"
	"matricare/maternal-app/internal/repository/mongo"
	"matricare/maternal-app/internal/service"
	"matricare/maternal-app/internal/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("Starting Maternal Health Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
	}
	defer func() {
		log.Println("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Println("Database connection established.")

	// --- Ensure Indexes ---
	// The unique indexes double as concurrency guards (email, checkup week
	// bucket, midwife-mother pair), so index creation runs on every start.
	log.Println("Ensuring database indexes...")
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureUserIndexes(ctx, appDB.Collection("users"))
		mongo.EnsureMaternalIndexes(ctx, appDB.Collection("maternal_records"))
		mongo.EnsureCheckupIndexes(ctx, appDB.Collection("weekly_checkups"))
		mongo.EnsureAssignmentIndexes(ctx, appDB.Collection("midwife_assignments"))
		mongo.EnsureAppointmentIndexes(ctx, appDB.Collection("appointments"))
		mongo.EnsureAdviceIndexes(ctx, appDB.Collection("doctor_advice"))
		mongo.EnsureMessageIndexes(ctx, appDB.Collection("messages"))
		mongo.EnsureChildIndexes(ctx, appDB)
		mongo.EnsureUploadIndexes(ctx, appDB.Collection("uploads"))
		mongo.EnsureVitalsIndexes(ctx, appDB.Collection("vitals_readings"))
		mongo.EnsureScheduleIndexes(ctx, appDB.Collection("checkup_schedule"))
		log.Println("Index creation process completed.")
	}()

	// --- Initialize Storage ---
	log.Println("Initializing file storage service...")
	fileStorage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize S3 storage: %v", err)
	}

	// --- Initialize Repositories ---
	log.Println("Initializing repositories...")
	userRepo := mongo.NewMongoUserRepository(appDB)
	maternalRepo := mongo.NewMongoMaternalRepository(appDB)
	checkupRepo := mongo.NewMongoCheckupRepository(appDB)
	assignmentRepo := mongo.NewMongoAssignmentRepository(appDB)
	appointmentRepo := mongo.NewMongoAppointmentRepository(appDB)
	adviceRepo := mongo.NewMongoAdviceRepository(appDB)
	messageRepo := mongo.NewMongoMessageRepository(appDB)
	childRepo := mongo.NewMongoChildRepository(appDB)
	uploadRepo := mongo.NewMongoUploadRepository(appDB)
	vitalsRepo := mongo.NewMongoVitalsRepository(appDB)
	scheduleRepo := mongo.NewMongoScheduleRepository(appDB)

	// --- Initialize Services ---
	log.Println("Initializing services...")
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration, cfg.JWT.RefreshExpiration)
	motherService := service.NewMotherService(userRepo, maternalRepo, checkupRepo, adviceRepo, messageRepo, appointmentRepo, childRepo, uploadRepo, vitalsRepo, fileStorage)
	midwifeService := service.NewMidwifeService(userRepo, assignmentRepo, checkupRepo, maternalRepo, adviceRepo, scheduleRepo)
	doctorService := service.NewDoctorService(userRepo, maternalRepo, checkupRepo, adviceRepo, appointmentRepo, messageRepo, childRepo)

	// --- Initialize Gin Engine ---
	// gin.SetMode(gin.ReleaseMode) // Uncomment for production
	router := gin.Default() // Includes Logger and Recovery middleware

	// --- Setup Routes ---
	log.Println("Setting up API routes...")
	api.SetupRoutes(router, cfg.JWT.Secret, authService, motherService, midwifeService, doctorService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
