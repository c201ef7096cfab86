package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"telemed-scheduling/config"
	deliveryHttp "telemed-scheduling/internal/delivery/http"
	"telemed-scheduling/internal/delivery/http/handler"
	"telemed-scheduling/internal/delivery/http/middleware"
	"telemed-scheduling/internal/infrastructure/cache"
	"telemed-scheduling/internal/infrastructure/database"
	"telemed-scheduling/internal/repository"
	"telemed-scheduling/internal/service"
	"telemed-scheduling/internal/usecase"
	"telemed-scheduling/pkg/jwt"
	"telemed-scheduling/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	SlotCache   *service.SlotCacheService
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db

	// Apply schema migrations before serving
	if err := database.RunMigrations(db, cfg.DB.MigrationsPath); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient

	// Rebuild slot counters from the store so the browse path survives
	// Redis restarts
	slotCache := service.NewSlotCacheService(db, redisClient, logrus.StandardLogger())
	app.SlotCache = slotCache

	syncCtx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	if err := slotCache.SyncOnStartup(syncCtx); err != nil {
		logrus.Warnf("Slot counter sync failed, counters may be stale: %+v", err)
	}

	// Initialize all layers
	server := initializeServer(cfg, db, redisClient, slotCache)
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, slotCache *service.SlotCacheService) *http.Server {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	roleRepo := repository.NewRoleRepository()
	doctorProfileRepo := repository.NewDoctorProfileRepository()
	patientProfileRepo := repository.NewPatientProfileRepository()
	timeSlotRepo := repository.NewTimeSlotRepository()
	consultationRequestRepo := repository.NewConsultationRequestRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	prescriptionRepo := repository.NewPrescriptionRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize domain services
	auditService := service.NewAuditService(log, auditLogRepo)
	matchRanker := service.NewMatchRanker()

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, roleRepo, doctorProfileRepo, patientProfileRepo, jwtService, redisClient, auditService)
	doctorUsecase := usecase.NewDoctorUsecase(db, log, doctorProfileRepo, auditService)
	matchUsecase := usecase.NewMatchUsecase(db, log, doctorProfileRepo, matchRanker)
	timeSlotUsecase := usecase.NewTimeSlotUsecase(db, log, timeSlotRepo, slotCache, auditService)
	bookingUsecase := usecase.NewBookingUsecase(db, log, timeSlotRepo, consultationRequestRepo, appointmentRepo, slotCache, auditService)
	consultationUsecase := usecase.NewConsultationUsecase(db, log, consultationRequestRepo, prescriptionRepo, doctorProfileRepo, auditService)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator, jwtService)
	doctorHandler := handler.NewDoctorHandler(doctorUsecase, matchUsecase, customValidator)
	timeSlotHandler := handler.NewTimeSlotHandler(timeSlotUsecase, customValidator)
	bookingHandler := handler.NewBookingHandler(bookingUsecase, customValidator)
	consultationHandler := handler.NewConsultationHandler(consultationUsecase, customValidator)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(authHandler, doctorHandler, timeSlotHandler, bookingHandler, consultationHandler, auditLogHandler, authMiddleware, corsMiddleware)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Stop background cache maintenance
	if app.SlotCache != nil {
		app.SlotCache.Stop()
	}

	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
