package routes

import (
	"time"

	"careconnect-backend/internal/adapters/http/handlers"
	"careconnect-backend/internal/adapters/http/middleware"
	"careconnect-backend/internal/adapters/persistence/repositories"
	"careconnect-backend/internal/config"
	"careconnect-backend/internal/core/domain"
	"careconnect-backend/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	doctorRepo := repositories.NewDoctorRepository(db)
	patientRepo := repositories.NewPatientRepository(db)
	apptRepo := repositories.NewAppointmentRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, cfg)
	apptService := services.NewAppointmentService(apptRepo, doctorRepo, patientRepo)
	doctorService := services.NewDoctorService(userRepo, doctorRepo, apptRepo)
	profileService := services.NewProfileService(patientRepo)
	statsService := services.NewStatsService(userRepo, apptRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	apptHandler := handlers.NewAppointmentHandler(apptService)
	doctorHandler := handlers.NewDoctorHandler(doctorService)
	adminHandler := handlers.NewAdminHandler(statsService)
	patientHandler := handlers.NewPatientHandler(profileService)

	// Page-path redirect policy runs before everything else; it needs
	// the optional principal to decide.
	app.Use(middleware.OptionalAuth(cfg))
	app.Use(middleware.RouteGuard())

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	api := app.Group("/api")

	// Auth routes (public)
	authRoutes := api.Group("/auth")
	authRoutes.Post("/register", authHandler.Register)
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Post("/refresh", authHandler.RefreshToken)
	authRoutes.Post("/logout", authHandler.Logout)
	authRoutes.Post("/activate", authHandler.Activate)
	authRoutes.Post("/logout-all", middleware.AuthMiddleware(cfg), authHandler.LogoutAll)
	authRoutes.Get("/me", middleware.AuthMiddleware(cfg), authHandler.Me)

	// Public doctor roster (cacheable)
	api.Get("/doctors", middleware.PublicCache(5*time.Minute), doctorHandler.Roster)

	// Appointment routes (authenticated)
	apptRoutes := api.Group("/appointments")
	apptRoutes.Use(middleware.AuthMiddleware(cfg))
	apptRoutes.Use(middleware.NoCacheHeaders())
	apptRoutes.Post("/", apptHandler.Book)
	apptRoutes.Get("/", apptHandler.List)
	apptRoutes.Get("/:id", apptHandler.Get)
	apptRoutes.Delete("/:id", apptHandler.Cancel)

	// Patient profile routes (PATIENT only)
	patientRoutes := api.Group("/patient")
	patientRoutes.Use(middleware.AuthMiddleware(cfg))
	patientRoutes.Use(middleware.PatientOnly())
	patientRoutes.Use(middleware.NoCacheHeaders())
	patientRoutes.Get("/profile", patientHandler.GetProfile)
	patientRoutes.Put("/profile", patientHandler.UpdateProfile)

	// Admin routes (ADMIN only)
	adminRoutes := api.Group("/admin")
	adminRoutes.Use(middleware.AuthMiddleware(cfg))
	adminRoutes.Use(middleware.AdminOnly())
	adminRoutes.Use(middleware.NoCacheHeaders())
	adminRoutes.Get("/stats", adminHandler.Stats)
	adminRoutes.Get("/doctors", doctorHandler.List)
	adminRoutes.Post("/doctors", doctorHandler.Create)
	adminRoutes.Get("/doctors/:id", doctorHandler.Get)
	adminRoutes.Put("/doctors/:id", doctorHandler.Update)
	adminRoutes.Delete("/doctors/:id", doctorHandler.Delete)

	// Doctor schedule routes (DOCTOR or ADMIN)
	doctorRoutes := api.Group("/doctor")
	doctorRoutes.Use(middleware.AuthMiddleware(cfg))
	doctorRoutes.Use(middleware.RoleMiddleware(domain.RoleDoctor, domain.RoleAdmin))
	doctorRoutes.Use(middleware.NoCacheHeaders())
	doctorRoutes.Get("/appointments", apptHandler.List)
}
