package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/chentesbarber/booking-api/internal/audit"
	"github.com/chentesbarber/booking-api/internal/cache"
	"github.com/chentesbarber/booking-api/internal/config"
	domain "github.com/chentesbarber/booking-api/internal/domain/booking"
	"github.com/chentesbarber/booking-api/internal/handlers"
	infraRepo "github.com/chentesbarber/booking-api/internal/infra/repository"
	"github.com/chentesbarber/booking-api/internal/metrics"
	"github.com/chentesbarber/booking-api/internal/middleware"
	"github.com/chentesbarber/booking-api/internal/session"
	ucbooking "github.com/chentesbarber/booking-api/internal/usecase/booking"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) *ucbooking.PurgePastAvailability {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)

	availabilityCache := ucbooking.AvailabilityCache(nil)
	if rdb := cache.NewRedisClient(cfg); rdb != nil {
		availabilityCache = cache.NewAvailability(rdb)
	}

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	sessionStore := session.NewStore(session.DefaultTTL)

	// ======================================================
	// USE CASES
	// ======================================================
	availableTimesUC := ucbooking.NewAvailableTimes(bookingRepo, availabilityCache)

	createAppointmentUC := ucbooking.NewCreateAppointment(
		bookingRepo,
		availabilityCache,
		auditDispatcher,
	)

	deleteAppointmentUC := ucbooking.NewDeleteAppointment(
		bookingRepo,
		availabilityCache,
		auditDispatcher,
	)

	listAppointmentsUC := ucbooking.NewListAppointments(bookingRepo)

	saveAvailabilityUC := ucbooking.NewSaveAvailability(
		bookingRepo,
		availabilityCache,
		auditDispatcher,
	)

	toggleSlotUC := ucbooking.NewToggleSlot(
		bookingRepo,
		availabilityCache,
		auditDispatcher,
	)

	deleteServiceUC := ucbooking.NewDeleteService(
		bookingRepo,
		availabilityCache,
		auditDispatcher,
		domain.DeletePolicy(cfg.DeletePolicy),
	)

	purgeUC := ucbooking.NewPurgePastAvailability(bookingRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	catalogHandler := handlers.NewCatalogHandler(db, cfg, auditDispatcher, deleteServiceUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	publicHandler := handlers.NewPublicHandler(
		db,
		bookingRepo,
		availableTimesUC,
		createAppointmentUC,
	)

	availabilityHandler := handlers.NewAvailabilityHandler(
		bookingRepo,
		saveAvailabilityUC,
		toggleSlotUC,
	)

	appointmentHandler := handlers.NewAppointmentHandler(
		listAppointmentsUC,
		deleteAppointmentUC,
	)

	sessionHandler := handlers.NewBookingSessionHandler(
		sessionStore,
		bookingRepo,
		availableTimesUC,
		createAppointmentUC,
	)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/barbers", publicHandler.ListBarbers)
			publicAPI.GET("/services", publicHandler.ListServices)
			publicAPI.GET("/availability", publicHandler.AvailableTimes)
			publicAPI.GET("/dates", publicHandler.AvailableDates)
			publicAPI.POST("/appointments", publicHandler.CreateAppointment)
			publicAPI.GET("/appointments/code/:code", publicHandler.GetByCode)

			sessions := publicAPI.Group("/booking-sessions")
			{
				sessions.POST("", sessionHandler.Start)
				sessions.GET("/:id", sessionHandler.Show)
				sessions.POST("/:id/date", sessionHandler.SelectDate)
				sessions.POST("/:id/barber", sessionHandler.SelectBarber)
				sessions.POST("/:id/time", sessionHandler.SelectTime)
				sessions.POST("/:id/details", sessionHandler.Prepare)
				sessions.POST("/:id/confirm", sessionHandler.Confirm)
				sessions.POST("/:id/cancel", sessionHandler.CancelConfirmation)
			}
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// ADMIN
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(cfg))
		{
			admin.POST("/barbers", catalogHandler.CreateBarber)
			admin.PATCH("/barbers/:id", catalogHandler.UpdateBarber)
			admin.DELETE("/barbers/:id", catalogHandler.DeleteBarber)

			admin.POST("/services", catalogHandler.CreateService)
			admin.PATCH("/services/:id", catalogHandler.UpdateService)
			admin.DELETE("/services/:id", catalogHandler.DeleteService)

			admin.GET("/availability", availabilityHandler.GetSlots)
			admin.PUT("/availability", availabilityHandler.Save)
			admin.POST("/availability/toggle", availabilityHandler.Toggle)

			admin.GET("/appointments", appointmentHandler.List)
			admin.DELETE("/appointments/:id", appointmentHandler.Delete)

			admin.GET("/audit-logs", auditLogsHandler.List)
		}
	}

	r.GET("/metrics", metrics.Handler())

	return purgeUC
}
