package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	"github.com/BruksfildServices01/barber-booking/internal/domain/user"
	"github.com/BruksfildServices01/barber-booking/internal/handlers"
	infraRepo "github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

type Deps struct {
	DB      *gorm.DB
	Config  *config.Config
	Log     *zap.Logger
	Audit   *audit.Dispatcher
	Limiter middleware.RateLimiter // nil disables rate limiting
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLog(d.Log))
	r.Use(middleware.CORSMiddleware())

	limited := func() gin.HandlerFunc {
		if d.Limiter == nil {
			return func(c *gin.Context) { c.Next() }
		}
		return d.Limiter.Middleware(d.Log)
	}

	// ======================================================
	// INFRA
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)

	// ======================================================
	// USE CASES (APPOINTMENTS)
	// ======================================================
	availabilityUC := ucAppointment.NewGetAvailability(appointmentRepo, d.Log)
	createBookingUC := ucAppointment.NewCreateBooking(appointmentRepo, d.Audit, d.Log)
	updateStatusUC := ucAppointment.NewUpdateAppointmentStatus(appointmentRepo, d.Audit)
	listClientUC := ucAppointment.NewListClientAppointments(appointmentRepo)
	barberScheduleUC := ucAppointment.NewListBarberSchedule(appointmentRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	healthHandler := handlers.NewHealthHandler(d.DB)
	authHandler := handlers.NewAuthHandler(d.DB, d.Config, d.Log)
	meHandler := handlers.NewMeHandler(d.DB, d.Log)
	serviceHandler := handlers.NewServiceHandler(d.DB, d.Log)
	barberHandler := handlers.NewBarberHandler(d.DB, d.Audit, d.Log)
	notificationHandler := handlers.NewNotificationHandler(d.DB, d.Log)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB, d.Log)

	appointmentHandler := handlers.NewAppointmentHandler(
		availabilityUC,
		createBookingUC,
		updateStatusUC,
		listClientUC,
		barberScheduleUC,
		d.Log,
	)

	r.GET("/health", healthHandler.Health)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		api.GET("/services", serviceHandler.List)
		api.GET("/barbers", barberHandler.List)
		api.GET("/availability", limited(), appointmentHandler.Availability)

		// ------------------------------
		// AUTHENTICATED
		// ------------------------------
		secured := api.Group("")
		secured.Use(middleware.AuthMiddleware(d.Config))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.PATCH("/appointments/:id/status", appointmentHandler.UpdateStatus)

			secured.GET("/notifications", notificationHandler.ListMine)
			secured.PATCH("/notifications/:id/read", notificationHandler.MarkMineRead)

			// ------------------------------
			// CLIENT
			// ------------------------------
			client := secured.Group("")
			client.Use(middleware.RequireRole(user.RoleClient))
			{
				client.POST("/appointments", limited(), appointmentHandler.Create)
				client.GET("/appointments/me", appointmentHandler.ListMine)
			}

			// ------------------------------
			// BARBER
			// ------------------------------
			barber := secured.Group("/barber")
			barber.Use(middleware.RequireRole(user.RoleBarber))
			{
				barber.GET("/working-hours", barberHandler.GetWorkingHours)
				barber.PUT("/working-hours", barberHandler.UpdateWorkingHours)
				barber.GET("/schedule", appointmentHandler.BarberSchedule)
				barber.GET("/notifications", notificationHandler.ListBarber)
				barber.PATCH("/notifications/:id/read", notificationHandler.MarkBarberRead)
			}

			// ------------------------------
			// ADMIN
			// ------------------------------
			admin := secured.Group("/admin")
			admin.Use(middleware.RequireRole(user.RoleAdmin))
			{
				admin.POST("/services", serviceHandler.Create)
				admin.PATCH("/services/:id", serviceHandler.Update)
				admin.POST("/barbers", barberHandler.Create)
				admin.GET("/notifications", notificationHandler.ListAdmin)
				admin.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
