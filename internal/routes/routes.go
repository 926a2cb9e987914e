package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/cortemaestro/barbershop-api/internal/audit"
	"github.com/cortemaestro/barbershop-api/internal/cache"
	"github.com/cortemaestro/barbershop-api/internal/config"
	domain "github.com/cortemaestro/barbershop-api/internal/domain/appointment"
	"github.com/cortemaestro/barbershop-api/internal/handlers"
	infraRepo "github.com/cortemaestro/barbershop-api/internal/infra/repository"
	"github.com/cortemaestro/barbershop-api/internal/middleware"
	"github.com/cortemaestro/barbershop-api/internal/observability/metrics"
	"github.com/cortemaestro/barbershop-api/internal/storage"
	ucAppointment "github.com/cortemaestro/barbershop-api/internal/usecase/appointment"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)
	r.Use(httpMetrics.Middleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	kpiCache := cache.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.CacheTTL)
	imageStore := storage.NewImageStore(cfg)

	schedule := domain.Schedule{
		StartHour:   cfg.WorkStartHour,
		EndHour:     cfg.WorkEndHour,
		StepMinutes: cfg.SlotStepMin,
	}

	// ======================================================
	// USE CASES — APPOINTMENTS
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		auditDispatcher,
		cfg.Timezone,
	)

	transitionUC := ucAppointment.NewTransitionAppointment(
		appointmentRepo,
		auditDispatcher,
		cfg.Timezone,
	)

	cancelLatestUC := ucAppointment.NewCancelLatestByPhone(
		appointmentRepo,
		auditDispatcher,
		cfg.Timezone,
	)

	availabilityUC := ucAppointment.NewGetAvailability(
		appointmentRepo,
		schedule,
	)

	summaryUC := ucAppointment.NewDailySummary(
		appointmentRepo,
		cfg.Timezone,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	serviceHandler := handlers.NewServiceHandler(db)
	barberHandler := handlers.NewBarberHandler(db)
	commentHandler := handlers.NewCommentHandler(db)
	galleryHandler := handlers.NewGalleryHandler(db, imageStore)

	publicHandler := handlers.NewPublicHandler(
		appointmentRepo,
		createAppointmentUC,
		cancelLatestUC,
		availabilityUC,
		kpiCache,
		cfg.Timezone,
	)

	appointmentHandler := handlers.NewAppointmentHandler(
		db,
		transitionUC,
		summaryUC,
		auditDispatcher,
		kpiCache,
		cfg.Timezone,
	)

	dashboardHandler := handlers.NewDashboardHandler(db, kpiCache, cfg.Timezone)
	auditLogsHandler := handlers.NewAuditLogsHandler(db, cfg.Timezone)

	// ======================================================
	// OPS
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC (website)
		// ------------------------------
		api.GET("/services", serviceHandler.List)
		api.GET("/barbers", barberHandler.List)
		api.GET("/gallery", galleryHandler.List)

		api.GET("/comments", commentHandler.List)
		api.POST("/comments", commentHandler.Create)

		api.POST("/appointments", publicHandler.CreateAppointment)
		api.POST("/appointments/cancel-latest", publicHandler.CancelLatest)
		api.POST("/available-times", publicHandler.AvailableTimes)
		api.GET("/availability", publicHandler.Availability)
		api.POST("/check-duplicate-appointment", publicHandler.CheckDuplicate)

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/logout", authHandler.Logout)

		// ------------------------------
		// ADMIN (cookie session)
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.POST("/services", serviceHandler.Create)
			secured.PATCH("/services/:id", serviceHandler.Update)
			secured.DELETE("/services/:id", serviceHandler.Delete)

			secured.POST("/barbers", barberHandler.Create)
			secured.PATCH("/barbers/:id", barberHandler.Update)
			secured.DELETE("/barbers/:id", barberHandler.Delete)

			secured.GET("/appointments", appointmentHandler.List)
			secured.GET("/appointments/summary", appointmentHandler.Summary)
			secured.PATCH("/appointments/:id", appointmentHandler.Transition)
			secured.DELETE("/appointments/:id", appointmentHandler.Delete)

			secured.PATCH("/comments/:id", commentHandler.Update)
			secured.DELETE("/comments/:id", commentHandler.Delete)

			secured.POST("/gallery", galleryHandler.Create)
			secured.PUT("/gallery", galleryHandler.Reorder)
			secured.PATCH("/gallery/:id", galleryHandler.Update)
			secured.DELETE("/gallery/:id", galleryHandler.Delete)

			secured.GET("/admin/dashboard", dashboardHandler.Dashboard)
			secured.GET("/admin/metrics", dashboardHandler.Metrics)
			secured.GET("/admin/audit-logs", auditLogsHandler.List)
		}
	}
}
