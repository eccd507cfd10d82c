package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sreeram023/event-approval-backend/config"
	"github.com/sreeram023/event-approval-backend/database"
	"github.com/sreeram023/event-approval-backend/internal/auditlog"
	"github.com/sreeram023/event-approval-backend/internal/auth"
	"github.com/sreeram023/event-approval-backend/internal/calendar"
	"github.com/sreeram023/event-approval-backend/internal/certificate"
	"github.com/sreeram023/event-approval-backend/internal/notification"
	"github.com/sreeram023/event-approval-backend/internal/reports"
	"github.com/sreeram023/event-approval-backend/internal/request"
	"github.com/sreeram023/event-approval-backend/internal/venue"
	"github.com/sreeram023/event-approval-backend/middleware"

	_ "github.com/sreeram023/event-approval-backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Setup wires repositories, services and handlers onto the engine.
func Setup(r *gin.Engine, cfg *config.Config) {
	db := database.DB

	// Repositories
	authRepo := auth.NewRepository(db)
	auditRepo := auditlog.NewRepository(db)
	venueRepo := venue.NewRepository(db)
	calendarRepo := calendar.NewRepository(db)
	notificationRepo := notification.NewRepository(db)
	requestRepo := request.NewRepository(db)
	reportRepo := reports.NewRepository(db)

	// Services
	auditSvc := auditlog.NewService(auditRepo)
	authSvc := auth.NewService(authRepo, cfg)
	venueSvc := venue.NewService(venueRepo)
	calendarSvc := calendar.NewService(calendarRepo)
	notificationSvc := notification.NewService(notificationRepo, cfg)
	certGen := certificate.NewGenerator(config.CertificateDir)
	requestSvc := request.NewService(requestRepo, authRepo, venueSvc, calendarSvc, notificationSvc, certGen, auditSvc)

	// Handlers
	authHandler := auth.NewHandler(authSvc, auditSvc)
	auditHandler := auditlog.NewHandler(auditSvc)
	notificationHandler := notification.NewHandler(notificationSvc)
	venueHandler := venue.NewHandler(venueSvc)
	calendarHandler := calendar.NewHandler(calendarSvc)
	requestHandler := request.NewHandler(requestSvc)
	reportHandler := reports.NewHandler(reportRepo, reports.NewExporter())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimiter())
	api.Use(middleware.AuditMiddleware())

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
		authGroup.GET("/me", middleware.AuthMiddleware(cfg, authSvc), authHandler.Me)
	}

	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg, authSvc))

	requestRoutes := protected.Group("/requests")
	{
		requestRoutes.POST("", requestHandler.Create)
		requestRoutes.GET("", requestHandler.List)
		requestRoutes.GET("/me", requestHandler.List)
		requestRoutes.GET("/calendar/:month", requestHandler.CalendarOverview)
		requestRoutes.GET("/calendar/:month/:date", requestHandler.EventsByDay)
		requestRoutes.GET("/:requestId/download", requestHandler.Download)

		approverRoutes := requestRoutes.Group("")
		approverRoutes.Use(middleware.RequireApprover())
		{
			approverRoutes.PUT("/:requestId/approve", requestHandler.Approve)
			approverRoutes.PUT("/:requestId/reject", requestHandler.Reject)
		}

		adminRoutes := requestRoutes.Group("")
		adminRoutes.Use(middleware.RBACMiddleware(auth.InstitutionRoles...))
		{
			adminRoutes.POST("/:requestId/resolve-conflicts", requestHandler.ResolveConflicts)
		}
	}

	protected.GET("/notifications", notificationHandler.ListMine)
	protected.GET("/venues", venueHandler.List)

	calendarRoutes := protected.Group("/calendar")
	{
		calendarRoutes.GET("/:month", calendarHandler.Month)
		calendarRoutes.GET("/:month/:date", calendarHandler.Day)
	}

	auditRoutes := protected.Group("/auditlogs")
	auditRoutes.Use(middleware.RBACMiddleware(auth.InstitutionRoles...))
	{
		auditRoutes.GET("", auditHandler.GetAuditLogs)
		auditRoutes.GET("/:id", auditHandler.GetAuditLogByID)
	}

	reportRoutes := protected.Group("/reports")
	reportRoutes.Use(middleware.RBACMiddleware(auth.InstitutionRoles...))
	{
		reportRoutes.GET("/requests", reportHandler.ExportRequests)
	}
}
