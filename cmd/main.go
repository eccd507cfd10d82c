package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/sreeram023/event-approval-backend/config"
	"github.com/sreeram023/event-approval-backend/database"
	"github.com/sreeram023/event-approval-backend/internal/auditlog"
	"github.com/sreeram023/event-approval-backend/internal/auth"
	"github.com/sreeram023/event-approval-backend/internal/calendar"
	"github.com/sreeram023/event-approval-backend/internal/notification"
	"github.com/sreeram023/event-approval-backend/internal/request"
	"github.com/sreeram023/event-approval-backend/internal/venue"
	"github.com/sreeram023/event-approval-backend/routes"
	"github.com/sreeram023/event-approval-backend/utils"
)

// @title Event Approval Backend API
// @version 1.0
// @description Multi-stage approval workflow for institutional event-permission requests.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()
	db := database.Connect(cfg)

	if err := utils.InitRedis(cfg); err != nil {
		log.Printf("⚠️ Redis init failed, id counters fall back to table counts: %v", err)
	}

	utils.InitializeKafka(cfg)
	defer utils.CloseKafka()
	defer utils.CloseRedis()

	log.Println("🔄 Running database migrations...")
	if err := db.AutoMigrate(
		&auth.User{},
		&auditlog.AuditLog{},
		&request.Request{},
		&venue.Venue{},
		&calendar.Event{},
		&notification.NotificationLog{},
	); err != nil {
		log.Fatalf("❌ DB AutoMigrate failed: %v", err)
	}
	log.Println("✅ Database migrations completed")

	authRepo := auth.NewRepository(db)
	auth.SeedInstitutionAccounts(authRepo)
	venue.SeedVenues(venue.NewRepository(db))

	consumerCtx, stopConsumer := context.WithCancel(context.Background())
	defer stopConsumer()
	go notification.StartKafkaConsumer(consumerCtx, cfg, notification.NewRepository(db))

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	routes.Setup(r, cfg)

	log.Printf("🚀 Server listening on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Server failed: %v", err)
	}
}
