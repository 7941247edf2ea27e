// Package main is the entry point for the back-office API.
package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	_ "github.com/webteam-oss/backoffice-api/docs"
	"github.com/webteam-oss/backoffice-api/internal/config"
	"github.com/webteam-oss/backoffice-api/internal/database"
	"github.com/webteam-oss/backoffice-api/internal/handlers"
	"github.com/webteam-oss/backoffice-api/internal/mailer"
	"github.com/webteam-oss/backoffice-api/internal/metrics"
	"github.com/webteam-oss/backoffice-api/internal/rbac"
	"github.com/webteam-oss/backoffice-api/internal/repository"
	"github.com/webteam-oss/backoffice-api/internal/routes"
	"github.com/webteam-oss/backoffice-api/internal/service"
)

// @title Back-Office API
// @version 1.0
// @description Authentication, RBAC and account administration for the back-office system
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.
func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to apply migrations:", err)
	}

	// Role-to-permission table, immutable after this point
	permTable := rbac.Default()
	if cfg.PermissionsFile != "" {
		permTable, err = rbac.Load(cfg.PermissionsFile)
		if err != nil {
			log.Fatal("Failed to load permissions file:", err)
		}
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	actionLogRepo := repository.NewActionLogRepository(db)

	// Initialize services
	tokenService, err := service.NewTokenService(cfg.JWTSecret, cfg.JWTExpiry)
	if err != nil {
		log.Fatal("Failed to create token service:", err)
	}
	smtpMailer, err := mailer.NewSMTPMailer(cfg)
	if err != nil {
		log.Fatal("Failed to create mailer:", err)
	}
	authService := service.NewAuthService(userRepo, tokenService, permTable, smtpMailer)

	// Metrics
	m := metrics.New(prometheus.DefaultRegisterer)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, actionLogRepo, m)
	userHandler := handlers.NewUserHandler(authService, userRepo, actionLogRepo, m)
	adminHandler := handlers.NewAdminHandler(actionLogRepo)
	healthHandler := handlers.NewHealthHandler(db)

	// Setup router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	// Setup routes
	routes.Setup(router, routes.Dependencies{
		Config:      cfg,
		AuthService: authService,
		Permissions: permTable,
		Metrics:     m,
		Auth:        authHandler,
		Users:       userHandler,
		Admin:       adminHandler,
		Health:      healthHandler,
	})

	// Start server
	log.Printf("Starting back-office API on port %s", cfg.Port)
	if err := router.Run(fmt.Sprintf(":%s", cfg.Port)); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
