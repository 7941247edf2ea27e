// Package routes defines HTTP routes for the back-office API.
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/webteam-oss/backoffice-api/docs"
	"github.com/webteam-oss/backoffice-api/internal/config"
	"github.com/webteam-oss/backoffice-api/internal/handlers"
	"github.com/webteam-oss/backoffice-api/internal/metrics"
	"github.com/webteam-oss/backoffice-api/internal/middleware"
	"github.com/webteam-oss/backoffice-api/internal/rbac"
	"github.com/webteam-oss/backoffice-api/internal/service"
)

// Dependencies carries everything the route table wires together.
type Dependencies struct {
	Config      *config.Config
	AuthService service.AuthService
	Permissions *rbac.Table
	Metrics     *metrics.Metrics

	Auth   *handlers.AuthHandler
	Users  *handlers.UserHandler
	Admin  *handlers.AdminHandler
	Health *handlers.HealthHandler
}

// Setup configures all HTTP routes for the application.
func Setup(router *gin.Engine, deps Dependencies) {
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins: deps.Config.AllowedOrigins,
	}))

	// Health check
	router.GET("/health", deps.Health.Check)
	// Metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	requireAuth := middleware.RequireAuth(deps.AuthService, deps.Metrics)

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/login", deps.Auth.Login)
		auth.POST("/forgot-password", deps.Auth.ForgotPassword)
		auth.POST("/reset-password", deps.Auth.ResetPassword)
		auth.POST("/register", requireAuth,
			middleware.RequireRole(deps.Metrics, rbac.RoleSuperAdmin),
			deps.Auth.Register)
		auth.GET("/me", requireAuth, deps.Auth.Me)
	}

	users := v1.Group("/users", requireAuth)
	{
		manageUsers := middleware.RequirePermission(deps.Permissions, deps.Metrics, rbac.PermManageUsers)
		users.GET("", manageUsers, deps.Users.List)
		users.POST("", manageUsers, deps.Users.Create)
		users.PUT("/:id", manageUsers, deps.Users.Update)
		users.DELETE("/:id", manageUsers, deps.Users.Delete)

		users.GET("/me", deps.Users.Me)
		users.GET("/me/theme", deps.Users.GetTheme)
		users.PUT("/me/theme", deps.Users.UpdateTheme)
	}

	admin := v1.Group("/admin", requireAuth,
		middleware.RequireRole(deps.Metrics, rbac.RoleAdmin, rbac.RoleSuperAdmin))
	{
		admin.GET("/activity", deps.Admin.Activity)
		admin.GET("/logs", deps.Admin.Logs)
	}

	// Swagger documentation (only if SWAGGER_HOST is configured)
	if deps.Config.SwaggerHost != "" {
		docs.SwaggerInfo.Host = deps.Config.SwaggerHost
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
}
