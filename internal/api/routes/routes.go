package routes

import (
	"fmt"

	"dci-control-server/internal/api/handlers"
	"dci-control-server/internal/api/middleware"
	"dci-control-server/internal/auth"
	"dci-control-server/internal/config"
	"dci-control-server/internal/database/models"
	"dci-control-server/internal/metrics"
	"dci-control-server/internal/repository"
	"dci-control-server/internal/service"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRoutes configures all the routes for the application. m may be nil,
// in which case no metrics are collected or exposed.
func SetupRoutes(db *gorm.DB, cfg *config.Config, m *metrics.Metrics) (*gin.Engine, error) {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(cfg))
	if m != nil {
		router.Use(middleware.Metrics(m))
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, m)

	authService, err := auth.NewAuthService(auth.NewAuthConfig(cfg), repos.Users)
	if err != nil {
		return nil, fmt.Errorf("initialize auth: %w", err)
	}
	authHandler := auth.NewAuthHandler(authService)
	authMiddleware := auth.NewAuthMiddleware(authService)
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	healthHandler := handlers.NewHealthHandler(repos)
	identityHandler := handlers.NewIdentityHandler(services.Users)
	productTeamHandler := handlers.NewProductTeamHandler(services.Products)

	// Health check routes
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/health/live", healthHandler.Live)

	if m != nil {
		router.GET("/metrics", gin.WrapH(m.Handler()))
	}

	// Swagger documentation route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authGroup := router.Group("/api/auth")
	{
		authGroup.POST("/token", authHandler.Token)
		authGroup.GET("/validate", authMiddleware.RequireAuth(), authHandler.ValidateToken)
	}

	// API v1 routes - All endpoints require authentication
	v1 := router.Group("/api/v1")
	v1.Use(authMiddleware.RequireAuth(), rateLimiter.Handler())
	{
		v1.GET("/identity", identityHandler.Identity)

		mount(v1, handlers.NewResourceHandler[models.Team](services.Teams))
		mount(v1, handlers.NewResourceHandler[models.User](services.Users))
		mount(v1, handlers.NewResourceHandler[models.Topic](services.Topics))
		mount(v1, handlers.NewResourceHandler[models.ComponentType](services.ComponentTypes))
		mount(v1, handlers.NewResourceHandler[models.Component](services.Components))
		mount(v1, handlers.NewResourceHandler[models.Test](services.Tests))
		mount(v1, handlers.NewResourceHandler[models.JobDefinition](services.JobDefinitions))
		mount(v1, handlers.NewResourceHandler[models.RemoteCI](services.RemoteCIs))
		mount(v1, handlers.NewResourceHandler[models.Job](services.Jobs))
		mount(v1, handlers.NewResourceHandler[models.JobState](services.JobStates).AppendOnly())

		products := v1.Group("/" + models.KindProduct.Plural())
		handlers.NewResourceHandler[models.Product](services.Products).Register(products)
		productTeamHandler.Register(products)
	}

	return router, nil
}

func mount[T any](v1 *gin.RouterGroup, h *handlers.ResourceHandler[T]) {
	h.Register(v1.Group("/" + h.Kind().Plural()))
}

// SetupHealthRoutes sets up only health check routes (useful for testing)
func SetupHealthRoutes(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Recovery())

	healthHandler := handlers.NewHealthHandler(repository.NewRepositories(db))
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/health/live", healthHandler.Live)

	return router
}
