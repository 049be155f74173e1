package http

import (
	"github.com/gin-gonic/gin"
	"github.com/mahyar-jbr/pet-ai-assistant/config"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, logger zerolog.Logger) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware(logger))
	router.Use(LoggerMiddleware(logger))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	router.GET("/health", handler.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(RateLimitMiddleware(cfg.RateLimit.PerIP, cfg.RateLimit.Burst))
	{
		pets := v1.Group("/pets")
		{
			pets.POST("", handler.CreatePet)
			pets.GET("/:id", handler.GetPet)
			pets.PUT("/:id", handler.UpdatePet)
			pets.DELETE("/:id", handler.DeletePet)
			pets.GET("/:id/recommendations", handler.PetRecommendations)
			pets.GET("/:id/favorites", handler.Favorites)
			pets.POST("/:id/favorites/:compareId", handler.ToggleFavorite)
		}

		v1.POST("/recommendations", handler.Recommend)

		products := v1.Group("/products")
		{
			products.GET("", handler.ListProducts)
			products.GET("/:compareId", handler.GetProduct)
		}

		v1.GET("/compare", handler.Compare)
		v1.POST("/catalog/refresh", handler.RefreshCatalog)
	}

	return router
}
