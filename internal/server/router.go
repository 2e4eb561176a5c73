package server

import (
	"github.com/gin-gonic/gin"

	"github.com/christyekim/recommendations/internal/handlers"
	"github.com/christyekim/recommendations/internal/logger"
	"github.com/christyekim/recommendations/internal/middleware"
)

type RouterConfig struct {
	Log                   *logger.Logger
	RecommendationHandler *handlers.RecommendationHandler
	CORSOrigins           []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.AttachRequestID())
	router.Use(middleware.RequestLogger(cfg.Log))
	router.Use(middleware.CORS(cfg.CORSOrigins))

	router.GET("/healthcheck", handlers.HealthCheck)
	router.GET("/", handlers.Index)

	recommendations := router.Group("/recommendations")
	{
		recommendations.GET("", cfg.RecommendationHandler.List)
		recommendations.POST("", cfg.RecommendationHandler.Create)
		recommendations.GET("/:id", cfg.RecommendationHandler.Get)
		recommendations.PUT("/:id", cfg.RecommendationHandler.Update)
		recommendations.DELETE("/:id", cfg.RecommendationHandler.Delete)
	}

	return router
}
