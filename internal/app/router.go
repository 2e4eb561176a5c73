package app

import (
	"github.com/gin-gonic/gin"

	"github.com/christyekim/recommendations/internal/logger"
	"github.com/christyekim/recommendations/internal/server"
)

func wireRouter(log *logger.Logger, handlerset Handlers, cfg Config) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		Log:                   log,
		RecommendationHandler: handlerset.Recommendation,
		CORSOrigins:           cfg.CORSOrigins,
	})
}
