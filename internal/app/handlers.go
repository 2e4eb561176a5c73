package app

import (
	"github.com/christyekim/recommendations/internal/handlers"
	"github.com/christyekim/recommendations/internal/logger"
)

type Handlers struct {
	Recommendation *handlers.RecommendationHandler
}

func wireHandlers(log *logger.Logger, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Recommendation: handlers.NewRecommendationHandler(log, serviceset.Recommendation),
	}
}
