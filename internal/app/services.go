package app

import (
	"gorm.io/gorm"

	"github.com/christyekim/recommendations/internal/logger"
	"github.com/christyekim/recommendations/internal/services"
)

type Services struct {
	Recommendation services.RecommendationService
}

func wireServices(db *gorm.DB, log *logger.Logger, reposet Repos) Services {
	log.Info("Wiring services...")
	return Services{
		Recommendation: services.NewRecommendationService(db, log, reposet.Recommendation),
	}
}
