package app

import (
	"gorm.io/gorm"

	"github.com/christyekim/recommendations/internal/logger"
	"github.com/christyekim/recommendations/internal/repos"
)

type Repos struct {
	Recommendation repos.RecommendationRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Recommendation: repos.NewRecommendationRepo(db, log),
	}
}
