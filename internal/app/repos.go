package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/studygroup-backend/internal/data/repos"
	"github.com/yungbote/studygroup-backend/internal/pkg/logger"
)

type Repos struct {
	User               repos.UserRepo
	Catalog            repos.CatalogRepo
	ActivityLog        repos.ActivityLogRepo
	UserPreference     repos.UserPreferenceRepo
	SubtopicCompletion repos.SubtopicCompletionRepo
	MLRecommendation   repos.MLRecommendationRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:               repos.NewUserRepo(db, log),
		Catalog:            repos.NewCatalogRepo(db, log),
		ActivityLog:        repos.NewActivityLogRepo(db, log),
		UserPreference:     repos.NewUserPreferenceRepo(db, log),
		SubtopicCompletion: repos.NewSubtopicCompletionRepo(db, log),
		MLRecommendation:   repos.NewMLRecommendationRepo(db, log),
	}
}
