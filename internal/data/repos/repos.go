package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/studygroup-backend/internal/data/repos/learning"
	"github.com/yungbote/studygroup-backend/internal/data/repos/user"
	"github.com/yungbote/studygroup-backend/internal/pkg/logger"
)

type UserRepo = user.UserRepo

type CatalogRepo = learning.CatalogRepo
type CatalogVersion = learning.CatalogVersion

type ActivityLogRepo = learning.ActivityLogRepo
type ActivityTypeCount = learning.ActivityTypeCount
type UserPreferenceRepo = learning.UserPreferenceRepo
type PreferencePatch = learning.PreferencePatch
type SubtopicCompletionRepo = learning.SubtopicCompletionRepo
type MLRecommendationRepo = learning.MLRecommendationRepo

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo { return user.NewUserRepo(db, baseLog) }

func NewCatalogRepo(db *gorm.DB, baseLog *logger.Logger) CatalogRepo {
	return learning.NewCatalogRepo(db, baseLog)
}

func NewActivityLogRepo(db *gorm.DB, baseLog *logger.Logger) ActivityLogRepo {
	return learning.NewActivityLogRepo(db, baseLog)
}
func NewUserPreferenceRepo(db *gorm.DB, baseLog *logger.Logger) UserPreferenceRepo {
	return learning.NewUserPreferenceRepo(db, baseLog)
}
func NewSubtopicCompletionRepo(db *gorm.DB, baseLog *logger.Logger) SubtopicCompletionRepo {
	return learning.NewSubtopicCompletionRepo(db, baseLog)
}
func NewMLRecommendationRepo(db *gorm.DB, baseLog *logger.Logger) MLRecommendationRepo {
	return learning.NewMLRecommendationRepo(db, baseLog)
}
