package domain

import (
	"github.com/yungbote/studygroup-backend/internal/domain/learning/catalog"
	"github.com/yungbote/studygroup-backend/internal/domain/learning/personalization"
	"github.com/yungbote/studygroup-backend/internal/domain/user"
)

const (
	ActivityTypeStudySession      = personalization.ActivityTypeStudySession
	ActivityTypeQuiz              = personalization.ActivityTypeQuiz
	ActivityTypeSubtopicCompleted = personalization.ActivityTypeSubtopicCompleted

	RecommendationNextTopic       = personalization.RecommendationNextTopic
	RecommendationSimilarContent  = personalization.RecommendationSimilarContent
	RecommendationGroupSuggestion = personalization.RecommendationGroupSuggestion
)

type User = user.User

type Activity = catalog.Activity
type Subtopic = catalog.Subtopic

type ActivityLog = personalization.ActivityLog
type UserPreference = personalization.UserPreference
type SubtopicCompletion = personalization.SubtopicCompletion
type CompletedSubtopic = personalization.CompletedSubtopic
type MLRecommendation = personalization.MLRecommendation

// Models lists every table owned by this service, in migration order.
func Models() []any {
	return []any{
		&User{},
		&Activity{},
		&Subtopic{},
		&ActivityLog{},
		&UserPreference{},
		&SubtopicCompletion{},
		&MLRecommendation{},
	}
}
