package personalization

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RecommendationNextTopic       = "next_topic"
	RecommendationSimilarContent  = "similar_content"
	RecommendationGroupSuggestion = "group_suggestion"
)

// MLRecommendation rows for a user are replaced as a whole on every generation run.
type MLRecommendation struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID             uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	ActivityID         uuid.UUID  `gorm:"type:uuid;column:activity_id;not null" json:"activity_id"`
	SubtopicID         *uuid.UUID `gorm:"type:uuid;column:subtopic_id" json:"subtopic_id,omitempty"`
	RecommendationType string     `gorm:"column:recommendation_type;not null;index" json:"recommendation_type"`
	Score              float64    `gorm:"column:score;not null" json:"score"`
	Reason             string     `gorm:"column:reason;not null;default:''" json:"reason"`
	// Position within the generating run, used to keep ties in generation order.
	Ordinal   int       `gorm:"column:ordinal;not null;default:0" json:"-"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (MLRecommendation) TableName() string { return "ml_recommendation" }

func (r *MLRecommendation) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
