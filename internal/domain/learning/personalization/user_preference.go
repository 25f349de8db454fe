package personalization

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UserPreference holds the declared learning preferences of one user.
type UserPreference struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`

	PreferredTopics datatypes.JSONSlice[string] `gorm:"column:preferred_topics" json:"preferred_topics"`
	PreferredTime   string                      `gorm:"column:preferred_time" json:"preferred_time,omitempty"`
	LearningStyle   string                      `gorm:"column:learning_style" json:"learning_style,omitempty"`
	DifficultyLevel string                      `gorm:"column:difficulty_level" json:"difficulty_level,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;index" json:"updated_at"`
}

func (UserPreference) TableName() string { return "user_preference" }

func (p *UserPreference) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Topics returns the preferred topics as a plain slice.
func (p *UserPreference) Topics() []string {
	if p == nil {
		return nil
	}
	return []string(p.PreferredTopics)
}
