package personalization

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubtopicCompletion struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index:idx_subtopic_completion,unique,priority:1" json:"user_id"`
	SubtopicID  uuid.UUID `gorm:"type:uuid;not null;index:idx_subtopic_completion,unique,priority:2" json:"subtopic_id"`
	CompletedAt time.Time `gorm:"column:completed_at;not null" json:"completed_at"`
}

func (SubtopicCompletion) TableName() string { return "subtopic_completion" }

func (c *SubtopicCompletion) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.CompletedAt.IsZero() {
		c.CompletedAt = time.Now().UTC()
	}
	return nil
}

// CompletedSubtopic is a completion joined with its subtopic's parent activity.
type CompletedSubtopic struct {
	SubtopicID  uuid.UUID `json:"subtopic_id"`
	ActivityID  uuid.UUID `json:"activity_id"`
	CompletedAt time.Time `json:"completed_at"`
}
