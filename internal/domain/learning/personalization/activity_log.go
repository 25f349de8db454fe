package personalization

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	ActivityTypeStudySession      = "study_session"
	ActivityTypeQuiz              = "quiz"
	ActivityTypeSubtopicCompleted = "subtopic_completed"
)

// ActivityLog is one logged learning interaction. Rows are immutable once written.
type ActivityLog struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID  `gorm:"type:uuid;not null;index:idx_activity_log_user_start,priority:1" json:"user_id"`
	ActivityType string     `gorm:"column:activity_type;not null;index" json:"activity_type"`
	ActivityID   *uuid.UUID `gorm:"type:uuid;column:activity_id;index" json:"activity_id,omitempty"`
	SubtopicID   *uuid.UUID `gorm:"type:uuid;column:subtopic_id;index" json:"subtopic_id,omitempty"`

	DurationSeconds *int `gorm:"column:duration_seconds" json:"duration_seconds,omitempty"`
	// 0..100
	CompletionRate *float64 `gorm:"column:completion_rate" json:"completion_rate,omitempty"`
	Score          *float64 `gorm:"column:score" json:"score,omitempty"`

	StartTime time.Time  `gorm:"column:start_time;not null;index:idx_activity_log_user_start,priority:2" json:"start_time"`
	EndTime   *time.Time `gorm:"column:end_time" json:"end_time,omitempty"`

	Metadata datatypes.JSONMap `gorm:"column:metadata" json:"metadata"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (ActivityLog) TableName() string { return "user_activity_log" }

func (l *ActivityLog) BeforeCreate(*gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
