package catalog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Activity is a learning activity made of ordered subtopics.
type Activity struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string     `gorm:"column:title;not null" json:"title"`
	Description string     `gorm:"column:description;type:text;not null;default:''" json:"description"`
	CreatedByID *uuid.UUID `gorm:"type:uuid;column:created_by_id;index" json:"created_by_id,omitempty"`

	Subtopics []Subtopic `gorm:"foreignKey:ActivityID;constraint:OnDelete:CASCADE" json:"subtopics"`

	CreatedAt time.Time      `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;index" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Activity) TableName() string { return "activity" }

func (a *Activity) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

type Subtopic struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ActivityID uuid.UUID `gorm:"type:uuid;column:activity_id;not null;index" json:"activity_id"`
	Title      string    `gorm:"column:title;not null" json:"title"`
	Content    string    `gorm:"column:content;type:text" json:"content,omitempty"`
	// 1-based position within the parent activity.
	Order int `gorm:"column:sort_order;not null;default:0;index" json:"order"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;index" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Subtopic) TableName() string { return "subtopic" }

func (s *Subtopic) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
