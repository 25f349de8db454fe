package learning

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/studygroup-backend/internal/domain"
	"github.com/yungbote/studygroup-backend/internal/pkg/logger"
)

// PreferencePatch carries a partial preference update. Nil fields are left unchanged.
type PreferencePatch struct {
	PreferredTopics *[]string
	PreferredTime   *string
	LearningStyle   *string
	DifficultyLevel *string
}

type UserPreferenceRepo interface {
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.UserPreference, error)
	Upsert(ctx context.Context, tx *gorm.DB, userID uuid.UUID, patch PreferencePatch) (*types.UserPreference, error)
}

type userPreferenceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserPreferenceRepo(db *gorm.DB, baseLog *logger.Logger) UserPreferenceRepo {
	return &userPreferenceRepo{db: db, log: baseLog.With("repo", "UserPreferenceRepo")}
}

// GetByUserID returns (nil, nil) when the user has no preference row yet.
func (r *userPreferenceRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.UserPreference, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if userID == uuid.Nil {
		return nil, nil
	}
	var row types.UserPreference
	err := t.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Upsert creates the row on first use and otherwise applies only the fields set in patch.
func (r *userPreferenceRepo) Upsert(ctx context.Context, tx *gorm.DB, userID uuid.UUID, patch PreferencePatch) (*types.UserPreference, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if userID == uuid.Nil {
		return nil, errors.New("user id required")
	}

	var out *types.UserPreference
	err := t.WithContext(ctx).Transaction(func(txx *gorm.DB) error {
		seed := &types.UserPreference{
			UserID:          userID,
			PreferredTopics: datatypes.JSONSlice[string]{},
		}
		if err := txx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).Create(seed).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{}
		if patch.PreferredTopics != nil {
			topics := *patch.PreferredTopics
			if topics == nil {
				topics = []string{}
			}
			updates["preferred_topics"] = datatypes.NewJSONSlice(topics)
		}
		if patch.PreferredTime != nil {
			updates["preferred_time"] = *patch.PreferredTime
		}
		if patch.LearningStyle != nil {
			updates["learning_style"] = *patch.LearningStyle
		}
		if patch.DifficultyLevel != nil {
			updates["difficulty_level"] = *patch.DifficultyLevel
		}
		if len(updates) > 0 {
			if err := txx.Model(&types.UserPreference{}).
				Where("user_id = ?", userID).
				Updates(updates).Error; err != nil {
				return err
			}
		}

		var row types.UserPreference
		if err := txx.Where("user_id = ?", userID).First(&row).Error; err != nil {
			return err
		}
		out = &row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
