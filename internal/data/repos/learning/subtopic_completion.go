package learning

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/studygroup-backend/internal/domain"
	"github.com/yungbote/studygroup-backend/internal/pkg/logger"
)

type SubtopicCompletionRepo interface {
	// MarkCompleted is idempotent; created reports whether a new row was written.
	MarkCompleted(ctx context.Context, tx *gorm.DB, userID, subtopicID uuid.UUID) (row *types.SubtopicCompletion, created bool, err error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]types.CompletedSubtopic, error)
	CountByUserAndActivity(ctx context.Context, tx *gorm.DB, userID, activityID uuid.UUID) (int64, error)
}

type subtopicCompletionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSubtopicCompletionRepo(db *gorm.DB, baseLog *logger.Logger) SubtopicCompletionRepo {
	return &subtopicCompletionRepo{db: db, log: baseLog.With("repo", "SubtopicCompletionRepo")}
}

func (r *subtopicCompletionRepo) MarkCompleted(ctx context.Context, tx *gorm.DB, userID, subtopicID uuid.UUID) (*types.SubtopicCompletion, bool, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	row := &types.SubtopicCompletion{
		UserID:      userID,
		SubtopicID:  subtopicID,
		CompletedAt: time.Now().UTC(),
	}
	res := t.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "subtopic_id"}},
			DoNothing: true,
		}).
		Create(row)
	if res.Error != nil {
		return nil, false, res.Error
	}
	created := res.RowsAffected > 0

	var existing types.SubtopicCompletion
	if err := t.WithContext(ctx).
		Where("user_id = ? AND subtopic_id = ?", userID, subtopicID).
		First(&existing).Error; err != nil {
		return nil, false, err
	}
	return &existing, created, nil
}

func (r *subtopicCompletionRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]types.CompletedSubtopic, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	out := []types.CompletedSubtopic{}
	if userID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Table("subtopic_completion AS sc").
		Select("sc.subtopic_id AS subtopic_id, s.activity_id AS activity_id, sc.completed_at AS completed_at").
		Joins("JOIN subtopic AS s ON s.id = sc.subtopic_id AND s.deleted_at IS NULL").
		Where("sc.user_id = ?", userID).
		Order("sc.completed_at ASC").
		Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *subtopicCompletionRepo) CountByUserAndActivity(ctx context.Context, tx *gorm.DB, userID, activityID uuid.UUID) (int64, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var n int64
	if err := t.WithContext(ctx).
		Table("subtopic_completion AS sc").
		Joins("JOIN subtopic AS s ON s.id = sc.subtopic_id AND s.deleted_at IS NULL").
		Where("sc.user_id = ? AND s.activity_id = ?", userID, activityID).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
