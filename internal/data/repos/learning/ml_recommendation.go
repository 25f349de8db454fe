package learning

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/studygroup-backend/internal/domain"
	"github.com/yungbote/studygroup-backend/internal/pkg/logger"
)

type MLRecommendationRepo interface {
	DeleteByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
	CreateBatch(ctx context.Context, tx *gorm.DB, rows []*types.MLRecommendation) error
	// ReplaceForUser deletes the user's set and inserts rows in a single transaction.
	ReplaceForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, rows []*types.MLRecommendation) error
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.MLRecommendation, error)
	CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
}

type mlRecommendationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMLRecommendationRepo(db *gorm.DB, baseLog *logger.Logger) MLRecommendationRepo {
	return &mlRecommendationRepo{db: db, log: baseLog.With("repo", "MLRecommendationRepo")}
}

func (r *mlRecommendationRepo) DeleteByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if userID == uuid.Nil {
		return nil
	}
	return t.WithContext(ctx).Where("user_id = ?", userID).Delete(&types.MLRecommendation{}).Error
}

func (r *mlRecommendationRepo) CreateBatch(ctx context.Context, tx *gorm.DB, rows []*types.MLRecommendation) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return nil
	}
	return t.WithContext(ctx).CreateInBatches(rows, 100).Error
}

func (r *mlRecommendationRepo) ReplaceForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, rows []*types.MLRecommendation) error {
	t := tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(ctx).Transaction(func(txx *gorm.DB) error {
		if err := r.DeleteByUser(ctx, txx, userID); err != nil {
			return err
		}
		return r.CreateBatch(ctx, txx, rows)
	})
}

func (r *mlRecommendationRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.MLRecommendation, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	out := []*types.MLRecommendation{}
	if userID == uuid.Nil {
		return out, nil
	}
	q := t.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("score DESC, ordinal ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *mlRecommendationRepo) CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var n int64
	if err := t.WithContext(ctx).Model(&types.MLRecommendation{}).Where("user_id = ?", userID).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
