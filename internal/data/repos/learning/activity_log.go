package learning

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/studygroup-backend/internal/domain"
	"github.com/yungbote/studygroup-backend/internal/pkg/logger"
)

type ActivityTypeCount struct {
	ActivityType string `json:"activity_type"`
	Count        int64  `json:"count"`
}

type ActivityLogRepo interface {
	Create(ctx context.Context, tx *gorm.DB, logs []*types.ActivityLog) ([]*types.ActivityLog, error)
	ListRecentByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.ActivityLog, error)
	ListStartTimesSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since time.Time) ([]time.Time, error)

	CountByType(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]ActivityTypeCount, error)
	SumDuration(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
	AvgCompletionRate(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (float64, error)
}

type activityLogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewActivityLogRepo(db *gorm.DB, baseLog *logger.Logger) ActivityLogRepo {
	return &activityLogRepo{db: db, log: baseLog.With("repo", "ActivityLogRepo")}
}

func (r *activityLogRepo) Create(ctx context.Context, tx *gorm.DB, logs []*types.ActivityLog) ([]*types.ActivityLog, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(logs) == 0 {
		return []*types.ActivityLog{}, nil
	}
	if err := t.WithContext(ctx).Create(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// ListRecentByUser returns at most limit rows, newest start_time first.
func (r *activityLogRepo) ListRecentByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.ActivityLog, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	out := []*types.ActivityLog{}
	if userID == uuid.Nil {
		return out, nil
	}
	if limit <= 0 {
		limit = 50
	}
	if limit > 1000 {
		limit = 1000
	}
	if err := t.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("start_time DESC, created_at DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *activityLogRepo) ListStartTimesSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since time.Time) ([]time.Time, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var rows []*types.ActivityLog
	if userID == uuid.Nil {
		return []time.Time{}, nil
	}
	if err := t.WithContext(ctx).
		Select("start_time").
		Where("user_id = ? AND start_time >= ?", userID, since.UTC()).
		Order("start_time ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]time.Time, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.StartTime)
	}
	return out, nil
}

func (r *activityLogRepo) CountByType(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]ActivityTypeCount, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	out := []ActivityTypeCount{}
	if userID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Model(&types.ActivityLog{}).
		Select("activity_type, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Group("activity_type").
		Order("count DESC, activity_type ASC").
		Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *activityLogRepo) SumDuration(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if userID == uuid.Nil {
		return 0, nil
	}
	var total int64
	if err := t.WithContext(ctx).
		Model(&types.ActivityLog{}).
		Select("COALESCE(SUM(duration_seconds), 0)").
		Where("user_id = ? AND duration_seconds IS NOT NULL", userID).
		Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// AvgCompletionRate averages the present completion rates; 0 when none are present.
func (r *activityLogRepo) AvgCompletionRate(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (float64, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if userID == uuid.Nil {
		return 0, nil
	}
	var avg float64
	if err := t.WithContext(ctx).
		Model(&types.ActivityLog{}).
		Select("COALESCE(AVG(completion_rate), 0)").
		Where("user_id = ? AND completion_rate IS NOT NULL", userID).
		Scan(&avg).Error; err != nil {
		return 0, err
	}
	return avg, nil
}
