package learning

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/studygroup-backend/internal/domain"
	"github.com/yungbote/studygroup-backend/internal/pkg/logger"
)

// CatalogVersion changes whenever an activity or subtopic is added, removed or updated.
type CatalogVersion struct {
	Activities    int64
	Subtopics     int64
	LatestUpdates time.Time
}

func (v CatalogVersion) Key() string {
	return fmt.Sprintf("%d.%d.%d", v.Activities, v.Subtopics, v.LatestUpdates.UTC().UnixNano())
}

type CatalogRepo interface {
	// ListWithSubtopics returns every activity oldest first, subtopics ordered by position.
	ListWithSubtopics(ctx context.Context, tx *gorm.DB) ([]*types.Activity, error)
	GetActivity(ctx context.Context, tx *gorm.DB, activityID uuid.UUID) (*types.Activity, error)
	GetSubtopic(ctx context.Context, tx *gorm.DB, subtopicID uuid.UUID) (*types.Subtopic, error)
	CountSubtopics(ctx context.Context, tx *gorm.DB, activityID uuid.UUID) (int64, error)
	CreateActivities(ctx context.Context, tx *gorm.DB, activities []*types.Activity) ([]*types.Activity, error)
	Version(ctx context.Context, tx *gorm.DB) (CatalogVersion, error)
}

type catalogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCatalogRepo(db *gorm.DB, baseLog *logger.Logger) CatalogRepo {
	return &catalogRepo{db: db, log: baseLog.With("repo", "CatalogRepo")}
}

func orderedSubtopics(db *gorm.DB) *gorm.DB {
	return db.Order("sort_order ASC, created_at ASC")
}

func (r *catalogRepo) ListWithSubtopics(ctx context.Context, tx *gorm.DB) ([]*types.Activity, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	out := []*types.Activity{}
	if err := t.WithContext(ctx).
		Preload("Subtopics", orderedSubtopics).
		Order("created_at ASC, id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// GetActivity returns (nil, nil) when absent.
func (r *catalogRepo) GetActivity(ctx context.Context, tx *gorm.DB, activityID uuid.UUID) (*types.Activity, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if activityID == uuid.Nil {
		return nil, nil
	}
	var a types.Activity
	err := t.WithContext(ctx).
		Preload("Subtopics", orderedSubtopics).
		Where("id = ?", activityID).
		First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// GetSubtopic returns (nil, nil) when absent.
func (r *catalogRepo) GetSubtopic(ctx context.Context, tx *gorm.DB, subtopicID uuid.UUID) (*types.Subtopic, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if subtopicID == uuid.Nil {
		return nil, nil
	}
	var s types.Subtopic
	err := t.WithContext(ctx).Where("id = ?", subtopicID).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *catalogRepo) CountSubtopics(ctx context.Context, tx *gorm.DB, activityID uuid.UUID) (int64, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var n int64
	if err := t.WithContext(ctx).Model(&types.Subtopic{}).Where("activity_id = ?", activityID).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// CreateActivities inserts activities together with their subtopics.
func (r *catalogRepo) CreateActivities(ctx context.Context, tx *gorm.DB, activities []*types.Activity) ([]*types.Activity, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(activities) == 0 {
		return []*types.Activity{}, nil
	}
	if err := t.WithContext(ctx).Create(&activities).Error; err != nil {
		return nil, err
	}
	return activities, nil
}

func (r *catalogRepo) Version(ctx context.Context, tx *gorm.DB) (CatalogVersion, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var v CatalogVersion
	if err := t.WithContext(ctx).Model(&types.Activity{}).Count(&v.Activities).Error; err != nil {
		return v, err
	}
	if err := t.WithContext(ctx).Model(&types.Subtopic{}).Count(&v.Subtopics).Error; err != nil {
		return v, err
	}

	var latestActivity []*types.Activity
	if err := t.WithContext(ctx).Select("updated_at").Order("updated_at DESC").Limit(1).Find(&latestActivity).Error; err != nil {
		return v, err
	}
	var latestSubtopic []*types.Subtopic
	if err := t.WithContext(ctx).Select("updated_at").Order("updated_at DESC").Limit(1).Find(&latestSubtopic).Error; err != nil {
		return v, err
	}
	if len(latestActivity) > 0 {
		v.LatestUpdates = latestActivity[0].UpdatedAt
	}
	if len(latestSubtopic) > 0 && latestSubtopic[0].UpdatedAt.After(v.LatestUpdates) {
		v.LatestUpdates = latestSubtopic[0].UpdatedAt
	}
	return v, nil
}
