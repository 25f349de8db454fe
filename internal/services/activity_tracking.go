package services

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/studygroup-backend/internal/data/repos"
	types "github.com/yungbote/studygroup-backend/internal/domain"
	"github.com/yungbote/studygroup-backend/internal/observability"
	apperr "github.com/yungbote/studygroup-backend/internal/pkg/errors"
	"github.com/yungbote/studygroup-backend/internal/pkg/logger"
	"github.com/yungbote/studygroup-backend/internal/pkg/pointers"
)

const (
	DefaultRecommendationListLimit = 5
	trendDays                      = 7
)

type LogActivityInput struct {
	ActivityType    string
	ActivityID      *uuid.UUID
	SubtopicID      *uuid.UUID
	DurationSeconds *int
	CompletionRate  *float64
	Score           *float64
	Metadata        map[string]interface{}
}

// PreferenceInput is a partial update; nil or blank fields keep their stored value.
type PreferenceInput struct {
	PreferredTopics *[]string
	PreferredTime   *string
	LearningStyle   *string
	DifficultyLevel *string
}

type TrendPoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type ActivityStats struct {
	ActivityCounts        []repos.ActivityTypeCount `json:"activity_counts"`
	TotalTimeSpentSeconds int64                     `json:"total_time_spent_seconds"`
	AvgCompletionRate     float64                   `json:"avg_completion_rate"`
	ActivityTrend         []TrendPoint              `json:"activity_trend"`
}

type ActivityTrackingService interface {
	LogActivity(ctx context.Context, userID uuid.UUID, in LogActivityInput) (*types.ActivityLog, error)
	UpdatePreferences(ctx context.Context, userID uuid.UUID, in PreferenceInput) (*types.UserPreference, error)
	GetRecommendations(ctx context.Context, userID uuid.UUID) ([]*types.MLRecommendation, error)
	GetActivityStats(ctx context.Context, userID uuid.UUID) (*ActivityStats, error)
}

type activityTrackingService struct {
	log        *logger.Logger
	userRepo   repos.UserRepo
	catalog    repos.CatalogRepo
	logRepo    repos.ActivityLogRepo
	prefRepo   repos.UserPreferenceRepo
	recRepo    repos.MLRecommendationRepo
	recService RecommendationService
	metrics    *observability.Metrics
	listLimit  int
	now        func() time.Time
}

func NewActivityTrackingService(
	log *logger.Logger,
	userRepo repos.UserRepo,
	catalog repos.CatalogRepo,
	logRepo repos.ActivityLogRepo,
	prefRepo repos.UserPreferenceRepo,
	recRepo repos.MLRecommendationRepo,
	recService RecommendationService,
	metrics *observability.Metrics,
	listLimit int,
) ActivityTrackingService {
	if listLimit <= 0 {
		listLimit = DefaultRecommendationListLimit
	}
	return &activityTrackingService{
		log:        log.With("service", "ActivityTrackingService"),
		userRepo:   userRepo,
		catalog:    catalog,
		logRepo:    logRepo,
		prefRepo:   prefRepo,
		recRepo:    recRepo,
		recService: recService,
		metrics:    metrics,
		listLimit:  listLimit,
		now:        time.Now,
	}
}

func (s *activityTrackingService) LogActivity(ctx context.Context, userID uuid.UUID, in LogActivityInput) (*types.ActivityLog, error) {
	activityType := strings.TrimSpace(in.ActivityType)
	if activityType == "" {
		return nil, apperr.Validation("activity_type", "is required")
	}
	if in.DurationSeconds != nil && *in.DurationSeconds < 0 {
		return nil, apperr.Validation("duration", "must not be negative")
	}
	if in.CompletionRate != nil && (math.IsNaN(*in.CompletionRate) || *in.CompletionRate < 0 || *in.CompletionRate > 100) {
		return nil, apperr.Validation("completion_rate", "must be between 0 and 100")
	}
	if in.Score != nil && (math.IsNaN(*in.Score) || math.IsInf(*in.Score, 0)) {
		return nil, apperr.Validation("score", "must be a number")
	}
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.requireCatalogRefs(ctx, in.ActivityID, in.SubtopicID); err != nil {
		return nil, err
	}

	start := s.now().UTC()
	entry := &types.ActivityLog{
		UserID:          userID,
		ActivityType:    activityType,
		ActivityID:      in.ActivityID,
		SubtopicID:      in.SubtopicID,
		DurationSeconds: in.DurationSeconds,
		CompletionRate:  in.CompletionRate,
		Score:           in.Score,
		StartTime:       start,
		Metadata:        datatypes.JSONMap(in.Metadata),
	}
	if entry.Metadata == nil {
		entry.Metadata = datatypes.JSONMap{}
	}
	if in.DurationSeconds != nil {
		end := start.Add(time.Duration(*in.DurationSeconds) * time.Second)
		entry.EndTime = &end
	}
	if _, err := s.logRepo.Create(ctx, nil, []*types.ActivityLog{entry}); err != nil {
		return nil, apperr.Store("insert activity log", err)
	}
	s.metrics.IncActivityLogged(activityType)

	// The entry is committed; a failed regeneration leaves the old set in place.
	if _, err := s.recService.Generate(ctx, userID, TriggerActivityLogged); err != nil {
		s.log.Warn("regeneration after activity log failed", "user_id", userID, "log_id", entry.ID, "error", err)
	}
	return entry, nil
}

func (s *activityTrackingService) UpdatePreferences(ctx context.Context, userID uuid.UUID, in PreferenceInput) (*types.UserPreference, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	patch := repos.PreferencePatch{
		PreferredTime:   nonBlank(in.PreferredTime),
		LearningStyle:   nonBlank(in.LearningStyle),
		DifficultyLevel: nonBlank(in.DifficultyLevel),
	}
	if in.PreferredTopics != nil {
		topics := make([]string, 0, len(*in.PreferredTopics))
		for _, t := range *in.PreferredTopics {
			if t = strings.TrimSpace(t); t != "" {
				topics = append(topics, t)
			}
		}
		patch.PreferredTopics = &topics
	}

	pref, err := s.prefRepo.Upsert(ctx, nil, userID, patch)
	if err != nil {
		return nil, apperr.Store("upsert preferences", err)
	}
	if _, err := s.recService.Generate(ctx, userID, TriggerPreferencesUpdated); err != nil {
		s.log.Warn("regeneration after preference update failed", "user_id", userID, "error", err)
	}
	return pref, nil
}

func (s *activityTrackingService) GetRecommendations(ctx context.Context, userID uuid.UUID) ([]*types.MLRecommendation, error) {
	if userID == uuid.Nil {
		return nil, apperr.Validation("user_id", "is required")
	}
	rows, err := s.recRepo.ListByUser(ctx, nil, userID, s.listLimit)
	if err != nil {
		return nil, apperr.Store("list recommendations", err)
	}
	if len(rows) > 0 {
		return rows, nil
	}
	if _, err := s.recService.Generate(ctx, userID, TriggerEmptyList); err != nil {
		return nil, err
	}
	rows, err = s.recRepo.ListByUser(ctx, nil, userID, s.listLimit)
	if err != nil {
		return nil, apperr.Store("list recommendations", err)
	}
	return rows, nil
}

func (s *activityTrackingService) GetActivityStats(ctx context.Context, userID uuid.UUID) (*ActivityStats, error) {
	if userID == uuid.Nil {
		return nil, apperr.Validation("user_id", "is required")
	}
	counts, err := s.logRepo.CountByType(ctx, nil, userID)
	if err != nil {
		return nil, apperr.Store("count activity by type", err)
	}
	total, err := s.logRepo.SumDuration(ctx, nil, userID)
	if err != nil {
		return nil, apperr.Store("sum activity duration", err)
	}
	avg, err := s.logRepo.AvgCompletionRate(ctx, nil, userID)
	if err != nil {
		return nil, apperr.Store("average completion rate", err)
	}

	today := s.now().UTC().Truncate(24 * time.Hour)
	since := today.AddDate(0, 0, -(trendDays - 1))
	starts, err := s.logRepo.ListStartTimesSince(ctx, nil, userID, since)
	if err != nil {
		return nil, apperr.Store("activity trend", err)
	}

	return &ActivityStats{
		ActivityCounts:        counts,
		TotalTimeSpentSeconds: total,
		AvgCompletionRate:     avg,
		ActivityTrend:         dailyTrend(since, trendDays, starts),
	}, nil
}

// dailyTrend buckets start times into consecutive UTC days beginning at since.
func dailyTrend(since time.Time, days int, starts []time.Time) []TrendPoint {
	out := make([]TrendPoint, days)
	for i := range out {
		out[i].Date = since.AddDate(0, 0, i).Format("2006-01-02")
	}
	for _, ts := range starts {
		idx := int(ts.UTC().Sub(since) / (24 * time.Hour))
		if idx >= 0 && idx < days {
			out[idx].Count++
		}
	}
	return out
}

func (s *activityTrackingService) requireUser(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return apperr.Validation("user_id", "is required")
	}
	ok, err := s.userRepo.Exists(ctx, nil, userID)
	if err != nil {
		return apperr.Store("lookup user", err)
	}
	if !ok {
		return apperr.NotFound("user")
	}
	return nil
}

func (s *activityTrackingService) requireCatalogRefs(ctx context.Context, activityID, subtopicID *uuid.UUID) error {
	if activityID != nil {
		a, err := s.catalog.GetActivity(ctx, nil, *activityID)
		if err != nil {
			return apperr.Store("lookup activity", err)
		}
		if a == nil {
			return apperr.NotFound("activity")
		}
	}
	if subtopicID != nil {
		st, err := s.catalog.GetSubtopic(ctx, nil, *subtopicID)
		if err != nil {
			return apperr.Store("lookup subtopic", err)
		}
		if st == nil {
			return apperr.NotFound("subtopic")
		}
		if activityID != nil && st.ActivityID != *activityID {
			return apperr.Validation("subtopic_id", "does not belong to activity")
		}
	}
	return nil
}

func nonBlank(v *string) *string {
	trimmed := strings.TrimSpace(pointers.Deref(v))
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
