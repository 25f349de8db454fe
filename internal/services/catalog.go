package services

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/studygroup-backend/internal/data/catalogcache"
	"github.com/yungbote/studygroup-backend/internal/data/repos"
	types "github.com/yungbote/studygroup-backend/internal/domain"
	apperr "github.com/yungbote/studygroup-backend/internal/pkg/errors"
	"github.com/yungbote/studygroup-backend/internal/pkg/logger"
	"github.com/yungbote/studygroup-backend/internal/pkg/pointers"
)

type SubtopicView struct {
	ID          uuid.UUID `json:"id"`
	ActivityID  uuid.UUID `json:"activity_id"`
	Title       string    `json:"title"`
	Content     string    `json:"content,omitempty"`
	Order       int       `json:"order"`
	IsCompleted bool      `json:"is_completed"`
}

type ActivityView struct {
	ID             uuid.UUID      `json:"id"`
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	Subtopics      []SubtopicView `json:"subtopics"`
	TotalSubtopics int            `json:"total_subtopics"`
	Progress       int            `json:"progress"`
	CreatedAt      time.Time      `json:"created_at"`
}

type CompletionResult struct {
	ActivityID       uuid.UUID `json:"activity_id"`
	SubtopicID       uuid.UUID `json:"subtopic_id"`
	Progress         int       `json:"progress"`
	AlreadyCompleted bool      `json:"already_completed"`
	CompletedAt      time.Time `json:"completed_at"`
}

type CatalogService interface {
	ListActivities(ctx context.Context, userID uuid.UUID) ([]ActivityView, error)
	GetActivity(ctx context.Context, userID, activityID uuid.UUID) (*ActivityView, error)
	GetSubtopic(ctx context.Context, userID, activityID, subtopicID uuid.UUID) (*SubtopicView, error)
	// CompleteSubtopic records the completion and logs it as a subtopic_completed
	// activity carrying the new activity progress, which regenerates recommendations.
	CompleteSubtopic(ctx context.Context, userID, subtopicID uuid.UUID) (*CompletionResult, error)
}

type catalogService struct {
	log            *logger.Logger
	catalog        catalogcache.Catalog
	catalogRepo    repos.CatalogRepo
	completionRepo repos.SubtopicCompletionRepo
	userRepo       repos.UserRepo
	tracking       ActivityTrackingService
}

func NewCatalogService(
	log *logger.Logger,
	catalog catalogcache.Catalog,
	catalogRepo repos.CatalogRepo,
	completionRepo repos.SubtopicCompletionRepo,
	userRepo repos.UserRepo,
	tracking ActivityTrackingService,
) CatalogService {
	return &catalogService{
		log:            log.With("service", "CatalogService"),
		catalog:        catalog,
		catalogRepo:    catalogRepo,
		completionRepo: completionRepo,
		userRepo:       userRepo,
		tracking:       tracking,
	}
}

func (s *catalogService) ListActivities(ctx context.Context, userID uuid.UUID) ([]ActivityView, error) {
	all, err := s.catalog.List(ctx)
	if err != nil {
		return nil, apperr.Store("load catalog", err)
	}
	done, err := s.completedSet(ctx, userID)
	if err != nil {
		return nil, err
	}
	// newest first for browsing
	out := make([]ActivityView, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		out = append(out, activityView(all[i], done, false))
	}
	return out, nil
}

func (s *catalogService) GetActivity(ctx context.Context, userID, activityID uuid.UUID) (*ActivityView, error) {
	a, err := s.catalogRepo.GetActivity(ctx, nil, activityID)
	if err != nil {
		return nil, apperr.Store("get activity", err)
	}
	if a == nil {
		return nil, apperr.NotFound("activity")
	}
	done, err := s.completedSet(ctx, userID)
	if err != nil {
		return nil, err
	}
	v := activityView(a, done, true)
	return &v, nil
}

func (s *catalogService) GetSubtopic(ctx context.Context, userID, activityID, subtopicID uuid.UUID) (*SubtopicView, error) {
	st, err := s.catalogRepo.GetSubtopic(ctx, nil, subtopicID)
	if err != nil {
		return nil, apperr.Store("get subtopic", err)
	}
	if st == nil || st.ActivityID != activityID {
		return nil, apperr.NotFound("subtopic")
	}
	done, err := s.completedSet(ctx, userID)
	if err != nil {
		return nil, err
	}
	v := subtopicView(st, done, true)
	return &v, nil
}

func (s *catalogService) CompleteSubtopic(ctx context.Context, userID, subtopicID uuid.UUID) (*CompletionResult, error) {
	if userID == uuid.Nil {
		return nil, apperr.Validation("user_id", "is required")
	}
	ok, err := s.userRepo.Exists(ctx, nil, userID)
	if err != nil {
		return nil, apperr.Store("lookup user", err)
	}
	if !ok {
		return nil, apperr.NotFound("user")
	}
	st, err := s.catalogRepo.GetSubtopic(ctx, nil, subtopicID)
	if err != nil {
		return nil, apperr.Store("get subtopic", err)
	}
	if st == nil {
		return nil, apperr.NotFound("subtopic")
	}

	row, created, err := s.completionRepo.MarkCompleted(ctx, nil, userID, st.ID)
	if err != nil {
		return nil, apperr.Store("mark subtopic completed", err)
	}
	total, err := s.catalogRepo.CountSubtopics(ctx, nil, st.ActivityID)
	if err != nil {
		return nil, apperr.Store("count subtopics", err)
	}
	completed, err := s.completionRepo.CountByUserAndActivity(ctx, nil, userID, st.ActivityID)
	if err != nil {
		return nil, apperr.Store("count completions", err)
	}
	progress := percent(completed, total)

	res := &CompletionResult{
		ActivityID:       st.ActivityID,
		SubtopicID:       st.ID,
		Progress:         progress,
		AlreadyCompleted: !created,
		CompletedAt:      row.CompletedAt,
	}

	if _, err := s.tracking.LogActivity(ctx, userID, LogActivityInput{
		ActivityType:   types.ActivityTypeSubtopicCompleted,
		ActivityID:     pointers.Ptr(st.ActivityID),
		SubtopicID:     pointers.Ptr(st.ID),
		CompletionRate: pointers.Float64(float64(progress)),
		Metadata:       map[string]interface{}{"already_completed": !created},
	}); err != nil {
		// the completion itself is recorded; the activity log is secondary
		s.log.Warn("log subtopic completion failed", "user_id", userID, "subtopic_id", st.ID, "error", err)
	}
	return res, nil
}

func (s *catalogService) completedSet(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]bool, error) {
	done := map[uuid.UUID]bool{}
	if userID == uuid.Nil {
		return done, nil
	}
	rows, err := s.completionRepo.ListByUser(ctx, nil, userID)
	if err != nil {
		return nil, apperr.Store("list completions", err)
	}
	for _, r := range rows {
		done[r.SubtopicID] = true
	}
	return done, nil
}

func activityView(a *types.Activity, done map[uuid.UUID]bool, withContent bool) ActivityView {
	v := ActivityView{
		ID:             a.ID,
		Title:          a.Title,
		Description:    a.Description,
		Subtopics:      make([]SubtopicView, 0, len(a.Subtopics)),
		TotalSubtopics: len(a.Subtopics),
		CreatedAt:      a.CreatedAt,
	}
	var completed int64
	for i := range a.Subtopics {
		sv := subtopicView(&a.Subtopics[i], done, withContent)
		if sv.IsCompleted {
			completed++
		}
		v.Subtopics = append(v.Subtopics, sv)
	}
	v.Progress = percent(completed, int64(len(a.Subtopics)))
	return v
}

func subtopicView(st *types.Subtopic, done map[uuid.UUID]bool, withContent bool) SubtopicView {
	v := SubtopicView{
		ID:          st.ID,
		ActivityID:  st.ActivityID,
		Title:       st.Title,
		Order:       st.Order,
		IsCompleted: done[st.ID],
	}
	if withContent {
		v.Content = st.Content
	}
	return v
}

func percent(part, total int64) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
