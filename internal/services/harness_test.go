package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/studygroup-backend/internal/data/catalogcache"
	"github.com/yungbote/studygroup-backend/internal/data/repos"
	"github.com/yungbote/studygroup-backend/internal/data/repos/testutil"
	types "github.com/yungbote/studygroup-backend/internal/domain"
)

type harness struct {
	db          *gorm.DB
	userRepo    repos.UserRepo
	catalogRepo repos.CatalogRepo
	logRepo     repos.ActivityLogRepo
	prefRepo    repos.UserPreferenceRepo
	compRepo    repos.SubtopicCompletionRepo
	recRepo     repos.MLRecommendationRepo

	recs     *recommendationService
	tracking *activityTrackingService
	catalog  CatalogService
	insights InsightsService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	h := &harness{
		db:          db,
		userRepo:    repos.NewUserRepo(db, log),
		catalogRepo: repos.NewCatalogRepo(db, log),
		logRepo:     repos.NewActivityLogRepo(db, log),
		prefRepo:    repos.NewUserPreferenceRepo(db, log),
		compRepo:    repos.NewSubtopicCompletionRepo(db, log),
		recRepo:     repos.NewMLRecommendationRepo(db, log),
	}
	cat := catalogcache.New(h.catalogRepo, nil, nil, log, catalogcache.Config{})
	h.recs = NewRecommendationService(log, h.logRepo, h.prefRepo, h.compRepo, h.recRepo, cat, nil, RecommendationConfig{}).(*recommendationService)
	h.tracking = NewActivityTrackingService(log, h.userRepo, h.catalogRepo, h.logRepo, h.prefRepo, h.recRepo, h.recs, nil, 0).(*activityTrackingService)
	h.catalog = NewCatalogService(log, cat, h.catalogRepo, h.compRepo, h.userRepo, h.tracking)
	h.insights = NewInsightsService(log, h.logRepo, h.compRepo, cat)
	return h
}

func (h *harness) user(t *testing.T, email string) *types.User {
	t.Helper()
	return testutil.SeedUser(t, context.Background(), h.db, email)
}

// activity seeds an activity; offset orders the catalog (smaller is older).
func (h *harness) activity(t *testing.T, offset time.Duration, title, description string, subtopics ...string) *types.Activity {
	t.Helper()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return testutil.SeedActivity(t, context.Background(), h.db, base.Add(offset), title, description, subtopics...)
}

func (h *harness) recommendations(t *testing.T, userID uuid.UUID) []*types.MLRecommendation {
	t.Helper()
	rows, err := h.recRepo.ListByUser(context.Background(), nil, userID, 100)
	if err != nil {
		t.Fatalf("list recommendations: %v", err)
	}
	return rows
}

func topicsPatch(topics []string) repos.PreferencePatch {
	return repos.PreferencePatch{PreferredTopics: &topics}
}
