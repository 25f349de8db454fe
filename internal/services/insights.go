package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/yungbote/studygroup-backend/internal/data/catalogcache"
	"github.com/yungbote/studygroup-backend/internal/data/repos"
	"github.com/yungbote/studygroup-backend/internal/learning/recommend"
	apperr "github.com/yungbote/studygroup-backend/internal/pkg/errors"
	"github.com/yungbote/studygroup-backend/internal/pkg/logger"
)

const patternLogLimit = 100

type InsightsService interface {
	Patterns(ctx context.Context, userID uuid.UUID) (*recommend.PatternReport, error)
	LearningPath(ctx context.Context, userID uuid.UUID) ([]recommend.PathStep, error)
}

type insightsService struct {
	log            *logger.Logger
	logRepo        repos.ActivityLogRepo
	completionRepo repos.SubtopicCompletionRepo
	catalog        catalogcache.Catalog
}

func NewInsightsService(log *logger.Logger, logRepo repos.ActivityLogRepo, completionRepo repos.SubtopicCompletionRepo, catalog catalogcache.Catalog) InsightsService {
	return &insightsService{
		log:            log.With("service", "InsightsService"),
		logRepo:        logRepo,
		completionRepo: completionRepo,
		catalog:        catalog,
	}
}

func (s *insightsService) Patterns(ctx context.Context, userID uuid.UUID) (*recommend.PatternReport, error) {
	if userID == uuid.Nil {
		return nil, apperr.Validation("user_id", "is required")
	}
	logs, err := s.logRepo.ListRecentByUser(ctx, nil, userID, patternLogLimit)
	if err != nil {
		return nil, apperr.Store("load activity", err)
	}
	report := recommend.AnalyzePatterns(logs)
	return &report, nil
}

func (s *insightsService) LearningPath(ctx context.Context, userID uuid.UUID) ([]recommend.PathStep, error) {
	if userID == uuid.Nil {
		return nil, apperr.Validation("user_id", "is required")
	}
	completed, err := s.completionRepo.ListByUser(ctx, nil, userID)
	if err != nil {
		return nil, apperr.Store("load completions", err)
	}
	catalog, err := s.catalog.List(ctx)
	if err != nil {
		return nil, apperr.Store("load catalog", err)
	}
	return recommend.BuildLearningPath(completed, catalog), nil
}
