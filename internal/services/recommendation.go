package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/studygroup-backend/internal/data/catalogcache"
	"github.com/yungbote/studygroup-backend/internal/data/repos"
	types "github.com/yungbote/studygroup-backend/internal/domain"
	"github.com/yungbote/studygroup-backend/internal/learning/recommend"
	"github.com/yungbote/studygroup-backend/internal/observability"
	apperr "github.com/yungbote/studygroup-backend/internal/pkg/errors"
	"github.com/yungbote/studygroup-backend/internal/pkg/keymutex"
	"github.com/yungbote/studygroup-backend/internal/pkg/logger"
)

// Generation triggers, recorded on metrics and spans.
const (
	TriggerActivityLogged     = "activity_logged"
	TriggerPreferencesUpdated = "preferences_updated"
	TriggerEmptyList          = "empty_list"
	TriggerManual             = "manual"
)

const (
	DefaultRecentLogLimit = 50
	similarLimit          = 3
	similarMinScore       = 0.5
)

type RecommendationService interface {
	// Generate recomputes and replaces the full recommendation set for userID.
	// Runs for the same user are serialized; the persisted set is always one run's output.
	Generate(ctx context.Context, userID uuid.UUID, trigger string) ([]*types.MLRecommendation, error)
}

type RecommendationConfig struct {
	RecentLogLimit int
	Category       recommend.CategoryMatcher
}

type recommendationService struct {
	log            *logger.Logger
	logRepo        repos.ActivityLogRepo
	prefRepo       repos.UserPreferenceRepo
	completionRepo repos.SubtopicCompletionRepo
	recRepo        repos.MLRecommendationRepo
	catalog        catalogcache.Catalog
	metrics        *observability.Metrics
	locks          *keymutex.KeyMutex[uuid.UUID]
	cfg            RecommendationConfig

	// similarity is swappable so a misbehaving scorer can be exercised in tests.
	similarity func(*types.Activity, []string) float64
}

func NewRecommendationService(
	log *logger.Logger,
	logRepo repos.ActivityLogRepo,
	prefRepo repos.UserPreferenceRepo,
	completionRepo repos.SubtopicCompletionRepo,
	recRepo repos.MLRecommendationRepo,
	catalog catalogcache.Catalog,
	metrics *observability.Metrics,
	cfg RecommendationConfig,
) RecommendationService {
	if cfg.RecentLogLimit <= 0 {
		cfg.RecentLogLimit = DefaultRecentLogLimit
	}
	return &recommendationService{
		log:            log.With("service", "RecommendationService"),
		logRepo:        logRepo,
		prefRepo:       prefRepo,
		completionRepo: completionRepo,
		recRepo:        recRepo,
		catalog:        catalog,
		metrics:        metrics,
		locks:          keymutex.New[uuid.UUID](),
		cfg:            cfg,
		similarity:     recommend.Similarity,
	}
}

type generationInputs struct {
	logs        []*types.ActivityLog
	pref        *types.UserPreference
	completions []types.CompletedSubtopic
	catalog     []*types.Activity
}

func (s *recommendationService) Generate(ctx context.Context, userID uuid.UUID, trigger string) ([]*types.MLRecommendation, error) {
	if userID == uuid.Nil {
		return nil, apperr.Validation("user_id", "is required")
	}
	ctx, span := observability.Tracer().Start(ctx, "recommendation.generate", trace.WithAttributes(
		attribute.String("user.id", userID.String()),
		attribute.String("recommendation.trigger", trigger),
	))
	defer span.End()

	start := time.Now()
	rows, err := s.generate(ctx, userID)
	outcome := "success"
	if err != nil {
		outcome = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.log.Warn("recommendation generation failed", "user_id", userID, "trigger", trigger, "error", err)
	} else {
		span.SetAttributes(attribute.Int("recommendation.count", len(rows)))
		s.log.Debug("recommendations generated", "user_id", userID, "trigger", trigger, "count", len(rows), "duration", time.Since(start))
	}
	s.metrics.ObserveGeneration(trigger, outcome, time.Since(start))
	return rows, err
}

func (s *recommendationService) generate(ctx context.Context, userID uuid.UUID) ([]*types.MLRecommendation, error) {
	unlock, err := s.locks.Lock(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("wait for generation lock: %w", err)
	}
	defer unlock()

	in, err := s.loadInputs(ctx, userID)
	if err != nil {
		return nil, err
	}

	rows := s.score(userID, in)
	rows = validRecommendations(rows)
	for i, r := range rows {
		r.Ordinal = i
	}

	if err := s.recRepo.ReplaceForUser(ctx, nil, userID, rows); err != nil {
		return nil, apperr.Store("replace recommendations", err)
	}
	for _, r := range rows {
		s.metrics.AddPersisted(r.RecommendationType, 1)
	}
	return rows, nil
}

func (s *recommendationService) loadInputs(ctx context.Context, userID uuid.UUID) (*generationInputs, error) {
	in := &generationInputs{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logs, err := s.logRepo.ListRecentByUser(gctx, nil, userID, s.cfg.RecentLogLimit)
		if err != nil {
			return apperr.Store("load recent activity", err)
		}
		in.logs = logs
		return nil
	})
	g.Go(func() error {
		pref, err := s.prefRepo.GetByUserID(gctx, nil, userID)
		if err != nil {
			return apperr.Store("load preferences", err)
		}
		in.pref = pref
		return nil
	})
	g.Go(func() error {
		completions, err := s.completionRepo.ListByUser(gctx, nil, userID)
		if err != nil {
			return apperr.Store("load completions", err)
		}
		in.completions = completions
		return nil
	})
	g.Go(func() error {
		catalog, err := s.catalog.List(gctx)
		if err != nil {
			return apperr.Store("load catalog", err)
		}
		in.catalog = catalog
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return in, nil
}

func (s *recommendationService) score(userID uuid.UUID, in *generationInputs) []*types.MLRecommendation {
	done := make(map[uuid.UUID]bool, len(in.completions))
	for _, c := range in.completions {
		done[c.SubtopicID] = true
	}
	catalog := openActivities(in.catalog, done)
	byID := make(map[uuid.UUID]*types.Activity, len(catalog))
	for _, a := range catalog {
		byID[a.ID] = a
	}

	out := []*types.MLRecommendation{}
	for _, c := range s.predict(in.logs, catalog) {
		out = append(out, &types.MLRecommendation{
			UserID:             userID,
			ActivityID:         c.ActivityID,
			SubtopicID:         nextOpenSubtopic(byID[c.ActivityID], c.SubtopicID, done),
			RecommendationType: types.RecommendationNextTopic,
			Score:              c.Score,
			Reason:             c.Reason,
		})
	}

	if in.pref != nil && len(in.pref.Topics()) > 0 {
		out = append(out, s.similar(userID, in.logs, catalog, in.pref.Topics())...)
	}
	return out
}

func (s *recommendationService) predict(logs []*types.ActivityLog, catalog []*types.Activity) (out []recommend.Candidate) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("next activity prediction failed", "error", fmt.Errorf("%w: %v", apperr.ErrScoring, r))
			s.metrics.IncScoringFailure("predictor")
			out = nil
		}
	}()
	return recommend.PredictNext(logs, catalog, recommend.PredictOptions{Category: s.cfg.Category})
}

func (s *recommendationService) similar(userID uuid.UUID, logs []*types.ActivityLog, catalog []*types.Activity, topics []string) []*types.MLRecommendation {
	logged := map[uuid.UUID]bool{}
	for _, l := range logs {
		if l != nil && l.ActivityID != nil {
			logged[*l.ActivityID] = true
		}
	}
	reason := "Based on your interest in " + strings.Join(topics, ", ")

	out := []*types.MLRecommendation{}
	for _, a := range catalog {
		if logged[a.ID] {
			continue
		}
		score, err := s.safeSimilarity(a, topics)
		if err != nil {
			s.log.Warn("dropping candidate", "activity_id", a.ID, "error", err)
			s.metrics.IncScoringFailure("similarity")
			continue
		}
		if score <= similarMinScore {
			continue
		}
		out = append(out, &types.MLRecommendation{
			UserID:             userID,
			ActivityID:         a.ID,
			RecommendationType: types.RecommendationSimilarContent,
			Score:              score,
			Reason:             reason,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > similarLimit {
		out = out[:similarLimit]
	}
	return out
}

func (s *recommendationService) safeSimilarity(a *types.Activity, topics []string) (score float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: activity %s: %v", apperr.ErrScoring, a.ID, r)
		}
	}()
	return s.similarity(a, topics), nil
}

// openActivities drops activities whose every subtopic is completed.
func openActivities(catalog []*types.Activity, done map[uuid.UUID]bool) []*types.Activity {
	out := make([]*types.Activity, 0, len(catalog))
	for _, a := range catalog {
		if a == nil {
			continue
		}
		if len(a.Subtopics) > 0 && len(done) > 0 {
			open := false
			for _, st := range a.Subtopics {
				if !done[st.ID] {
					open = true
					break
				}
			}
			if !open {
				continue
			}
		}
		out = append(out, a)
	}
	return out
}

// nextOpenSubtopic keeps the suggested subtopic unless it is already completed,
// in which case the first uncompleted one in order is used instead.
func nextOpenSubtopic(a *types.Activity, suggested *uuid.UUID, done map[uuid.UUID]bool) *uuid.UUID {
	if suggested == nil || !done[*suggested] || a == nil {
		return suggested
	}
	for _, st := range a.Subtopics {
		if !done[st.ID] {
			id := st.ID
			return &id
		}
	}
	return nil
}

func validRecommendations(rows []*types.MLRecommendation) []*types.MLRecommendation {
	out := make([]*types.MLRecommendation, 0, len(rows))
	for _, r := range rows {
		if r == nil || r.UserID == uuid.Nil || r.RecommendationType == "" {
			continue
		}
		if math.IsNaN(r.Score) || math.IsInf(r.Score, 0) {
			continue
		}
		out = append(out, r)
	}
	return out
}
