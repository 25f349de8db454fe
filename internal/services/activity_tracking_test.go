package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/studygroup-backend/internal/data/repos/testutil"
	types "github.com/yungbote/studygroup-backend/internal/domain"
	apperr "github.com/yungbote/studygroup-backend/internal/pkg/errors"
	"github.com/yungbote/studygroup-backend/internal/pkg/pointers"
)

func TestLogActivityValidation(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	u := h.user(t, "validate@example.com")

	cases := []struct {
		name string
		user uuid.UUID
		in   LogActivityInput
		want error
	}{
		{"blank type", u.ID, LogActivityInput{ActivityType: "  "}, apperr.ErrValidation},
		{"negative duration", u.ID, LogActivityInput{ActivityType: "quiz", DurationSeconds: pointers.Int(-1)}, apperr.ErrValidation},
		{"completion above 100", u.ID, LogActivityInput{ActivityType: "quiz", CompletionRate: pointers.Float64(101)}, apperr.ErrValidation},
		{"unknown user", uuid.New(), LogActivityInput{ActivityType: "quiz"}, apperr.ErrNotFound},
		{"unknown activity", u.ID, LogActivityInput{ActivityType: "quiz", ActivityID: pointers.Ptr(uuid.New())}, apperr.ErrNotFound},
		{"unknown subtopic", u.ID, LogActivityInput{ActivityType: "quiz", SubtopicID: pointers.Ptr(uuid.New())}, apperr.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := h.tracking.LogActivity(ctx, tc.user, tc.in)
			if !apperr.Is(err, tc.want) {
				t.Fatalf("LogActivity: want %v got %v", tc.want, err)
			}
		})
	}

	rows, err := h.logRepo.ListRecentByUser(ctx, nil, u.ID, 50)
	if err != nil {
		t.Fatalf("ListRecentByUser: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("rejected input must not write a log entry, found %d", len(rows))
	}
}

func TestLogActivityWritesEntryAndRegenerates(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	u := h.user(t, "log@example.com")
	a := h.activity(t, 0, "quiz one", "", "Q1")
	h.activity(t, 1, "quiz two", "")

	fixed := time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC)
	h.tracking.now = func() time.Time { return fixed }

	entry, err := h.tracking.LogActivity(ctx, u.ID, LogActivityInput{
		ActivityType:    "quiz",
		ActivityID:      pointers.Ptr(a.ID),
		SubtopicID:      pointers.Ptr(a.Subtopics[0].ID),
		DurationSeconds: pointers.Int(90),
		CompletionRate:  pointers.Float64(80),
		Metadata:        map[string]interface{}{"source": "web"},
	})
	if err != nil {
		t.Fatalf("LogActivity: %v", err)
	}
	if !entry.StartTime.Equal(fixed) || entry.EndTime == nil || !entry.EndTime.Equal(fixed.Add(90*time.Second)) {
		t.Fatalf("LogActivity: unexpected times start=%v end=%v", entry.StartTime, entry.EndTime)
	}
	if entry.Metadata["source"] != "web" {
		t.Fatalf("LogActivity: metadata not kept: %v", entry.Metadata)
	}

	recs := h.recommendations(t, u.ID)
	if len(recs) != 1 || recs[0].Reason == "" {
		t.Fatalf("LogActivity should regenerate recommendations, got %+v", recs)
	}

	noDuration, err := h.tracking.LogActivity(ctx, u.ID, LogActivityInput{ActivityType: "study_session"})
	if err != nil {
		t.Fatalf("LogActivity without duration: %v", err)
	}
	if noDuration.EndTime != nil {
		t.Fatalf("EndTime must stay empty without a duration")
	}
}

func TestLogActivitySubtopicMustBelongToActivity(t *testing.T) {
	h := newHarness(t)
	u := h.user(t, "mismatch@example.com")
	a := h.activity(t, 0, "A", "", "a1")
	b := h.activity(t, 1, "B", "", "b1")

	_, err := h.tracking.LogActivity(context.Background(), u.ID, LogActivityInput{
		ActivityType: "quiz",
		ActivityID:   pointers.Ptr(a.ID),
		SubtopicID:   pointers.Ptr(b.Subtopics[0].ID),
	})
	if !apperr.Is(err, apperr.ErrValidation) {
		t.Fatalf("LogActivity: want ErrValidation got %v", err)
	}
}

func TestUpdatePreferencesPartial(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	u := h.user(t, "prefs@example.com")
	h.activity(t, 0, "Web Development", "html")

	topics := []string{" web ", ""}
	pref, err := h.tracking.UpdatePreferences(ctx, u.ID, PreferenceInput{
		PreferredTopics: &topics,
		LearningStyle:   pointers.String("visual"),
	})
	if err != nil {
		t.Fatalf("UpdatePreferences: %v", err)
	}
	if got := pref.Topics(); len(got) != 1 || got[0] != "web" {
		t.Fatalf("UpdatePreferences: topics not normalized: %v", got)
	}

	pref, err = h.tracking.UpdatePreferences(ctx, u.ID, PreferenceInput{
		DifficultyLevel: pointers.String("beginner"),
		LearningStyle:   pointers.String("   "),
	})
	if err != nil {
		t.Fatalf("UpdatePreferences second: %v", err)
	}
	if pref.LearningStyle != "visual" || pref.DifficultyLevel != "beginner" || len(pref.Topics()) != 1 {
		t.Fatalf("UpdatePreferences: absent fields must be kept, got %+v", pref)
	}

	recs := h.recommendations(t, u.ID)
	if len(recs) != 1 || recs[0].RecommendationType != types.RecommendationSimilarContent {
		t.Fatalf("UpdatePreferences should regenerate similar content, got %+v", recs)
	}

	if _, err := h.tracking.UpdatePreferences(ctx, uuid.New(), PreferenceInput{}); !apperr.Is(err, apperr.ErrNotFound) {
		t.Fatalf("UpdatePreferences unknown user: want ErrNotFound got %v", err)
	}
}

func TestGetRecommendationsGeneratesWhenEmpty(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	u := h.user(t, "lazy@example.com")
	for i := 0; i < 6; i++ {
		h.activity(t, time.Duration(i)*time.Minute, "Web topic", "web")
	}
	topics := []string{"web"}
	if _, err := h.prefRepo.Upsert(ctx, nil, u.ID, topicsPatch(topics)); err != nil {
		t.Fatalf("seed prefs: %v", err)
	}
	testutil.SeedLog(t, ctx, h.db, &types.ActivityLog{UserID: u.ID, ActivityType: "Web"})

	rows, err := h.tracking.GetRecommendations(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetRecommendations: %v", err)
	}
	// 3 next_topic + 3 similar_content, capped at 5
	if len(rows) != DefaultRecommendationListLimit {
		t.Fatalf("GetRecommendations: want %d got %d", DefaultRecommendationListLimit, len(rows))
	}
	for i := 1; i < len(rows); i++ {
		if rows[i].Score > rows[i-1].Score {
			t.Fatalf("GetRecommendations: not sorted by score: %+v", rows)
		}
	}
	if rows[0].RecommendationType != types.RecommendationSimilarContent {
		t.Fatalf("GetRecommendations: highest score should be similar content, got %+v", rows[0])
	}
}

func TestGetActivityStats(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	u := h.user(t, "stats@example.com")
	now := time.Date(2024, 6, 10, 15, 0, 0, 0, time.UTC)
	h.tracking.now = func() time.Time { return now }

	seed := func(kind string, at time.Time, dur *int, rate *float64) {
		testutil.SeedLog(t, ctx, h.db, &types.ActivityLog{UserID: u.ID, ActivityType: kind, StartTime: at, DurationSeconds: dur, CompletionRate: rate})
	}
	seed("quiz", now.Add(-time.Hour), pointers.Int(60), pointers.Float64(40))
	seed("quiz", now.Add(-26*time.Hour), pointers.Int(30), nil)
	seed("study_session", now.Add(-2*24*time.Hour), nil, pointers.Float64(80))
	seed("study_session", now.Add(-30*24*time.Hour), pointers.Int(10), nil)

	stats, err := h.tracking.GetActivityStats(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetActivityStats: %v", err)
	}
	if stats.TotalTimeSpentSeconds != 100 {
		t.Fatalf("total time: want 100 got %d", stats.TotalTimeSpentSeconds)
	}
	if stats.AvgCompletionRate != 60 {
		t.Fatalf("avg completion: want 60 got %v", stats.AvgCompletionRate)
	}
	if len(stats.ActivityCounts) != 2 {
		t.Fatalf("counts: unexpected %+v", stats.ActivityCounts)
	}
	if len(stats.ActivityTrend) != 7 {
		t.Fatalf("trend: want 7 days got %d", len(stats.ActivityTrend))
	}
	last := stats.ActivityTrend[6]
	if last.Date != "2024-06-10" || last.Count != 1 {
		t.Fatalf("trend today: unexpected %+v", last)
	}
	if stats.ActivityTrend[5].Count != 1 || stats.ActivityTrend[4].Count != 1 || stats.ActivityTrend[0].Date != "2024-06-04" {
		t.Fatalf("trend: unexpected %+v", stats.ActivityTrend)
	}

	empty, err := h.tracking.GetActivityStats(ctx, h.user(t, "fresh@example.com").ID)
	if err != nil {
		t.Fatalf("GetActivityStats empty: %v", err)
	}
	if empty.TotalTimeSpentSeconds != 0 || empty.AvgCompletionRate != 0 || len(empty.ActivityCounts) != 0 {
		t.Fatalf("GetActivityStats empty: unexpected %+v", empty)
	}
}

func TestConcurrentLogActivityLeavesOneRunsSet(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	u := h.user(t, "overlap@example.com")
	for i := 0; i < 5; i++ {
		h.activity(t, time.Duration(i)*time.Minute, "quiz set", "")
	}

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := h.tracking.LogActivity(ctx, u.ID, LogActivityInput{ActivityType: "quiz"}); err != nil {
				t.Errorf("LogActivity: %v", err)
			}
		}()
	}
	wg.Wait()

	single, err := h.recs.Generate(ctx, u.ID, TriggerManual)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	persisted := h.recommendations(t, u.ID)
	if len(persisted) != len(single) || len(persisted) != 3 {
		t.Fatalf("want exactly one run's %d rows, got %d", len(single), len(persisted))
	}
}
