package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	types "github.com/yungbote/studygroup-backend/internal/domain"
	apperr "github.com/yungbote/studygroup-backend/internal/pkg/errors"
)

func TestListActivitiesNewestFirstWithProgress(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	u := h.user(t, "list@example.com")
	older := h.activity(t, 0, "Older", "", "o1", "o2")
	newer := h.activity(t, time.Hour, "Newer", "", "n1")

	if _, err := h.catalog.CompleteSubtopic(ctx, u.ID, older.Subtopics[0].ID); err != nil {
		t.Fatalf("CompleteSubtopic: %v", err)
	}

	views, err := h.catalog.ListActivities(ctx, u.ID)
	if err != nil {
		t.Fatalf("ListActivities: %v", err)
	}
	if len(views) != 2 || views[0].ID != newer.ID || views[1].ID != older.ID {
		t.Fatalf("ListActivities: want newest first, got %+v", views)
	}
	if views[1].Progress != 50 || !views[1].Subtopics[0].IsCompleted || views[1].Subtopics[1].IsCompleted {
		t.Fatalf("ListActivities: unexpected progress %+v", views[1])
	}
	if views[0].Progress != 0 || views[0].TotalSubtopics != 1 {
		t.Fatalf("ListActivities: unexpected view %+v", views[0])
	}
}

func TestCompleteSubtopicIsIdempotent(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	u := h.user(t, "complete@example.com")
	a := h.activity(t, 0, "Go basics", "", "types", "channels")

	first, err := h.catalog.CompleteSubtopic(ctx, u.ID, a.Subtopics[0].ID)
	if err != nil {
		t.Fatalf("CompleteSubtopic: %v", err)
	}
	if first.Progress != 50 || first.AlreadyCompleted {
		t.Fatalf("CompleteSubtopic: unexpected %+v", first)
	}

	again, err := h.catalog.CompleteSubtopic(ctx, u.ID, a.Subtopics[0].ID)
	if err != nil {
		t.Fatalf("CompleteSubtopic again: %v", err)
	}
	if again.Progress != 50 || !again.AlreadyCompleted || !again.CompletedAt.Equal(first.CompletedAt) {
		t.Fatalf("CompleteSubtopic again: unexpected %+v", again)
	}

	n, err := h.compRepo.CountByUserAndActivity(ctx, nil, u.ID, a.ID)
	if err != nil || n != 1 {
		t.Fatalf("CountByUserAndActivity: want 1 got %d (%v)", n, err)
	}

	logs, err := h.logRepo.ListRecentByUser(ctx, nil, u.ID, 10)
	if err != nil {
		t.Fatalf("ListRecentByUser: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("want one log per completion call, got %d", len(logs))
	}
	for _, l := range logs {
		if l.ActivityType != types.ActivityTypeSubtopicCompleted || l.CompletionRate == nil || *l.CompletionRate != 50 {
			t.Fatalf("unexpected completion log %+v", l)
		}
	}

	done, err := h.catalog.CompleteSubtopic(ctx, u.ID, a.Subtopics[1].ID)
	if err != nil {
		t.Fatalf("CompleteSubtopic second subtopic: %v", err)
	}
	if done.Progress != 100 {
		t.Fatalf("CompleteSubtopic: want 100 got %d", done.Progress)
	}
}

func TestCompleteSubtopicErrors(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	u := h.user(t, "errs@example.com")
	a := h.activity(t, 0, "A", "", "a1")

	if _, err := h.catalog.CompleteSubtopic(ctx, u.ID, uuid.New()); !apperr.Is(err, apperr.ErrNotFound) {
		t.Fatalf("unknown subtopic: want ErrNotFound got %v", err)
	}
	if _, err := h.catalog.CompleteSubtopic(ctx, uuid.New(), a.Subtopics[0].ID); !apperr.Is(err, apperr.ErrNotFound) {
		t.Fatalf("unknown user: want ErrNotFound got %v", err)
	}
	if _, err := h.catalog.CompleteSubtopic(ctx, uuid.Nil, a.Subtopics[0].ID); !apperr.Is(err, apperr.ErrValidation) {
		t.Fatalf("nil user: want ErrValidation got %v", err)
	}
}

func TestGetActivityAndSubtopic(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	u := h.user(t, "get@example.com")
	a := h.activity(t, 0, "A", "", "a1", "a2")
	b := h.activity(t, time.Minute, "B", "", "b1")

	view, err := h.catalog.GetActivity(ctx, u.ID, a.ID)
	if err != nil {
		t.Fatalf("GetActivity: %v", err)
	}
	if view.TotalSubtopics != 2 || view.Subtopics[0].Title != "a1" || view.Subtopics[0].Content == "" {
		t.Fatalf("GetActivity: unexpected %+v", view)
	}
	if _, err := h.catalog.GetActivity(ctx, u.ID, uuid.New()); !apperr.Is(err, apperr.ErrNotFound) {
		t.Fatalf("GetActivity unknown: want ErrNotFound got %v", err)
	}

	st, err := h.catalog.GetSubtopic(ctx, u.ID, a.ID, a.Subtopics[1].ID)
	if err != nil {
		t.Fatalf("GetSubtopic: %v", err)
	}
	if st.Title != "a2" || st.Order != 2 {
		t.Fatalf("GetSubtopic: unexpected %+v", st)
	}
	if _, err := h.catalog.GetSubtopic(ctx, u.ID, a.ID, b.Subtopics[0].ID); !apperr.Is(err, apperr.ErrNotFound) {
		t.Fatalf("GetSubtopic other activity: want ErrNotFound got %v", err)
	}
}
