package learning

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/studygroup-backend/internal/data/repos/testutil"
	types "github.com/yungbote/studygroup-backend/internal/domain"
)

func TestCatalogRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewCatalogRepo(db, testutil.Logger(t))

	base := time.Now().Add(-time.Hour)
	first := testutil.SeedActivity(t, ctx, tx, base, "Python Basics", "intro", "Variables", "Loops")
	second := testutil.SeedActivity(t, ctx, tx, base.Add(time.Minute), "quiz extra", "more")

	list, err := repo.ListWithSubtopics(ctx, tx)
	if err != nil {
		t.Fatalf("ListWithSubtopics: %v", err)
	}
	if len(list) != 2 || list[0].ID != first.ID || list[1].ID != second.ID {
		t.Fatalf("ListWithSubtopics: expected oldest first")
	}
	if len(list[0].Subtopics) != 2 || list[0].Subtopics[0].Order != 1 || list[0].Subtopics[1].Title != "Loops" {
		t.Fatalf("ListWithSubtopics: unexpected subtopics %+v", list[0].Subtopics)
	}
	if len(list[1].Subtopics) != 0 {
		t.Fatalf("ListWithSubtopics: expected no subtopics for second")
	}

	got, err := repo.GetActivity(ctx, tx, first.ID)
	if err != nil || got == nil || len(got.Subtopics) != 2 {
		t.Fatalf("GetActivity: got=%v err=%v", got, err)
	}
	if missing, err := repo.GetActivity(ctx, tx, uuid.New()); err != nil || missing != nil {
		t.Fatalf("GetActivity missing: got=%v err=%v", missing, err)
	}
	st, err := repo.GetSubtopic(ctx, tx, first.Subtopics[1].ID)
	if err != nil || st == nil || st.ActivityID != first.ID {
		t.Fatalf("GetSubtopic: got=%v err=%v", st, err)
	}
	if n, err := repo.CountSubtopics(ctx, tx, first.ID); err != nil || n != 2 {
		t.Fatalf("CountSubtopics: n=%d err=%v", n, err)
	}

	v1, err := repo.Version(ctx, tx)
	if err != nil {
		t.Fatalf("Version: %v", err)
	}
	if v1.Activities != 2 || v1.Subtopics != 2 {
		t.Fatalf("Version: unexpected %+v", v1)
	}

	if _, err := repo.CreateActivities(ctx, tx, []*types.Activity{{
		Title:     "Go Concurrency",
		Subtopics: []types.Subtopic{{Title: "Goroutines", Order: 1}},
	}}); err != nil {
		t.Fatalf("CreateActivities: %v", err)
	}
	v2, err := repo.Version(ctx, tx)
	if err != nil {
		t.Fatalf("Version after create: %v", err)
	}
	if v2.Key() == v1.Key() {
		t.Fatalf("Version: expected key to change after catalog mutation")
	}
}
