package learning

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/studygroup-backend/internal/data/repos/testutil"
	"github.com/yungbote/studygroup-backend/internal/pkg/pointers"
)

func TestUserPreferenceRepoUpsertIsPartial(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewUserPreferenceRepo(db, testutil.Logger(t))
	u := testutil.SeedUser(t, ctx, tx, "prefs@example.com")

	if got, err := repo.GetByUserID(ctx, tx, u.ID); err != nil || got != nil {
		t.Fatalf("GetByUserID before create: got=%v err=%v", got, err)
	}

	topics := []string{"python", "web"}
	created, err := repo.Upsert(ctx, tx, u.ID, PreferencePatch{
		PreferredTopics: &topics,
		LearningStyle:   pointers.String("visual"),
	})
	if err != nil {
		t.Fatalf("Upsert create: %v", err)
	}
	if len(created.Topics()) != 2 || created.LearningStyle != "visual" {
		t.Fatalf("Upsert create: unexpected %+v", created)
	}

	updated, err := repo.Upsert(ctx, tx, u.ID, PreferencePatch{DifficultyLevel: pointers.String("advanced")})
	if err != nil {
		t.Fatalf("Upsert update: %v", err)
	}
	if updated.ID != created.ID {
		t.Fatalf("Upsert update: expected same row")
	}
	if len(updated.Topics()) != 2 || updated.Topics()[0] != "python" {
		t.Fatalf("Upsert update: topics should be unchanged, got %v", updated.Topics())
	}
	if updated.LearningStyle != "visual" || updated.DifficultyLevel != "advanced" {
		t.Fatalf("Upsert update: unexpected %+v", updated)
	}

	empty := []string{}
	cleared, err := repo.Upsert(ctx, tx, u.ID, PreferencePatch{PreferredTopics: &empty})
	if err != nil {
		t.Fatalf("Upsert clear: %v", err)
	}
	if len(cleared.Topics()) != 0 {
		t.Fatalf("Upsert clear: expected no topics, got %v", cleared.Topics())
	}

	if _, err := repo.Upsert(ctx, tx, uuid.Nil, PreferencePatch{}); err == nil {
		t.Fatalf("Upsert: expected error for nil user")
	}
}
