package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/studygroup-backend/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:        uuid.New(),
		Email:     email,
		FirstName: "A",
		LastName:  "B",
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

// SeedActivity creates an activity whose subtopics get orders 1..n in the given sequence.
// createdAt controls catalog iteration order.
func SeedActivity(tb testing.TB, ctx context.Context, tx *gorm.DB, createdAt time.Time, title, description string, subtopicTitles ...string) *types.Activity {
	tb.Helper()
	a := &types.Activity{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		CreatedAt:   createdAt.UTC(),
		UpdatedAt:   createdAt.UTC(),
	}
	for i, st := range subtopicTitles {
		a.Subtopics = append(a.Subtopics, types.Subtopic{
			ID:        uuid.New(),
			Title:     st,
			Content:   fmt.Sprintf("%s content", st),
			Order:     i + 1,
			CreatedAt: createdAt.UTC(),
			UpdatedAt: createdAt.UTC(),
		})
	}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed activity: %v", err)
	}
	return a
}

func SeedLog(tb testing.TB, ctx context.Context, tx *gorm.DB, l *types.ActivityLog) *types.ActivityLog {
	tb.Helper()
	if l.StartTime.IsZero() {
		l.StartTime = time.Now().UTC()
	}
	if err := tx.WithContext(ctx).Create(l).Error; err != nil {
		tb.Fatalf("seed activity log: %v", err)
	}
	return l
}

func SeedCompletion(tb testing.TB, ctx context.Context, tx *gorm.DB, userID, subtopicID uuid.UUID) *types.SubtopicCompletion {
	tb.Helper()
	c := &types.SubtopicCompletion{UserID: userID, SubtopicID: subtopicID, CompletedAt: time.Now().UTC()}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed completion: %v", err)
	}
	return c
}

func PtrUUID(v uuid.UUID) *uuid.UUID { return &v }

func PtrTime(v time.Time) *time.Time { return &v }

func PtrFloat(v float64) *float64 { return &v }

func PtrInt(v int) *int { return &v }
