package recommend

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	types "github.com/yungbote/studygroup-backend/internal/domain"
)

func TestBuildLearningPathPrefersInProgress(t *testing.T) {
	s1 := types.Subtopic{ID: uuid.New(), Title: "s1", Order: 1}
	s2 := types.Subtopic{ID: uuid.New(), Title: "s2", Order: 2}
	s3 := types.Subtopic{ID: uuid.New(), Title: "s3", Order: 1}
	a := &types.Activity{ID: uuid.New(), Title: "A", Subtopics: []types.Subtopic{s1, s2}}
	b := &types.Activity{ID: uuid.New(), Title: "B", Subtopics: []types.Subtopic{s3}}

	got := BuildLearningPath([]types.CompletedSubtopic{{SubtopicID: s1.ID, ActivityID: a.ID}}, []*types.Activity{b, a})
	require.Len(t, got, 2)
	assert.Equal(t, PathStep{Step: 1, SubtopicID: s2.ID, ActivityID: a.ID, Title: "s2", ActivityTitle: "A"}, got[0])
	assert.Equal(t, PathStep{Step: 2, SubtopicID: s3.ID, ActivityID: b.ID, Title: "s3", ActivityTitle: "B"}, got[1])
}

func TestBuildLearningPathCapsAndNumbers(t *testing.T) {
	var catalog []*types.Activity
	var completed []types.CompletedSubtopic
	for i := 0; i < 4; i++ {
		a := &types.Activity{ID: uuid.New(), Title: fmt.Sprintf("A%d", i)}
		for j := 1; j <= 4; j++ {
			a.Subtopics = append(a.Subtopics, types.Subtopic{ID: uuid.New(), Title: fmt.Sprintf("A%d-%d", i, j), Order: j})
		}
		catalog = append(catalog, a)
	}
	completed = append(completed, types.CompletedSubtopic{SubtopicID: catalog[2].Subtopics[1].ID})

	got := BuildLearningPath(completed, catalog)
	require.Len(t, got, 10)
	for i, step := range got {
		assert.Equal(t, i+1, step.Step)
		assert.NotEqual(t, catalog[2].Subtopics[1].ID, step.SubtopicID)
	}
	// A2-1 is both introductory and in progress
	assert.Equal(t, "A2-1", got[0].Title)
	assert.Equal(t, "A2-3", got[1].Title)
	assert.Equal(t, "A2-4", got[2].Title)
	assert.Equal(t, "A0-1", got[3].Title)
}

func TestBuildLearningPathEmpty(t *testing.T) {
	assert.Empty(t, BuildLearningPath(nil, nil))
	a := &types.Activity{ID: uuid.New(), Title: "no subtopics"}
	assert.Empty(t, BuildLearningPath(nil, []*types.Activity{a}))
}
