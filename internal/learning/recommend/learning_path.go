package recommend

import (
	"sort"

	"github.com/google/uuid"

	types "github.com/yungbote/studygroup-backend/internal/domain"
)

const (
	DefaultPathLength = 10

	inProgressBonus   = 0.5
	introductoryBonus = 0.3
)

type pathEntry struct {
	step  PathStep
	score float64
}

// BuildLearningPath orders the subtopics a user has not completed yet, favouring
// activities already in progress and introductory subtopics.
func BuildLearningPath(completed []types.CompletedSubtopic, catalog []*types.Activity) []PathStep {
	done := make(map[uuid.UUID]bool, len(completed))
	for _, c := range completed {
		done[c.SubtopicID] = true
	}

	// An activity is in progress when any of its catalog subtopics is completed.
	inProgress := map[uuid.UUID]bool{}
	for _, a := range catalog {
		if a == nil {
			continue
		}
		for _, st := range a.Subtopics {
			if done[st.ID] {
				inProgress[a.ID] = true
				break
			}
		}
	}

	entries := []pathEntry{}
	for _, a := range catalog {
		if a == nil {
			continue
		}
		for _, st := range a.Subtopics {
			if done[st.ID] {
				continue
			}
			var score float64
			if inProgress[a.ID] {
				score += inProgressBonus
			}
			if st.Order == 1 {
				score += introductoryBonus
			}
			entries = append(entries, pathEntry{
				step: PathStep{
					SubtopicID:    st.ID,
					ActivityID:    a.ID,
					Title:         st.Title,
					ActivityTitle: a.Title,
				},
				score: score,
			})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].score > entries[j].score })
	if len(entries) > DefaultPathLength {
		entries = entries[:DefaultPathLength]
	}
	out := make([]PathStep, 0, len(entries))
	for i, e := range entries {
		e.step.Step = i + 1
		out = append(out, e.step)
	}
	return out
}
