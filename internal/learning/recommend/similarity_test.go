package recommend

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	types "github.com/yungbote/studygroup-backend/internal/domain"
)

func TestSimilarity(t *testing.T) {
	pythonBasics := &types.Activity{
		ID:          uuid.New(),
		Title:       "Python Basics",
		Description: "intro",
		Subtopics:   []types.Subtopic{{ID: uuid.New(), Title: "Variables"}},
	}

	t.Run("half of the topics match", func(t *testing.T) {
		assert.Equal(t, []string{"python", "basics", "intro", "variables"}, Tokens(pythonBasics))
		assert.Equal(t, 0.5, Similarity(pythonBasics, []string{"python", "web"}))
	})

	t.Run("empty topic list scores zero", func(t *testing.T) {
		assert.Equal(t, 0.0, Similarity(pythonBasics, nil))
		assert.Equal(t, 0.0, Similarity(pythonBasics, []string{}))
	})

	t.Run("substring rather than equality", func(t *testing.T) {
		a := &types.Activity{Title: "Webservers and sockets", Description: "networking"}
		assert.Equal(t, 1.0, Similarity(a, []string{"web", "NET"}))
	})

	t.Run("topics are not prefix matched against the whole text", func(t *testing.T) {
		a := &types.Activity{Title: "Data-Structures", Description: ""}
		assert.Equal(t, 0.0, Similarity(a, []string{"data structures"}))
		assert.Equal(t, 1.0, Similarity(a, []string{"struct"}))
	})

	t.Run("activity without subtopics", func(t *testing.T) {
		a := &types.Activity{Title: "Go", Description: "concurrency"}
		assert.Equal(t, 1.0, Similarity(a, []string{"concurrency"}))
	})

	t.Run("score stays within bounds", func(t *testing.T) {
		topics := []string{"python", "variables", "rust", "java", "intro"}
		s := Similarity(pythonBasics, topics)
		assert.GreaterOrEqual(t, s, 0.0)
		assert.LessOrEqual(t, s, 1.0)
		assert.InDelta(t, 3.0/5.0, s, 1e-9)
	})
}
