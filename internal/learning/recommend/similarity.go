package recommend

import (
	"regexp"
	"strings"

	types "github.com/yungbote/studygroup-backend/internal/domain"
)

var nonWord = regexp.MustCompile(`\W+`)

// Tokens returns the lowercase word bag for an activity: title, description and
// every subtopic title, split on runs of non-word characters.
func Tokens(a *types.Activity) []string {
	if a == nil {
		return nil
	}
	parts := make([]string, 0, 2+len(a.Subtopics))
	parts = append(parts, strings.ToLower(a.Title), strings.ToLower(a.Description))
	for _, st := range a.Subtopics {
		parts = append(parts, strings.ToLower(st.Title))
	}
	return nonWord.Split(strings.Join(parts, " "), -1)
}

// Similarity is the fraction of preferred topics that occur as a substring of
// at least one token of the activity. An empty topic list scores 0.
func Similarity(a *types.Activity, preferredTopics []string) float64 {
	if len(preferredTopics) == 0 {
		return 0
	}
	tokens := Tokens(a)
	matched := 0
	for _, topic := range preferredTopics {
		needle := strings.ToLower(topic)
		for _, tok := range tokens {
			if strings.Contains(tok, needle) {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(len(preferredTopics))
}
