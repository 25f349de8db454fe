// Package recommend holds the heuristic scorers behind study recommendations.
// Everything here is pure: callers load logs, preferences, completions and the
// catalog, and persist whatever comes back.
package recommend

import (
	"github.com/google/uuid"
)

// Candidate is one scored suggestion, not yet tagged with a recommendation type.
type Candidate struct {
	ActivityID uuid.UUID  `json:"activity_id"`
	SubtopicID *uuid.UUID `json:"subtopic_id,omitempty"`
	Score      float64    `json:"score"`
	Reason     string     `json:"reason"`
}

const (
	PatternTimeConsistency = "time_consistency"
	PatternTypePreference  = "type_preference"
)

type Pattern struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// PatternReport fields are nil when there is not enough history to say anything.
type PatternReport struct {
	PreferredTime    *string   `json:"preferred_time"`
	AverageDuration  *float64  `json:"average_duration"`
	MostFrequentType *string   `json:"most_frequent_type"`
	Patterns         []Pattern `json:"patterns"`
}

type PathStep struct {
	Step          int       `json:"step"`
	SubtopicID    uuid.UUID `json:"subtopic_id"`
	ActivityID    uuid.UUID `json:"activity_id"`
	Title         string    `json:"title"`
	ActivityTitle string    `json:"activity_title"`
}
