package recommend

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	types "github.com/yungbote/studygroup-backend/internal/domain"
)

const (
	DefaultPredictLimit = 3
	predictMinScore     = 0.2

	relatedBonus     = 0.3
	performanceBonus = 0.2
	untriedBonus     = 0.1

	// Compared against the raw completion rate as logged.
	performanceThreshold = 0.7

	reasonRelated     = "Related to your recent activity"
	reasonPerformance = "You perform well in similar activities"
	reasonUntried     = "You haven't tried this yet"
)

// CategoryMatcher decides whether a logged activity type belongs to the same
// category as a catalog activity.
type CategoryMatcher func(activityType string, a *types.Activity) bool

// TitleCategory treats the first whitespace-delimited word of the title as the category.
func TitleCategory(activityType string, a *types.Activity) bool {
	if activityType == "" || a == nil {
		return false
	}
	fields := strings.Fields(a.Title)
	if len(fields) == 0 {
		return false
	}
	return fields[0] == activityType
}

type PredictOptions struct {
	Category CategoryMatcher
	Limit    int
}

// PredictNext ranks catalog activities as likely next steps given recent logs
// (newest first). The activity of the newest log is never suggested.
func PredictNext(logs []*types.ActivityLog, catalog []*types.Activity, opts PredictOptions) []Candidate {
	out := []Candidate{}
	if len(logs) == 0 || len(catalog) == 0 || logs[0] == nil {
		return out
	}
	match := opts.Category
	if match == nil {
		match = TitleCategory
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultPredictLimit
	}

	latest := logs[0]
	tried := map[uuid.UUID]bool{}
	for _, l := range logs {
		if l != nil && l.ActivityID != nil {
			tried[*l.ActivityID] = true
		}
	}

	for _, a := range catalog {
		if a == nil {
			continue
		}
		if latest.ActivityID != nil && a.ID == *latest.ActivityID {
			continue
		}
		c, ok := scoreNext(latest, logs, a, match, tried)
		if ok {
			out = append(out, c)
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func scoreNext(latest *types.ActivityLog, logs []*types.ActivityLog, a *types.Activity, match CategoryMatcher, tried map[uuid.UUID]bool) (Candidate, bool) {
	var (
		score  float64
		reason string
	)

	if latest.ActivityType != "" && a.Title != "" && strings.Contains(a.Title, latest.ActivityType) {
		score += relatedBonus
		reason = reasonRelated
	}

	var sum float64
	n := 0
	for _, l := range logs {
		if l == nil || !match(l.ActivityType, a) {
			continue
		}
		n++
		if l.CompletionRate != nil {
			sum += *l.CompletionRate
		}
	}
	if n > 0 && sum/float64(n) > performanceThreshold {
		score += performanceBonus
		reason = appendReason(reason, reasonPerformance)
	}

	if !tried[a.ID] {
		score += untriedBonus
		reason = appendReason(reason, reasonUntried)
	}

	if score <= predictMinScore {
		return Candidate{}, false
	}
	c := Candidate{ActivityID: a.ID, Score: score, Reason: reason}
	if len(a.Subtopics) > 0 {
		id := a.Subtopics[0].ID
		c.SubtopicID = &id
	}
	return c, true
}

func appendReason(reason, clause string) string {
	if reason == "" {
		return clause
	}
	return reason + " and " + strings.ToLower(clause[:1]) + clause[1:]
}
