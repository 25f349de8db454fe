package recommend

import (
	"fmt"

	types "github.com/yungbote/studygroup-backend/internal/domain"
)

const (
	MinPatternLogs = 5

	TimeMorning   = "morning"
	TimeAfternoon = "afternoon"
	TimeEvening   = "evening"
	TimeNight     = "night"

	timeConsistencyShare = 0.4
	typePreferenceShare  = 0.5
)

// TimeOfDay maps an hour (0-23) onto a coarse part of the day.
func TimeOfDay(hour int) string {
	switch {
	case hour >= 5 && hour < 12:
		return TimeMorning
	case hour >= 12 && hour < 17:
		return TimeAfternoon
	case hour >= 17 && hour < 21:
		return TimeEvening
	default:
		return TimeNight
	}
}

// AnalyzePatterns summarizes when and how a user studies. Hours are taken in UTC.
// With fewer than MinPatternLogs entries every field is left empty. Zero durations
// are left out of the average.
func AnalyzePatterns(logs []*types.ActivityLog) PatternReport {
	report := PatternReport{Patterns: []Pattern{}}
	entries := make([]*types.ActivityLog, 0, len(logs))
	for _, l := range logs {
		if l != nil {
			entries = append(entries, l)
		}
	}
	if len(entries) < MinPatternLogs {
		return report
	}
	total := float64(len(entries))

	hours := newCounter[int]()
	kinds := newCounter[string]()
	var (
		durSum float64
		durN   int
	)
	for _, l := range entries {
		hours.add(l.StartTime.UTC().Hour())
		kinds.add(l.ActivityType)
		if l.DurationSeconds != nil && *l.DurationSeconds > 0 {
			durSum += float64(*l.DurationSeconds)
			durN++
		}
	}

	hour, hourCount := topHour(hours)
	preferred := TimeOfDay(hour)
	report.PreferredTime = &preferred

	if durN > 0 {
		avg := durSum / float64(durN)
		report.AverageDuration = &avg
	}

	kind, kindCount := kinds.top()
	report.MostFrequentType = &kind

	if float64(hourCount) > total*timeConsistencyShare {
		report.Patterns = append(report.Patterns, Pattern{
			Type:        PatternTimeConsistency,
			Description: fmt.Sprintf("You tend to study during the %s", preferred),
		})
	}
	if float64(kindCount) > total*typePreferenceShare {
		report.Patterns = append(report.Patterns, Pattern{
			Type:        PatternTypePreference,
			Description: fmt.Sprintf("You prefer %s activities", kind),
		})
	}
	return report
}

// counter keeps first-seen order so ties resolve to the earliest key.
type counter[K comparable] struct {
	order  []K
	counts map[K]int
}

func newCounter[K comparable]() *counter[K] {
	return &counter[K]{counts: map[K]int{}}
}

func (c *counter[K]) add(k K) {
	if _, ok := c.counts[k]; !ok {
		c.order = append(c.order, k)
	}
	c.counts[k]++
}

func (c *counter[K]) top() (K, int) {
	var (
		best  K
		count int
	)
	for _, k := range c.order {
		if n := c.counts[k]; n > count {
			best, count = k, n
		}
	}
	return best, count
}

// topHour resolves ties to the earliest hour of the day, not the first seen.
func topHour(c *counter[int]) (int, int) {
	best, count := -1, 0
	for h, n := range c.counts {
		if n > count || (n == count && h < best) {
			best, count = h, n
		}
	}
	return best, count
}
