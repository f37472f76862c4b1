// Package analytics computes duration aggregates over persisted sessions.
package analytics

import (
	"sort"

	"github.com/twlf/activity-tracker/internal/core/model"
)

// GroupBy selects the aggregation key.
type GroupBy string

const (
	GroupByApp     GroupBy = "app"
	GroupByProject GroupBy = "project"
	GroupByDay     GroupBy = "day"
)

// Unassigned labels sessions without a project when grouping by project.
const Unassigned = "(Unassigned)"

// Aggregate is the summed tracked time for one group key.
type Aggregate struct {
	Key         string  `json:"key"`
	Sessions    int     `json:"sessions"`
	DurationSec float64 `json:"durationSec"`
	Share       float64 `json:"share"` // percentage of the grand total
}

// Summarize sums session durations grouped by the given key, sorted by
// duration descending (ties on key for stable output).
func Summarize(sessions []model.PersistedSession, groupBy GroupBy) []Aggregate {
	totals := make(map[string]*Aggregate)
	var grandTotal float64

	for _, s := range sessions {
		key := groupKey(s, groupBy)
		agg, ok := totals[key]
		if !ok {
			agg = &Aggregate{Key: key}
			totals[key] = agg
		}
		agg.Sessions++
		agg.DurationSec += s.DurationSec
		grandTotal += s.DurationSec
	}

	result := make([]Aggregate, 0, len(totals))
	for _, agg := range totals {
		if grandTotal > 0 {
			agg.Share = agg.DurationSec / grandTotal * 100
		}
		result = append(result, *agg)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].DurationSec != result[j].DurationSec {
			return result[i].DurationSec > result[j].DurationSec
		}
		return result[i].Key < result[j].Key
	})
	return result
}

// TotalDuration sums the durations of all sessions, in seconds.
func TotalDuration(sessions []model.PersistedSession) float64 {
	var total float64
	for _, s := range sessions {
		total += s.DurationSec
	}
	return total
}

func groupKey(s model.PersistedSession, groupBy GroupBy) string {
	switch groupBy {
	case GroupByProject:
		if s.Project == "" {
			return Unassigned
		}
		return s.Project
	case GroupByDay:
		return s.Date
	default:
		return s.App
	}
}
