package formatter

import (
	"fmt"
	"strings"

	"github.com/twlf/activity-tracker/internal/core/model"
	"github.com/twlf/activity-tracker/internal/data/analytics"
	"github.com/twlf/activity-tracker/internal/util"
)

// SummaryFormatter is responsible for formatting and outputting summary reports.
type SummaryFormatter struct{}

// NewSummaryFormatter creates a new instance of SummaryFormatter.
func NewSummaryFormatter() *SummaryFormatter {
	return &SummaryFormatter{}
}

// Format outputs a tracked-time summary grouped by application and project.
func (f *SummaryFormatter) Format(sessions []model.PersistedSession) error {
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("Tracked Time Summary Report")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println()

	if len(sessions) == 0 {
		fmt.Println("No sessions to summarize")
		fmt.Println()
		fmt.Println(strings.Repeat("=", 60))
		return nil
	}

	firstDate := sessions[0].Date
	lastDate := sessions[len(sessions)-1].Date
	if firstDate == lastDate {
		fmt.Printf("Date Range: %s\n", firstDate)
	} else {
		fmt.Printf("Date Range: %s to %s\n", firstDate, lastDate)
	}
	fmt.Println()

	total := analytics.TotalDuration(sessions)
	fmt.Println("Totals:")
	fmt.Printf("  Sessions:     %d\n", len(sessions))
	fmt.Printf("  Tracked Time: %s (%s)\n", formatDurationSec(total), util.FormatHours(total))
	fmt.Println()

	fmt.Println("Time by Application:")
	fmt.Println(strings.Repeat("-", 60))
	for _, agg := range analytics.Summarize(sessions, analytics.GroupByApp) {
		fmt.Printf("  %-30s %10s  %5.1f%%\n", agg.Key, formatDurationSec(agg.DurationSec), agg.Share)
	}
	fmt.Println()

	fmt.Println("Time by Project:")
	fmt.Println(strings.Repeat("-", 60))
	for _, agg := range analytics.Summarize(sessions, analytics.GroupByProject) {
		fmt.Printf("  %-30s %10s  %5.1f%%\n", agg.Key, formatDurationSec(agg.DurationSec), agg.Share)
	}

	fmt.Println()
	fmt.Println(strings.Repeat("=", 60))

	return nil
}
