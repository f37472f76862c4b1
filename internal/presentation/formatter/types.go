package formatter

import (
	"fmt"

	"github.com/twlf/activity-tracker/internal/core/model"
)

// Formatter renders a list of persisted sessions to stdout.
type Formatter interface {
	Format(sessions []model.PersistedSession) error
}

// New returns the formatter for the given output format name.
func New(format string) (Formatter, error) {
	switch format {
	case "table", "":
		return NewTableFormatter(), nil
	case "json":
		return NewJSONFormatter(), nil
	case "csv":
		return NewCSVFormatter(), nil
	case "summary":
		return NewSummaryFormatter(), nil
	default:
		return nil, fmt.Errorf("unknown output format: %s (expected table, json, csv, summary)", format)
	}
}

func formatDurationSec(seconds float64) string {
	total := int(seconds)
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
}

// timeOfDay trims a stored "2006-01-02 15:04:05" timestamp to its clock part.
func timeOfDay(timestamp string) string {
	if len(timestamp) > 11 {
		return timestamp[11:]
	}
	return timestamp
}
