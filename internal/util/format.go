package util

import (
	"fmt"
	"time"
)

// FormatClock formats active seconds into HH:MM:SS for display.
func FormatClock(seconds float64) string {
	total := int(seconds)
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
}

// FormatDuration renders a duration as a compact "Xh Ym" string.
func FormatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

// FormatHours renders seconds as fractional hours, e.g. "2.5h".
func FormatHours(seconds float64) string {
	return fmt.Sprintf("%.1fh", seconds/3600)
}

// ParseDateOrDefault parses a user-supplied MM-DD-YYYY date, falling back to
// the given default when the input is empty or malformed.
func ParseDateOrDefault(input string, fallback time.Time) time.Time {
	if input == "" {
		return fallback
	}
	t, err := time.Parse("01-02-2006", input)
	if err != nil {
		return fallback
	}
	return t
}
