package formatter

import (
	"fmt"
	"strings"

	"github.com/twlf/activity-tracker/internal/core/model"
	"github.com/twlf/activity-tracker/internal/util"
)

type TableFormatter struct {
	headers []string
}

func NewTableFormatter() *TableFormatter {
	return &TableFormatter{
		headers: []string{
			"ID", "Date", "Start", "End", "Duration", "App", "File/Tab", "Project", "Tags",
		},
	}
}

func (f *TableFormatter) Format(sessions []model.PersistedSession) error {
	if len(sessions) == 0 {
		fmt.Println("No sessions found")
		return nil
	}

	widths := f.calculateColumnWidths(sessions)

	f.printBorder(widths, "top")
	f.printRow(f.headers, widths)
	f.printBorder(widths, "middle")

	var totalDuration float64
	for _, s := range sessions {
		f.printRow(f.rowValues(s), widths)
		totalDuration += s.DurationSec
	}

	f.printBorder(widths, "middle")
	totalRow := []string{
		"Total", "", "", "", formatDurationSec(totalDuration),
		fmt.Sprintf("%d sessions", len(sessions)), "", "", "",
	}
	f.printRow(totalRow, widths)
	f.printBorder(widths, "bottom")

	return nil
}

func (f *TableFormatter) rowValues(s model.PersistedSession) []string {
	return []string{
		fmt.Sprintf("%d", s.ID),
		s.Date,
		timeOfDay(s.StartTime),
		timeOfDay(s.EndTime),
		formatDurationSec(s.DurationSec),
		s.App,
		s.FileTab,
		s.Project,
		s.Tags,
	}
}

// calculateColumnWidths determines the width for each column based on content
func (f *TableFormatter) calculateColumnWidths(sessions []model.PersistedSession) []int {
	widths := make([]int, len(f.headers))
	for i, header := range f.headers {
		widths[i] = util.GetDisplayWidth(header)
	}

	var totalDuration float64
	for _, s := range sessions {
		for i, value := range f.rowValues(s) {
			if w := util.GetDisplayWidth(value); w > widths[i] {
				widths[i] = w
			}
		}
		totalDuration += s.DurationSec
	}

	totalRow := []string{
		"Total", "", "", "", formatDurationSec(totalDuration),
		fmt.Sprintf("%d sessions", len(sessions)), "", "", "",
	}
	for i, value := range totalRow {
		if w := util.GetDisplayWidth(value); w > widths[i] {
			widths[i] = w
		}
	}

	// Cap the free-text columns so one long title does not blow up the table
	maxWidths := []int{0, 0, 0, 0, 0, 20, 48, 20, 20}
	for i, max := range maxWidths {
		if max > 0 && widths[i] > max {
			widths[i] = max
		}
	}

	return widths
}

// printBorder prints table borders (top, middle, bottom)
func (f *TableFormatter) printBorder(widths []int, borderType string) {
	var left, middle, right, separator string

	switch borderType {
	case "top":
		left, middle, right, separator = "┌", "┬", "┐", "─"
	case "middle":
		left, middle, right, separator = "├", "┼", "┤", "─"
	case "bottom":
		left, middle, right, separator = "└", "┴", "┘", "─"
	}

	fmt.Print(left)
	for i, width := range widths {
		fmt.Print(strings.Repeat(separator, width+2))
		if i < len(widths)-1 {
			fmt.Print(middle)
		}
	}
	fmt.Println(right)
}

// printRow prints one row padded to the column widths
func (f *TableFormatter) printRow(values []string, widths []int) {
	fmt.Print("│")
	for i, value := range values {
		fmt.Printf(" %s │", util.PadRight(value, widths[i]))
	}
	fmt.Println()
}
