package formatter

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/twlf/activity-tracker/internal/core/model"
)

type CSVFormatter struct{}

func NewCSVFormatter() *CSVFormatter {
	return &CSVFormatter{}
}

func (f *CSVFormatter) Format(sessions []model.PersistedSession) error {
	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	headers := []string{
		"ID", "Date", "Start", "End", "Duration (sec)", "App", "File/Tab",
		"Description", "Project", "Tags", "Matter ID",
	}
	if err := w.Write(headers); err != nil {
		return err
	}

	for _, s := range sessions {
		record := []string{
			fmt.Sprintf("%d", s.ID),
			s.Date,
			s.StartTime,
			s.EndTime,
			fmt.Sprintf("%.1f", s.DurationSec),
			s.App,
			s.FileTab,
			s.Description,
			s.Project,
			s.Tags,
			s.MatterID,
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	return nil
}
