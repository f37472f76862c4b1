package formatter

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twlf/activity-tracker/internal/core/model"
)

func captureOutput(t *testing.T, fn func() error) string {
	t.Helper()

	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fnErr := fn()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, err = io.Copy(&buf, r)
	require.NoError(t, err)
	require.NoError(t, fnErr)
	return buf.String()
}

func sampleSessions() []model.PersistedSession {
	return []model.PersistedSession{
		{
			ID:          1,
			Date:        "2026-08-30",
			StartTime:   "2026-08-30 09:00:00",
			EndTime:     "2026-08-30 09:30:00",
			DurationSec: 1800,
			App:         "MS Word",
			FileTab:     "report.docx",
			Description: "drafting",
			Project:     "acme",
			Tags:        "billable",
			MatterID:    "M-1001",
		},
		{
			ID:          2,
			Date:        "2026-08-30",
			StartTime:   "2026-08-30 10:00:00",
			EndTime:     "2026-08-30 10:10:00",
			DurationSec: 600,
			App:         "Chrome",
			FileTab:     "case law search",
		},
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		format   string
		expected interface{}
		wantErr  bool
	}{
		{name: "table", format: "table", expected: &TableFormatter{}},
		{name: "default is table", format: "", expected: &TableFormatter{}},
		{name: "json", format: "json", expected: &JSONFormatter{}},
		{name: "csv", format: "csv", expected: &CSVFormatter{}},
		{name: "summary", format: "summary", expected: &SummaryFormatter{}},
		{name: "unknown", format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := New(tt.format)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.expected, f)
		})
	}
}

func TestCSVFormatterFormat(t *testing.T) {
	out := captureOutput(t, func() error {
		return NewCSVFormatter().Format(sampleSessions())
	})

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{
		"ID", "Date", "Start", "End", "Duration (sec)", "App", "File/Tab",
		"Description", "Project", "Tags", "Matter ID",
	}, records[0])
	assert.Equal(t, []string{
		"1", "2026-08-30", "2026-08-30 09:00:00", "2026-08-30 09:30:00",
		"1800.0", "MS Word", "report.docx", "drafting", "acme", "billable", "M-1001",
	}, records[1])
	assert.Equal(t, "case law search", records[2][6])
}

func TestCSVFormatterEmpty(t *testing.T) {
	out := captureOutput(t, func() error {
		return NewCSVFormatter().Format(nil)
	})

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1, "header only")
}

func TestJSONFormatterFormat(t *testing.T) {
	out := captureOutput(t, func() error {
		return NewJSONFormatter().Format(sampleSessions())
	})

	var decoded []model.PersistedSession
	require.NoError(t, sonic.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, int64(1), decoded[0].ID)
	assert.Equal(t, "MS Word", decoded[0].App)
	assert.Equal(t, "case law search", decoded[1].FileTab)
}

func TestTableFormatterFormat(t *testing.T) {
	out := captureOutput(t, func() error {
		return NewTableFormatter().Format(sampleSessions())
	})

	assert.Contains(t, out, "report.docx")
	assert.Contains(t, out, "case law search")
	assert.Contains(t, out, "MS Word")
	// Border characters from the box layout.
	assert.Contains(t, out, "┌")
	assert.Contains(t, out, "└")
	// Grand total row: 1800 + 600 seconds.
	assert.Contains(t, out, "00:40:00")
}

func TestTableFormatterEmpty(t *testing.T) {
	out := captureOutput(t, func() error {
		return NewTableFormatter().Format(nil)
	})
	assert.Contains(t, out, "No sessions found")
}

func TestSummaryFormatterFormat(t *testing.T) {
	out := captureOutput(t, func() error {
		return NewSummaryFormatter().Format(sampleSessions())
	})

	assert.Contains(t, out, "Tracked Time Summary Report")
	assert.Contains(t, out, "Date Range: 2026-08-30")
	assert.Contains(t, out, "Sessions:     2")
	assert.Contains(t, out, "00:40:00")
	assert.Contains(t, out, "Time by Application:")
	assert.Contains(t, out, "MS Word")
	assert.Contains(t, out, "Time by Project:")
	assert.Contains(t, out, "acme")
	assert.Contains(t, out, "(Unassigned)")
}

func TestSummaryFormatterEmpty(t *testing.T) {
	out := captureOutput(t, func() error {
		return NewSummaryFormatter().Format(nil)
	})
	assert.Contains(t, out, "No sessions to summarize")
}

func TestFormatDurationSec(t *testing.T) {
	assert.Equal(t, "00:00:00", formatDurationSec(0))
	assert.Equal(t, "00:30:00", formatDurationSec(1800))
	assert.Equal(t, "01:02:03", formatDurationSec(3723))
}

func TestTimeOfDay(t *testing.T) {
	assert.Equal(t, "09:00:00", timeOfDay("2026-08-30 09:00:00"))
	assert.Equal(t, "short", timeOfDay("short"))
	assert.Equal(t, "", timeOfDay(""))
}
