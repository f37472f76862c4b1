package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twlf/activity-tracker/internal/core/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "sessions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testSession(date, app, fileTab string) model.PersistedSession {
	return model.PersistedSession{
		Date:        date,
		StartTime:   date + " 09:00:00",
		EndTime:     date + " 09:30:00",
		DurationSec: 1800,
		App:         app,
		FileTab:     fileTab,
	}
}

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse(model.DateLayout, value)
	require.NoError(t, err)
	return d
}

func TestAppendAndGet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	rec := testSession("2026-08-30", "MS Word", "report.docx")
	rec.Description = "drafting"
	rec.Project = "acme"
	rec.Tags = "billable,draft"
	rec.MatterID = "M-1001"

	id, err := s.Append(ctx, rec)
	require.NoError(t, err)
	assert.Greater(t, id, int64(0))

	got, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, rec.Date, got.Date)
	assert.Equal(t, rec.StartTime, got.StartTime)
	assert.Equal(t, rec.EndTime, got.EndTime)
	assert.Equal(t, rec.DurationSec, got.DurationSec)
	assert.Equal(t, rec.App, got.App)
	assert.Equal(t, rec.FileTab, got.FileTab)
	assert.Equal(t, rec.Description, got.Description)
	assert.Equal(t, rec.Project, got.Project)
	assert.Equal(t, rec.Tags, got.Tags)
	assert.Equal(t, rec.MatterID, got.MatterID)
}

func TestGetNotFound(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Get(context.Background(), 999)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestAppendStoresEmptyOptionalFieldsAsNull(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.Append(ctx, testSession("2026-08-30", "MS Word", "report.docx"))
	require.NoError(t, err)

	got, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, got.Project)
	assert.Empty(t, got.Tags)
	assert.Empty(t, got.MatterID)
	assert.Empty(t, got.Description)
}

func TestQueryFilters(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	early := testSession("2026-08-01", "MS Word", "old.docx")
	mid := testSession("2026-08-15", "MS Excel", "budget.xlsx")
	mid.Project = "acme"
	mid.Tags = "billable,review"
	late := testSession("2026-08-30", "MS Word", "report.docx")
	late.MatterID = "M-1001"

	for _, rec := range []model.PersistedSession{early, mid, late} {
		_, err := s.Append(ctx, rec)
		require.NoError(t, err)
	}

	tests := []struct {
		name     string
		filter   model.Filter
		expected []string // filetab values, in order
	}{
		{
			name:     "start date only",
			filter:   model.Filter{Start: mustDate(t, "2026-08-10")},
			expected: []string{"budget.xlsx", "report.docx"},
		},
		{
			name: "date range",
			filter: model.Filter{
				Start: mustDate(t, "2026-08-01"),
				End:   mustDate(t, "2026-08-15"),
			},
			expected: []string{"old.docx", "budget.xlsx"},
		},
		{
			name:     "by app",
			filter:   model.Filter{Start: mustDate(t, "2026-08-01"), App: "MS Word"},
			expected: []string{"old.docx", "report.docx"},
		},
		{
			name:     "by project",
			filter:   model.Filter{Start: mustDate(t, "2026-08-01"), Project: "acme"},
			expected: []string{"budget.xlsx"},
		},
		{
			name:     "by tag substring",
			filter:   model.Filter{Start: mustDate(t, "2026-08-01"), TagSubstring: "review"},
			expected: []string{"budget.xlsx"},
		},
		{
			name:     "by matter",
			filter:   model.Filter{Start: mustDate(t, "2026-08-01"), MatterID: "M-1001"},
			expected: []string{"report.docx"},
		},
		{
			name:     "no matches",
			filter:   model.Filter{Start: mustDate(t, "2026-09-01")},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions, err := s.Query(ctx, tt.filter)
			require.NoError(t, err)

			var fileTabs []string
			for _, rec := range sessions {
				fileTabs = append(fileTabs, rec.FileTab)
			}
			assert.Equal(t, tt.expected, fileTabs)
		})
	}
}

func TestQueryOrdersByDateAndStartTime(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	afternoon := testSession("2026-08-30", "MS Word", "afternoon.docx")
	afternoon.StartTime = "2026-08-30 14:00:00"
	morning := testSession("2026-08-30", "MS Word", "morning.docx")
	morning.StartTime = "2026-08-30 08:00:00"

	for _, rec := range []model.PersistedSession{afternoon, morning} {
		_, err := s.Append(ctx, rec)
		require.NoError(t, err)
	}

	sessions, err := s.Query(ctx, model.Filter{Start: mustDate(t, "2026-08-30")})
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "morning.docx", sessions[0].FileTab)
	assert.Equal(t, "afternoon.docx", sessions[1].FileTab)
}

func TestUpdateFields(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.Append(ctx, testSession("2026-08-30", "MS Word", "report.docx"))
	require.NoError(t, err)

	project := "acme"
	desc := "client review"
	duration := 900.0
	err = s.UpdateFields(ctx, id, model.FieldUpdate{
		Project:     &project,
		Description: &desc,
		DurationSec: &duration,
	})
	require.NoError(t, err)

	got, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "acme", got.Project)
	assert.Equal(t, "client review", got.Description)
	assert.Equal(t, 900.0, got.DurationSec)
	// Untouched fields keep their values.
	assert.Equal(t, "MS Word", got.App)
	assert.Equal(t, "report.docx", got.FileTab)
}

func TestUpdateFieldsEmptyStringClears(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	rec := testSession("2026-08-30", "MS Word", "report.docx")
	rec.Project = "acme"
	id, err := s.Append(ctx, rec)
	require.NoError(t, err)

	empty := ""
	require.NoError(t, s.UpdateFields(ctx, id, model.FieldUpdate{Project: &empty}))

	got, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, got.Project)
}

func TestUpdateFieldsEmptyUpdateIsNoOp(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.Append(ctx, testSession("2026-08-30", "MS Word", "report.docx"))
	require.NoError(t, err)

	require.NoError(t, s.UpdateFields(ctx, id, model.FieldUpdate{}))

	got, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "report.docx", got.FileTab)
}

func TestUpdateFieldsNotFound(t *testing.T) {
	s := openTestStore(t)

	project := "acme"
	err := s.UpdateFields(context.Background(), 999, model.FieldUpdate{Project: &project})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestDelete(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.Append(ctx, testSession("2026-08-30", "MS Word", "report.docx"))
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, id))

	_, err = s.Get(ctx, id)
	require.Error(t, err)

	err = s.Delete(ctx, id)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
