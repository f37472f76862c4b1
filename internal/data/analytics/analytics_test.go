package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twlf/activity-tracker/internal/core/model"
)

func session(date, app, project string, durationSec float64) model.PersistedSession {
	return model.PersistedSession{
		Date:        date,
		App:         app,
		Project:     project,
		DurationSec: durationSec,
	}
}

func TestSummarizeByApp(t *testing.T) {
	sessions := []model.PersistedSession{
		session("2026-08-30", "MS Word", "", 1800),
		session("2026-08-30", "MS Excel", "", 600),
		session("2026-08-30", "MS Word", "", 1200),
	}

	result := Summarize(sessions, GroupByApp)
	require.Len(t, result, 2)

	assert.Equal(t, "MS Word", result[0].Key)
	assert.Equal(t, 2, result[0].Sessions)
	assert.Equal(t, 3000.0, result[0].DurationSec)
	assert.InDelta(t, 83.3, result[0].Share, 0.1)

	assert.Equal(t, "MS Excel", result[1].Key)
	assert.Equal(t, 1, result[1].Sessions)
	assert.Equal(t, 600.0, result[1].DurationSec)
	assert.InDelta(t, 16.7, result[1].Share, 0.1)
}

func TestSummarizeByProjectUnassigned(t *testing.T) {
	sessions := []model.PersistedSession{
		session("2026-08-30", "MS Word", "acme", 1800),
		session("2026-08-30", "MS Excel", "", 600),
	}

	result := Summarize(sessions, GroupByProject)
	require.Len(t, result, 2)
	assert.Equal(t, "acme", result[0].Key)
	assert.Equal(t, Unassigned, result[1].Key)
}

func TestSummarizeByDay(t *testing.T) {
	sessions := []model.PersistedSession{
		session("2026-08-29", "MS Word", "", 600),
		session("2026-08-30", "MS Word", "", 1800),
		session("2026-08-29", "MS Excel", "", 600),
	}

	result := Summarize(sessions, GroupByDay)
	require.Len(t, result, 2)
	assert.Equal(t, "2026-08-30", result[0].Key)
	assert.Equal(t, 1800.0, result[0].DurationSec)
	assert.Equal(t, "2026-08-29", result[1].Key)
	assert.Equal(t, 1200.0, result[1].DurationSec)
	assert.Equal(t, 2, result[1].Sessions)
}

func TestSummarizeSortsTiesByKey(t *testing.T) {
	sessions := []model.PersistedSession{
		session("2026-08-30", "Chrome", "", 600),
		session("2026-08-30", "MS Word", "", 600),
		session("2026-08-30", "Firefox", "", 600),
	}

	result := Summarize(sessions, GroupByApp)
	require.Len(t, result, 3)
	assert.Equal(t, "Chrome", result[0].Key)
	assert.Equal(t, "Firefox", result[1].Key)
	assert.Equal(t, "MS Word", result[2].Key)
}

func TestSummarizeEmpty(t *testing.T) {
	assert.Empty(t, Summarize(nil, GroupByApp))
}

func TestTotalDuration(t *testing.T) {
	sessions := []model.PersistedSession{
		session("2026-08-30", "MS Word", "", 1800),
		session("2026-08-30", "MS Excel", "", 600),
	}
	assert.Equal(t, 2400.0, TotalDuration(sessions))
	assert.Equal(t, 0.0, TotalDuration(nil))
}
