package tracking

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/twlf/activity-tracker/internal/core/model"
	"github.com/twlf/activity-tracker/internal/data/analytics"
)

func TestStateManagerInteractionState(t *testing.T) {
	sm := NewStateManager()

	state := sm.GetInteractionState()
	assert.False(t, state.IsPaused)
	assert.False(t, state.ShowHelp)

	sm.UpdateInteractionState(func(s *model.InteractionState) {
		s.IsPaused = true
		s.StatusMessage = "paused"
	})

	state = sm.GetInteractionState()
	assert.True(t, state.IsPaused)
	assert.Equal(t, "paused", state.StatusMessage)
}

func TestStateManagerTodayTotals(t *testing.T) {
	sm := NewStateManager()

	assert.Empty(t, sm.GetTodayTotals())
	assert.Zero(t, sm.GetLastTotalsUpdate())

	totals := []analytics.Aggregate{
		{Key: "MS Word", Sessions: 3, DurationSec: 5400},
	}
	sm.SetTodayTotals(totals, 1700000000)

	got := sm.GetTodayTotals()
	assert.Equal(t, totals, got)
	assert.Equal(t, int64(1700000000), sm.GetLastTotalsUpdate())

	// Mutating the returned slice must not affect the cached copy.
	got[0].Key = "mutated"
	assert.Equal(t, "MS Word", sm.GetTodayTotals()[0].Key)
}

func TestStateManagerConcurrentAccess(t *testing.T) {
	sm := NewStateManager()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			sm.UpdateInteractionState(func(s *model.InteractionState) {
				s.IsPaused = !s.IsPaused
			})
		}()
		go func() {
			defer wg.Done()
			_ = sm.GetInteractionState()
			_ = sm.GetTodayTotals()
		}()
	}
	wg.Wait()
}
