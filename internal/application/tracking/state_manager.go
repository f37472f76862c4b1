package tracking

import (
	"sync"

	"github.com/twlf/activity-tracker/internal/core/model"
	"github.com/twlf/activity-tracker/internal/data/analytics"
)

// StateManager manages live-view state in a thread-safe manner. Tracker
// state itself lives in the tracker; this only holds display concerns.
type StateManager struct {
	mu sync.RWMutex

	interactionState model.InteractionState
	todayTotals      []analytics.Aggregate
	lastTotalsUpdate int64
}

// NewStateManager creates a new StateManager instance
func NewStateManager() *StateManager {
	return &StateManager{}
}

// GetInteractionState returns a copy of the current interaction state
func (sm *StateManager) GetInteractionState() model.InteractionState {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.interactionState
}

// UpdateInteractionState updates specific fields of the interaction state
func (sm *StateManager) UpdateInteractionState(updateFunc func(*model.InteractionState)) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	updateFunc(&sm.interactionState)
}

// GetTodayTotals returns the cached per-application totals for today
func (sm *StateManager) GetTodayTotals() []analytics.Aggregate {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	totals := make([]analytics.Aggregate, len(sm.todayTotals))
	copy(totals, sm.todayTotals)
	return totals
}

// SetTodayTotals replaces the cached totals
func (sm *StateManager) SetTodayTotals(totals []analytics.Aggregate, timestamp int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.todayTotals = totals
	sm.lastTotalsUpdate = timestamp
}

// GetLastTotalsUpdate returns the timestamp of the last totals refresh
func (sm *StateManager) GetLastTotalsUpdate() int64 {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.lastTotalsUpdate
}
