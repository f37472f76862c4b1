package tracking

import (
	"context"
	"fmt"
	"time"

	"github.com/twlf/activity-tracker/internal/core/classifier"
	"github.com/twlf/activity-tracker/internal/core/model"
	"github.com/twlf/activity-tracker/internal/core/sampler"
	"github.com/twlf/activity-tracker/internal/core/tracker"
	"github.com/twlf/activity-tracker/internal/data/analytics"
	"github.com/twlf/activity-tracker/internal/data/store"
	"github.com/twlf/activity-tracker/internal/presentation/display"
	"github.com/twlf/activity-tracker/internal/presentation/interaction"
	"github.com/twlf/activity-tracker/internal/util"
)

// Orchestrator coordinates the sampling loop, the session tracker, storage
// and the live display.
type Orchestrator struct {
	config *Config

	// Core components
	sampler    sampler.Sampler
	tracker    *tracker.Tracker
	store      *store.Store
	exclusions *classifier.ExclusionList

	// UI components
	stateManager *StateManager
	display      *display.TerminalDisplay
	keyboard     *interaction.KeyboardReader
}

// NewOrchestrator creates a new Orchestrator instance
func NewOrchestrator(config *Config) (*Orchestrator, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	sessionStore, err := store.Open(config.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}

	exclusions, err := classifier.NewExclusionList(
		config.ExclusionFile,
		classifier.RefreshMode(config.ExclusionRefresh),
		config.ExclusionTTL,
	)
	if err != nil {
		sessionStore.Close()
		return nil, fmt.Errorf("failed to load exclusion list: %w", err)
	}

	trk := tracker.New(tracker.Config{
		TickInterval:    config.SampleInterval,
		InactivityLimit: config.InactivityLimit,
	}, sessionStore)

	displayConfig := &display.DisplayConfig{
		Timezone:   config.Timezone,
		TimeFormat: config.TimeFormat,
	}

	return &Orchestrator{
		config:       config,
		sampler:      sampler.NewForegroundSampler(exclusions),
		tracker:      trk,
		store:        sessionStore,
		exclusions:   exclusions,
		stateManager: NewStateManager(),
		display:      display.NewTerminalDisplay(displayConfig),
	}, nil
}

// SetSampler overrides the platform sampler (tests).
func (o *Orchestrator) SetSampler(s sampler.Sampler) {
	o.sampler = s
}

// Tracker exposes the session tracker for read-only snapshot access.
func (o *Orchestrator) Tracker() *tracker.Tracker {
	return o.tracker
}

// Run starts the tracking loop and blocks until ctx is cancelled or the user
// quits. All in-memory sessions are flushed before returning.
func (o *Orchestrator) Run(ctx context.Context) error {
	util.LogInfo("Starting activity tracker...")
	defer o.Close()

	if err := util.InitializeTimeProvider(o.config.Timezone); err != nil {
		return fmt.Errorf("failed to initialize timezone: %w", err)
	}

	if o.config.Headless {
		return o.runHeadless(ctx)
	}
	return o.runLiveView(ctx)
}

// runHeadless runs sample/update/finalize on a fixed cadence with no UI.
func (o *Orchestrator) runHeadless(ctx context.Context) error {
	sampleTicker := time.NewTicker(o.config.SampleInterval)
	defer sampleTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return o.shutdown()
		case <-sampleTicker.C:
			o.tick(ctx)
		}
	}
}

// runLiveView runs the tracking loop with the interactive terminal display.
func (o *Orchestrator) runLiveView(ctx context.Context) error {
	keyboard, err := interaction.NewKeyboardReader()
	if err != nil {
		return fmt.Errorf("failed to initialize keyboard: %w", err)
	}
	o.keyboard = keyboard
	defer o.keyboard.Close()

	o.display.EnterAlternateScreen()
	defer o.display.ExitAlternateScreen()

	sampleTicker := time.NewTicker(o.config.SampleInterval)
	defer sampleTicker.Stop()

	uiTicker := time.NewTicker(time.Duration(float64(time.Second) / o.config.UIRefreshRate))
	defer uiTicker.Stop()

	totalsTicker := time.NewTicker(o.config.TotalsRefreshInterval)
	defer totalsTicker.Stop()

	o.refreshTodayTotals(ctx)
	o.updateDisplay()

	for {
		select {
		case <-ctx.Done():
			return o.shutdown()

		case <-sampleTicker.C:
			o.tick(ctx)

		case <-uiTicker.C:
			state := o.stateManager.GetInteractionState()
			if !state.IsPaused {
				o.updateDisplay()
			}

		case <-totalsTicker.C:
			o.refreshTodayTotals(ctx)

		case keyEvent := <-o.keyboard.Events():
			if o.handleKeyboard(keyEvent) {
				return o.shutdown()
			}
			o.updateDisplay()
		}
	}
}

// tick performs one sample/update/finalize iteration.
func (o *Orchestrator) tick(ctx context.Context) {
	sample := o.sampler.Sample()
	o.tracker.Update(sample)
	if err := o.tracker.FinalizeInactive(ctx); err != nil {
		util.LogErrorf("Failed to finalize inactive sessions: %v", err)
	}
}

// shutdown flushes every in-memory session before exit.
func (o *Orchestrator) shutdown() error {
	util.LogInfo("Shutting down activity tracker, flushing sessions...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := o.tracker.FinalizeAll(ctx); err != nil {
		util.LogErrorf("Failed to flush sessions on shutdown: %v", err)
		return err
	}
	return nil
}

// updateDisplay redraws the live view from tracker snapshots
func (o *Orchestrator) updateDisplay() {
	current := o.tracker.MostRecent()
	live := o.tracker.Snapshots()
	today := o.stateManager.GetTodayTotals()
	state := o.stateManager.GetInteractionState()
	o.display.Render(current, live, today, state)
}

// refreshTodayTotals re-reads today's persisted per-application totals
func (o *Orchestrator) refreshTodayTotals(ctx context.Context) {
	now := util.GetTimeProvider().Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	sessions, err := o.store.Query(ctx, model.Filter{Start: start, End: start})
	if err != nil {
		util.LogErrorf("Failed to load today's totals: %v", err)
		return
	}
	o.stateManager.SetTodayTotals(analytics.Summarize(sessions, analytics.GroupByApp), now.Unix())
}

// handleKeyboard handles keyboard events; returns true to request exit
func (o *Orchestrator) handleKeyboard(event interaction.KeyEvent) bool {
	switch event.Type {
	case interaction.KeyChar:
		switch event.Key {
		case 'q', 'Q', 3: // 'q', 'Q', or Ctrl+C
			return true
		case 'p', 'P':
			o.stateManager.UpdateInteractionState(func(s *model.InteractionState) {
				s.IsPaused = !s.IsPaused
			})
		case 'h', 'H':
			o.stateManager.UpdateInteractionState(func(s *model.InteractionState) {
				s.ShowHelp = !s.ShowHelp
			})
		}
	case interaction.KeyEscape:
		state := o.stateManager.GetInteractionState()
		if state.ShowHelp {
			o.stateManager.UpdateInteractionState(func(s *model.InteractionState) {
				s.ShowHelp = false
			})
		} else {
			return true
		}
	}
	return false
}

// Close cleans up all resources
func (o *Orchestrator) Close() error {
	if o.exclusions != nil {
		if err := o.exclusions.Close(); err != nil {
			util.LogErrorf("Failed to close exclusion list: %v", err)
		}
	}
	if o.store != nil {
		if err := o.store.Close(); err != nil {
			return fmt.Errorf("failed to close session store: %w", err)
		}
	}
	return nil
}
