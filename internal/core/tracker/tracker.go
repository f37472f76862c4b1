// Package tracker turns a noisy stream of foreground-window samples into
// discrete time-tracking sessions. It owns all in-memory session state;
// callers see only snapshots and the documented operations.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/twlf/activity-tracker/internal/core/classifier"
	"github.com/twlf/activity-tracker/internal/core/model"
	"github.com/twlf/activity-tracker/internal/util"
)

// Appender persists finalized session records.
type Appender interface {
	Append(ctx context.Context, s model.PersistedSession) (int64, error)
}

// Config controls tick accounting and finalization policy.
type Config struct {
	// TickInterval is the fixed per-tick accumulation increment.
	TickInterval time.Duration
	// InactivityLimit is how long a paused session may linger before it is
	// finalized and persisted.
	InactivityLimit time.Duration
	// Classify overrides the window classifier (tests). Defaults to
	// classifier.Classify.
	Classify func(processName, windowTitle string) (app, label string)
	// IsTransient overrides transient-label detection (tests). Defaults to
	// classifier.IsTransient.
	IsTransient func(app, label string) bool
	// Now overrides the clock (tests). Defaults to time.Now.
	Now func() time.Time
}

// Validate fills zero fields with defaults.
func (c *Config) Validate() error {
	if c.TickInterval <= 0 {
		c.TickInterval = 2 * time.Second
	}
	if c.InactivityLimit <= 0 {
		c.InactivityLimit = 5 * time.Minute
	}
	if c.Classify == nil {
		c.Classify = classifier.Classify
	}
	if c.IsTransient == nil {
		c.IsTransient = classifier.IsTransient
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return nil
}

type record struct {
	start       time.Time
	lastSeen    time.Time
	pausedAt    *time.Time
	accumulated float64
	app         string
	label       string
}

// Tracker is the session state machine. One exclusive lock guards the
// key-to-record map, the active key and the last-known-title cache; tick
// volume is low and record counts are small, so coarse locking is fine.
type Tracker struct {
	cfg   Config
	store Appender

	mu        sync.Mutex
	sessions  map[model.WindowIdentity]*record
	activeKey *model.WindowIdentity
	lastLabel map[string]string // last non-transient label per application
}

// New creates a Tracker that persists finalized sessions through store.
func New(cfg Config, store Appender) *Tracker {
	cfg.Validate()
	return &Tracker{
		cfg:       cfg,
		store:     store,
		sessions:  make(map[model.WindowIdentity]*record),
		lastLabel: make(map[string]string),
	}
}

// Update processes one foreground-window sample. A nil sample clears the
// active key and leaves every record untouched: an empty sample must not
// pause the formerly active session; pausing happens only when a different
// window takes focus. Brief focus gaps (lock screen, desktop) therefore
// never push a session toward the inactivity limit.
func (t *Tracker) Update(sample *model.WindowSample) {
	now := t.cfg.Now()

	t.mu.Lock()
	defer t.mu.Unlock()

	if sample == nil {
		t.activeKey = nil
		return
	}

	app, rawLabel := t.cfg.Classify(sample.ProcessName, sample.WindowTitle)
	label := t.foldLabel(app, rawLabel)
	key := model.WindowIdentity{Handle: sample.Handle, App: app, Label: label}

	// Pause the previous session when focus moved to a different window.
	// Do not finalize yet; it stays resumable for the inactivity window.
	if t.activeKey != nil && *t.activeKey != key {
		if prev, ok := t.sessions[*t.activeKey]; ok {
			paused := now
			prev.pausedAt = &paused
		}
	}

	rec, ok := t.sessions[key]
	if !ok {
		rec = &record{
			start:    now,
			lastSeen: now,
			app:      app,
			label:    label,
		}
		t.sessions[key] = rec
	} else {
		rec.pausedAt = nil
		rec.lastSeen = now
	}

	t.activeKey = &key
	rec.accumulated += t.cfg.TickInterval.Seconds()
}

// foldLabel substitutes a transient label with the last known real label for
// the application, so a save-dialog interstitial does not split the session.
// Caller holds the lock.
func (t *Tracker) foldLabel(app, label string) string {
	if t.cfg.IsTransient(app, label) {
		if cached, ok := t.lastLabel[app]; ok {
			return cached
		}
		return label
	}
	if label != "" {
		t.lastLabel[app] = label
	}
	return label
}

// FinalizeInactive persists and drops every session that has been paused
// longer than the inactivity limit. Records are copied out before the store
// write so the lock is not held across I/O, and a record is only removed
// after its persist succeeded.
func (t *Tracker) FinalizeInactive(ctx context.Context) error {
	now := t.cfg.Now()

	type candidate struct {
		key      model.WindowIdentity
		pausedAt time.Time
		session  model.PersistedSession
	}

	t.mu.Lock()
	var expired []candidate
	for key, rec := range t.sessions {
		if rec.pausedAt != nil && now.Sub(*rec.pausedAt) > t.cfg.InactivityLimit {
			expired = append(expired, candidate{
				key:      key,
				pausedAt: *rec.pausedAt,
				session:  rec.toPersisted(*rec.pausedAt),
			})
		}
	}
	t.mu.Unlock()

	if len(expired) == 0 {
		return nil
	}

	type persistedInfo struct {
		pausedAt time.Time
		duration float64
	}

	var errs []error
	persisted := make(map[model.WindowIdentity]persistedInfo)
	for _, c := range expired {
		if _, err := t.store.Append(ctx, c.session); err != nil {
			errs = append(errs, fmt.Errorf("persist session %q/%q: %w", c.session.App, c.session.FileTab, err))
			continue
		}
		persisted[c.key] = persistedInfo{pausedAt: c.pausedAt, duration: c.session.DurationSec}
	}

	t.mu.Lock()
	for key, info := range persisted {
		rec, ok := t.sessions[key]
		if !ok {
			continue
		}
		// The session resumed while we were writing: keep it, but shed the
		// seconds that were just persisted so they are never written twice.
		if rec.pausedAt == nil || !rec.pausedAt.Equal(info.pausedAt) {
			util.LogDebugf("Session %s resumed during finalize, keeping in memory", key.Label)
			rec.accumulated -= info.duration
			if rec.accumulated < 0 {
				rec.accumulated = 0
			}
			continue
		}
		delete(t.sessions, key)
	}
	t.mu.Unlock()

	return errors.Join(errs...)
}

// FinalizeAll persists every remaining in-memory session. Invoked on
// controlled shutdown; the end time is the pause time if set, else the last
// time the window was seen. A record is dropped only after its persist
// succeeded, so a failed flush leaves it in memory for a retry.
func (t *Tracker) FinalizeAll(ctx context.Context) error {
	now := t.cfg.Now()

	type candidate struct {
		key     model.WindowIdentity
		session model.PersistedSession
	}

	t.mu.Lock()
	pending := make([]candidate, 0, len(t.sessions))
	for key, rec := range t.sessions {
		end := now
		switch {
		case rec.pausedAt != nil:
			end = *rec.pausedAt
		case !rec.lastSeen.IsZero():
			end = rec.lastSeen
		}
		pending = append(pending, candidate{key: key, session: rec.toPersisted(end)})
	}
	t.mu.Unlock()

	var errs []error
	persisted := make([]model.WindowIdentity, 0, len(pending))
	for _, c := range pending {
		if _, err := t.store.Append(ctx, c.session); err != nil {
			errs = append(errs, fmt.Errorf("persist session %q/%q: %w", c.session.App, c.session.FileTab, err))
			continue
		}
		persisted = append(persisted, c.key)
	}

	t.mu.Lock()
	for _, key := range persisted {
		delete(t.sessions, key)
	}
	if t.activeKey != nil {
		if _, ok := t.sessions[*t.activeKey]; !ok {
			t.activeKey = nil
		}
	}
	t.mu.Unlock()

	return errors.Join(errs...)
}

// MostRecent returns a snapshot of the session with the greatest last-seen
// time, or nil if no session is live. Ties break on the session key so the
// result is deterministic. Never touches storage.
func (t *Tracker) MostRecent() *model.SessionSnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	var bestKey model.WindowIdentity
	var best *record
	for key, rec := range t.sessions {
		if best == nil || rec.lastSeen.After(best.lastSeen) ||
			(rec.lastSeen.Equal(best.lastSeen) && keyLess(key, bestKey)) {
			best = rec
			bestKey = key
		}
	}
	if best == nil {
		return nil
	}
	snap := best.snapshot()
	return &snap
}

// Snapshots returns copies of every live session, most recently seen first.
func (t *Tracker) Snapshots() []model.SessionSnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	snaps := make([]model.SessionSnapshot, 0, len(t.sessions))
	for _, rec := range t.sessions {
		snaps = append(snaps, rec.snapshot())
	}
	sortSnapshots(snaps)
	return snaps
}

// Len returns the number of live sessions.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.sessions)
}

func (r *record) snapshot() model.SessionSnapshot {
	snap := model.SessionSnapshot{
		Start:       r.start,
		LastSeen:    r.lastSeen,
		Accumulated: r.accumulated,
		App:         r.app,
		Label:       r.label,
	}
	if r.pausedAt != nil {
		paused := *r.pausedAt
		snap.PausedAt = &paused
	}
	return snap
}

func (r *record) toPersisted(end time.Time) model.PersistedSession {
	return model.PersistedSession{
		Date:        r.start.Format(model.DateLayout),
		StartTime:   r.start.Format(model.TimestampLayout),
		EndTime:     end.Format(model.TimestampLayout),
		DurationSec: r.accumulated,
		App:         r.app,
		FileTab:     r.label,
	}
}

func keyLess(a, b model.WindowIdentity) bool {
	if a.App != b.App {
		return a.App < b.App
	}
	if a.Label != b.Label {
		return a.Label < b.Label
	}
	return a.Handle < b.Handle
}

func sortSnapshots(snaps []model.SessionSnapshot) {
	sort.Slice(snaps, func(i, j int) bool {
		if !snaps[i].LastSeen.Equal(snaps[j].LastSeen) {
			return snaps[i].LastSeen.After(snaps[j].LastSeen)
		}
		if snaps[i].App != snaps[j].App {
			return snaps[i].App < snaps[j].App
		}
		return snaps[i].Label < snaps[j].Label
	})
}
