package model

import "time"

// WindowSample is one observation of the foreground window, already passed
// through the exclusion predicate. A nil *WindowSample means there was no
// loggable foreground window on this tick.
type WindowSample struct {
	Handle      uintptr
	ProcessName string
	WindowTitle string
}

// WindowIdentity is the session key: two samples with the same triple belong
// to the same session even if time has passed between them.
type WindowIdentity struct {
	Handle uintptr
	App    string
	Label  string
}

// SessionSnapshot is a read-only copy of an in-memory session record, handed
// out by the tracker for display. Mutation happens only inside the tracker.
type SessionSnapshot struct {
	Start       time.Time
	LastSeen    time.Time
	PausedAt    *time.Time
	Accumulated float64 // active seconds, grows only while this key is active
	App         string
	Label       string
}

// Active reports whether the session is currently unpaused.
func (s SessionSnapshot) Active() bool {
	return s.PausedAt == nil
}

// PersistedSession is a durable session row. Immutable once written except
// through explicit field-level updates.
type PersistedSession struct {
	ID          int64   `json:"id"`
	Date        string  `json:"date"` // YYYY-MM-DD of the start time
	StartTime   string  `json:"start_time"`
	EndTime     string  `json:"end_time"`
	DurationSec float64 `json:"duration_sec"`
	App         string  `json:"app"`
	FileTab     string  `json:"filetab"`
	Description string  `json:"activity_desc"`
	Project     string  `json:"project,omitempty"`
	Tags        string  `json:"tags,omitempty"`
	MatterID    string  `json:"matter_id,omitempty"`
}

// Filter selects persisted sessions. Start is inclusive; a zero End means
// "no upper bound". String filters are exact matches except TagSubstring.
type Filter struct {
	Start        time.Time
	End          time.Time
	App          string
	Project      string
	TagSubstring string
	MatterID     string
}

// FieldUpdate carries a partial update for a persisted session. Nil pointers
// mean "leave unchanged", never "clear".
type FieldUpdate struct {
	Date        *string
	StartTime   *string
	EndTime     *string
	DurationSec *float64
	App         *string
	FileTab     *string
	Description *string
	Project     *string
	Tags        *string
	MatterID    *string
}

// Empty reports whether the update carries no changes.
func (u FieldUpdate) Empty() bool {
	return u.Date == nil && u.StartTime == nil && u.EndTime == nil &&
		u.DurationSec == nil && u.App == nil && u.FileTab == nil &&
		u.Description == nil && u.Project == nil && u.Tags == nil &&
		u.MatterID == nil
}

// InteractionState represents the current live-view interaction state.
type InteractionState struct {
	IsPaused      bool
	ShowHelp      bool
	StatusMessage string
}

// TimestampLayout is the storage format for session timestamps.
const TimestampLayout = "2006-01-02 15:04:05"

// DateLayout is the storage format for session dates.
const DateLayout = "2006-01-02"
