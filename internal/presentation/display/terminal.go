// Package display renders the live tracking view on the terminal.
package display

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/twlf/activity-tracker/internal/core/model"
	"github.com/twlf/activity-tracker/internal/data/analytics"
	"github.com/twlf/activity-tracker/internal/util"
)

// DisplayConfig carries display settings for the live view.
type DisplayConfig struct {
	Timezone   string
	TimeFormat string // "12h" or "24h"
}

// TerminalDisplay renders the live tracking view in the alternate screen
// buffer. It reads tracker snapshots only; it never blocks on storage.
type TerminalDisplay struct {
	config            *DisplayConfig
	inAlternateScreen bool
}

// NewTerminalDisplay creates a new TerminalDisplay instance.
func NewTerminalDisplay(config *DisplayConfig) *TerminalDisplay {
	return &TerminalDisplay{config: config}
}

// EnterAlternateScreen switches to the alternate screen buffer.
func (td *TerminalDisplay) EnterAlternateScreen() {
	if !td.inAlternateScreen {
		fmt.Print("\033[?1049h")
		fmt.Print(util.ClearScreen)
		fmt.Print(util.MoveCursorHome)
		fmt.Print(util.HideCursor)
		td.inAlternateScreen = true
	}
}

// ExitAlternateScreen returns to the normal screen buffer.
func (td *TerminalDisplay) ExitAlternateScreen() {
	if td.inAlternateScreen {
		fmt.Print(util.ClearScreen)
		fmt.Print(util.MoveCursorHome)
		fmt.Print(util.ShowCursor)
		fmt.Print("\033[?1049l")
		td.inAlternateScreen = false
	}
}

// Render draws the full live view: current session, live session table and
// today's per-application totals.
func (td *TerminalDisplay) Render(current *model.SessionSnapshot, live []model.SessionSnapshot, today []analytics.Aggregate, state model.InteractionState) {
	width := td.terminalWidth()

	fmt.Print(util.ClearScreen)
	fmt.Print(util.MoveCursorHome)

	td.renderHeader(width, state)

	if state.ShowHelp {
		td.renderHelp()
		return
	}

	td.renderCurrent(current)
	td.renderLiveSessions(live, width)
	td.renderTodayTotals(today, width)

	if state.StatusMessage != "" {
		fmt.Printf("\r\n%s%s%s\r\n", util.ColorYellow, state.StatusMessage, util.ColorReset)
	}
}

func (td *TerminalDisplay) renderHeader(width int, state model.InteractionState) {
	tp := util.GetTimeProvider()
	clock := tp.Now().Format("15:04:05")
	if td.config.TimeFormat == "12h" {
		clock = tp.Now().Format("3:04:05 PM")
	}

	title := "Activity Tracker"
	status := ""
	if state.IsPaused {
		status = util.ColorYellow + " [PAUSED]" + util.ColorReset
	}

	fmt.Printf("%s%s%s%s  %s\r\n", util.ColorBold, title, util.ColorReset, status, clock)
	fmt.Print(strings.Repeat("─", width) + "\r\n")
}

func (td *TerminalDisplay) renderCurrent(current *model.SessionSnapshot) {
	if current == nil {
		fmt.Print("\r\nNo active window is being tracked.\r\n")
		return
	}

	marker := util.ColorGreen + "●" + util.ColorReset
	if !current.Active() {
		marker = util.ColorYellow + "◌" + util.ColorReset
	}
	fmt.Printf("\r\n%s %s%s%s - %s\r\n", marker, util.ColorBold, current.App, util.ColorReset, current.Label)
	fmt.Printf("  Active for %s (since %s)\r\n",
		util.FormatClock(current.Accumulated),
		util.GetTimeProvider().Format(current.Start, "15:04:05"))
}

func (td *TerminalDisplay) renderLiveSessions(live []model.SessionSnapshot, width int) {
	fmt.Printf("\r\n%sLive Sessions (%d)%s\r\n", util.ColorBold, len(live), util.ColorReset)
	fmt.Print(strings.Repeat("─", width) + "\r\n")

	if len(live) == 0 {
		fmt.Print("  (none)\r\n")
		return
	}

	labelWidth := width - 34
	if labelWidth < 16 {
		labelWidth = 16
	}
	for _, s := range live {
		state := util.ColorGreen + "active" + util.ColorReset
		if !s.Active() {
			state = util.ColorYellow + "paused" + util.ColorReset
		}
		label := s.App + ": " + s.Label
		fmt.Printf("  %s  %s  %s\r\n",
			util.PadRight(label, labelWidth),
			util.FormatClock(s.Accumulated),
			state)
	}
}

func (td *TerminalDisplay) renderTodayTotals(today []analytics.Aggregate, width int) {
	fmt.Printf("\r\n%sToday by Application%s\r\n", util.ColorBold, util.ColorReset)
	fmt.Print(strings.Repeat("─", width) + "\r\n")

	if len(today) == 0 {
		fmt.Print("  No time persisted yet today.\r\n")
		return
	}

	for _, agg := range today {
		fmt.Printf("  %s  %s  %4.1f%%\r\n",
			util.PadRight(agg.Key, 30),
			util.FormatClock(agg.DurationSec),
			agg.Share)
	}
}

func (td *TerminalDisplay) renderHelp() {
	fmt.Print("\r\nKeys:\r\n")
	fmt.Print("  q / Ctrl+C  quit (flushes all sessions)\r\n")
	fmt.Print("  p           pause/resume the display\r\n")
	fmt.Print("  h / ESC     toggle this help\r\n")
}

func (td *TerminalDisplay) terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}
