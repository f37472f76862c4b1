package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/twlf/activity-tracker/internal/application/tracking"
)

var (
	// Tracking cadence flags
	topSampleInterval  time.Duration
	topInactivityLimit time.Duration

	// Display flags
	topTimeFormat    string
	topRefreshPerSec float64

	// Exclusion flags
	topExclusionFile    string
	topExclusionRefresh string
)

var topCmd = &cobra.Command{
	Use:   "top",
	Short: "Track activity with a live terminal view",
	Long: `Runs the foreground-window tracker and displays the current session,
all live sessions and today's per-application totals in real time.

Session behavior:
- A session pauses when focus moves to another window
- Paused sessions resume if the window regains focus within the inactivity limit
- Sessions paused longer than the inactivity limit are persisted and dropped
- All remaining sessions are flushed on exit`,
	RunE: runTop,
}

func init() {
	rootCmd.AddCommand(topCmd)

	topCmd.Flags().DurationVar(&topSampleInterval, "interval", 0,
		"Sampling interval (default 2s)")
	topCmd.Flags().DurationVar(&topInactivityLimit, "inactivity-limit", 0,
		"Pause duration after which a session is finalized (default 5m)")
	topCmd.Flags().StringVar(&topTimeFormat, "time-format", "",
		"Clock format (12h, 24h)")
	topCmd.Flags().Float64Var(&topRefreshPerSec, "refresh-per-second", 0,
		"Display refresh rate")
	topCmd.Flags().StringVar(&topExclusionFile, "exclusion-file", "",
		"Process exclusion list file")
	topCmd.Flags().StringVar(&topExclusionRefresh, "exclusion-refresh", "",
		"Exclusion list refresh policy (always, ttl, watch)")
}

func runTop(cmd *cobra.Command, args []string) error {
	return runTracking(false)
}

// runTracking wires the orchestrator for top (live view) and track (headless).
func runTracking(headless bool) error {
	cfg, err := initRuntime()
	if err != nil {
		return err
	}
	applyTrackingFlags(&cfg)
	cfg.Headless = headless

	orchestrator, err := tracking.NewOrchestrator(&cfg)
	if err != nil {
		return fmt.Errorf("failed to create orchestrator: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return orchestrator.Run(ctx)
}

func applyTrackingFlags(cfg *tracking.Config) {
	if topSampleInterval > 0 {
		cfg.SampleInterval = topSampleInterval
	}
	if topInactivityLimit > 0 {
		cfg.InactivityLimit = topInactivityLimit
	}
	if topTimeFormat != "" {
		cfg.TimeFormat = topTimeFormat
	}
	if topRefreshPerSec > 0 {
		cfg.UIRefreshRate = topRefreshPerSec
	}
	if topExclusionFile != "" {
		cfg.ExclusionFile = expandPath(topExclusionFile)
	}
	if topExclusionRefresh != "" {
		cfg.ExclusionRefresh = topExclusionRefresh
	}
}
