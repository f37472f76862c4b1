package commands

import (
	"github.com/spf13/cobra"
)

var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Track activity headless (no display)",
	Long: `Runs the foreground-window tracker without a terminal display,
suitable for running under a service manager. Sessions are persisted the
same way as in top mode; send SIGINT or SIGTERM to flush and exit.`,
	RunE: runTrack,
}

func init() {
	rootCmd.AddCommand(trackCmd)

	trackCmd.Flags().DurationVar(&topSampleInterval, "interval", 0,
		"Sampling interval (default 2s)")
	trackCmd.Flags().DurationVar(&topInactivityLimit, "inactivity-limit", 0,
		"Pause duration after which a session is finalized (default 5m)")
	trackCmd.Flags().StringVar(&topExclusionFile, "exclusion-file", "",
		"Process exclusion list file")
	trackCmd.Flags().StringVar(&topExclusionRefresh, "exclusion-refresh", "",
		"Exclusion list refresh policy (always, ttl, watch)")
}

func runTrack(cmd *cobra.Command, args []string) error {
	return runTracking(true)
}
