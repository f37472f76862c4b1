package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/twlf/activity-tracker/internal/application/tracking"
	"github.com/twlf/activity-tracker/internal/core/model"
	"github.com/twlf/activity-tracker/internal/data/store"
	"github.com/twlf/activity-tracker/internal/presentation/formatter"
	"github.com/twlf/activity-tracker/internal/util"
)

var (
	// Logging related
	debug bool

	// Config and storage paths
	configFile string
	dbPath     string

	// Output related
	outputFormat string
	timezone     string

	// Report filters
	startDate    string
	endDate      string
	filterApp    string
	filterProj   string
	filterTag    string
	filterMatter string

	rootCmd = &cobra.Command{
		Use:   "activity-tracker [flags]",
		Short: "Desktop activity and time tracking tool",
		Long: `activity-tracker watches the foreground window, accumulates active time
into sessions and persists them to a local SQLite database.

Running without a subcommand reports recorded sessions for a date range.

Examples:
  activity-tracker                                  # Report the last 30 days
  activity-tracker --start 01-01-2026 --app "MS Word"
  activity-tracker --output summary                 # Aggregate report
  activity-tracker top                              # Live tracking view
  activity-tracker track                            # Headless tracking
  activity-tracker stats --group-by project         # Time per project`,
		RunE: runReport,
	}
)

const (
	defaultLogFile    = "~/.activity-tracker/logs/app.log"
	defaultConfigFile = "~/.activity-tracker/config.yaml"
	defaultDBFile     = "~/.activity-tracker/sessions.db"
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", defaultConfigFile,
		"Config file path")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "",
		"Session database path (default "+defaultDBFile+")")
	rootCmd.PersistentFlags().StringVar(&timezone, "timezone", "Local",
		"Timezone setting (e.g., Asia/Shanghai, UTC)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")

	// Report filters
	rootCmd.Flags().StringVar(&startDate, "start", "",
		"Start date (MM-DD-YYYY, default 30 days back)")
	rootCmd.Flags().StringVar(&endDate, "end", "",
		"End date (MM-DD-YYYY, optional)")
	rootCmd.Flags().StringVar(&filterApp, "app", "",
		"Filter by application name (exact match)")
	rootCmd.Flags().StringVar(&filterProj, "project", "",
		"Filter by project (exact match)")
	rootCmd.Flags().StringVar(&filterTag, "tag", "",
		"Filter by tag substring")
	rootCmd.Flags().StringVar(&filterMatter, "matter", "",
		"Filter by matter id (exact match)")

	rootCmd.Flags().StringVarP(&outputFormat, "output", "o", "table",
		"Output format (table, json, csv, summary)")
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := initRuntime()
	if err != nil {
		return err
	}

	sessionStore, err := store.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open session store: %w", err)
	}
	defer sessionStore.Close()

	sessions, err := sessionStore.Query(context.Background(), reportFilter())
	if err != nil {
		return fmt.Errorf("failed to query sessions: %w", err)
	}

	f, err := formatter.New(outputFormat)
	if err != nil {
		return err
	}
	return f.Format(sessions)
}

// reportFilter builds the session filter from the report flags. Malformed
// dates fall back to a 30-day lookback rather than failing.
func reportFilter() model.Filter {
	now := util.GetTimeProvider().Now()
	filter := model.Filter{
		Start:        util.ParseDateOrDefault(startDate, now.AddDate(0, 0, -30)),
		App:          filterApp,
		Project:      filterProj,
		TagSubstring: filterTag,
		MatterID:     filterMatter,
	}
	if endDate != "" {
		filter.End = util.ParseDateOrDefault(endDate, time.Time{})
	}
	return filter
}

// initRuntime initializes logging and the time provider, then loads the
// effective configuration (file values overridden by flags).
func initRuntime() (tracking.Config, error) {
	logLevel := "info"
	if debug {
		logLevel = "debug"
	}

	logFile := expandPath(defaultLogFile)
	ensureDir(filepath.Dir(logFile))
	util.InitLogger(logLevel, logFile, debug)

	if err := util.InitializeTimeProvider(timezone); err != nil {
		return tracking.Config{}, err
	}

	cfg, err := tracking.LoadConfig(expandPath(configFile))
	if err != nil {
		return tracking.Config{}, err
	}
	if dbPath != "" {
		cfg.DBPath = expandPath(dbPath)
	}
	if timezone != "" {
		cfg.Timezone = timezone
	}
	if err := cfg.Validate(); err != nil {
		return tracking.Config{}, err
	}
	return cfg, nil
}

func Execute() error {
	return rootCmd.Execute()
}

// Helper functions

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
