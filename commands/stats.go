package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"github.com/twlf/activity-tracker/internal/data/analytics"
	"github.com/twlf/activity-tracker/internal/data/store"
	"github.com/twlf/activity-tracker/internal/util"
)

var statsGroupBy string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregated tracked time",
	Long: `Aggregates tracked time over the report window, grouped by app,
project, or day. The report filter flags (--start, --end, --app, --project,
--tag, --matter) narrow the input set.

Example:
  activity-tracker stats --group-by project --start 08-01-2026`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().StringVarP(&statsGroupBy, "group-by", "g", "app",
		"Aggregation key (app, project, day)")

	// Same report filters as the root command
	statsCmd.Flags().StringVar(&startDate, "start", "",
		"Start date (MM-DD-YYYY, default 30 days back)")
	statsCmd.Flags().StringVar(&endDate, "end", "",
		"End date (MM-DD-YYYY, optional)")
	statsCmd.Flags().StringVar(&filterApp, "app", "",
		"Filter by application name (exact match)")
	statsCmd.Flags().StringVar(&filterProj, "project", "",
		"Filter by project (exact match)")
	statsCmd.Flags().StringVar(&filterTag, "tag", "",
		"Filter by tag substring")
	statsCmd.Flags().StringVar(&filterMatter, "matter", "",
		"Filter by matter id (exact match)")

	statsCmd.Flags().StringVarP(&outputFormat, "output", "o", "table",
		"Output format (table, json)")
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := initRuntime()
	if err != nil {
		return err
	}

	var groupBy analytics.GroupBy
	switch statsGroupBy {
	case "app":
		groupBy = analytics.GroupByApp
	case "project":
		groupBy = analytics.GroupByProject
	case "day":
		groupBy = analytics.GroupByDay
	default:
		return fmt.Errorf("invalid group-by %q (expected app, project, or day)", statsGroupBy)
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

	aggregates := analytics.Summarize(sessions, groupBy)

	if outputFormat == "json" {
		data, err := sonic.MarshalIndent(aggregates, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal stats: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	printStats(aggregates, groupBy)
	return nil
}

func printStats(aggregates []analytics.Aggregate, groupBy analytics.GroupBy) {
	header := map[analytics.GroupBy]string{
		analytics.GroupByApp:     "Application",
		analytics.GroupByProject: "Project",
		analytics.GroupByDay:     "Day",
	}[groupBy]

	fmt.Printf("%-32s %10s %12s %8s\n", header, "Sessions", "Time", "Share")
	fmt.Println(strings.Repeat("-", 66))

	var total float64
	var count int
	for _, agg := range aggregates {
		fmt.Printf("%-32s %10d %12s %7.1f%%\n",
			agg.Key, agg.Sessions, util.FormatClock(agg.DurationSec), agg.Share)
		total += agg.DurationSec
		count += agg.Sessions
	}

	fmt.Println(strings.Repeat("-", 66))
	fmt.Printf("%-32s %10d %12s\n", "Total", count, util.FormatClock(total))
}
