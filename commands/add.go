package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/twlf/activity-tracker/internal/core/model"
	"github.com/twlf/activity-tracker/internal/data/store"
)

var (
	addStart    string
	addEnd      string
	addDuration time.Duration
	addApp      string
	addFileTab  string
	addDesc     string
	addProject  string
	addTags     string
	addMatter   string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Manually create a session record",
	Long: `Creates a session record directly in storage, for time that was not
captured by the tracker (meetings, phone calls, offline work).

When --duration is omitted it is derived from the start and end times.

Example:
  activity-tracker add --app Manual --filetab "Client call" \
    --from "2026-08-30 14:00:00" --to "2026-08-30 14:30:00" --project acme`,
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVar(&addStart, "from", "",
		"Start time (YYYY-MM-DD HH:MM:SS, required)")
	addCmd.Flags().StringVar(&addEnd, "to", "",
		"End time (YYYY-MM-DD HH:MM:SS, required)")
	addCmd.Flags().DurationVar(&addDuration, "duration", 0,
		"Active duration (default: end minus start)")
	addCmd.Flags().StringVar(&addApp, "app", "Manual",
		"Application name")
	addCmd.Flags().StringVar(&addFileTab, "filetab", "",
		"File/tab label (required)")
	addCmd.Flags().StringVar(&addDesc, "description", "",
		"Free-text description")
	addCmd.Flags().StringVar(&addProject, "project", "",
		"Project name")
	addCmd.Flags().StringVar(&addTags, "tags", "",
		"Comma-separated tags")
	addCmd.Flags().StringVar(&addMatter, "matter", "",
		"External matter id")

	addCmd.MarkFlagRequired("from")
	addCmd.MarkFlagRequired("to")
	addCmd.MarkFlagRequired("filetab")
}

func runAdd(cmd *cobra.Command, args []string) error {
	cfg, err := initRuntime()
	if err != nil {
		return err
	}

	start, err := time.Parse(model.TimestampLayout, addStart)
	if err != nil {
		return fmt.Errorf("invalid --from time (expected YYYY-MM-DD HH:MM:SS): %w", err)
	}
	end, err := time.Parse(model.TimestampLayout, addEnd)
	if err != nil {
		return fmt.Errorf("invalid --to time (expected YYYY-MM-DD HH:MM:SS): %w", err)
	}
	if end.Before(start) {
		return fmt.Errorf("end time %s is before start time %s", addEnd, addStart)
	}

	duration := addDuration.Seconds()
	if addDuration <= 0 {
		duration = end.Sub(start).Seconds()
	}

	sessionStore, err := store.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open session store: %w", err)
	}
	defer sessionStore.Close()

	id, err := sessionStore.Append(context.Background(), model.PersistedSession{
		Date:        start.Format(model.DateLayout),
		StartTime:   start.Format(model.TimestampLayout),
		EndTime:     end.Format(model.TimestampLayout),
		DurationSec: duration,
		App:         addApp,
		FileTab:     addFileTab,
		Description: addDesc,
		Project:     addProject,
		Tags:        addTags,
		MatterID:    addMatter,
	})
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	fmt.Printf("Created session %d\n", id)
	return nil
}
