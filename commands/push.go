package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/twlf/activity-tracker/internal/core/model"
	"github.com/twlf/activity-tracker/internal/data/store"
	"github.com/twlf/activity-tracker/internal/integration/matters"
	"github.com/twlf/activity-tracker/internal/util"
)

var (
	pushMatterID    string
	pushListMatters bool
)

var pushCmd = &cobra.Command{
	Use:   "push [session-id...]",
	Short: "Push sessions to the matter management system as time entries",
	Long: `Submits stored sessions to the configured matter management API as
time entries. Each pushed session is stamped with the matter id it was
billed to, so it is skipped on subsequent pushes.

Requires matter_base_url (and usually matter_token) in the config file.

Examples:
  activity-tracker push --list            # list available matters
  activity-tracker push 42 43 --matter M-1001`,
	RunE: runPush,
}

func init() {
	rootCmd.AddCommand(pushCmd)

	pushCmd.Flags().StringVar(&pushMatterID, "matter", "",
		"Matter id to bill the sessions to")
	pushCmd.Flags().BoolVar(&pushListMatters, "list", false,
		"List available matters and exit")
}

func runPush(cmd *cobra.Command, args []string) error {
	cfg, err := initRuntime()
	if err != nil {
		return err
	}

	client := matters.NewClient(cfg.MatterBaseURL, cfg.MatterToken)
	ctx := context.Background()

	if pushListMatters {
		list, err := client.ListMatters(ctx)
		if err != nil {
			return fmt.Errorf("failed to list matters: %w", err)
		}
		for _, m := range list {
			fmt.Printf("%-16s %s\n", m.ID, m.Name)
		}
		return nil
	}

	if len(args) == 0 {
		return fmt.Errorf("no session ids given; pass ids or use --list")
	}
	if pushMatterID == "" {
		return fmt.Errorf("--matter is required when pushing sessions")
	}

	sessionStore, err := store.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open session store: %w", err)
	}
	defer sessionStore.Close()

	var pushed, skipped int
	for _, arg := range args {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid session id %q: %w", arg, err)
		}

		session, err := sessionStore.Get(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to load session %d: %w", id, err)
		}
		if session.MatterID != "" {
			fmt.Printf("Session %d already billed to %s, skipping\n", id, session.MatterID)
			skipped++
			continue
		}

		description := session.Description
		if description == "" {
			description = fmt.Sprintf("%s: %s", session.App, session.FileTab)
		}

		entry, err := client.CreateTimeEntry(ctx, matters.TimeEntry{
			MatterID:    pushMatterID,
			StartTime:   session.StartTime,
			EndTime:     session.EndTime,
			DurationSec: session.DurationSec,
			Description: description,
		})
		if err != nil {
			return fmt.Errorf("failed to push session %d: %w", id, err)
		}

		// Only stamp the session after the entry was accepted upstream.
		matterID := pushMatterID
		update := model.FieldUpdate{MatterID: &matterID}
		if err := sessionStore.UpdateFields(ctx, id, update); err != nil {
			return fmt.Errorf("pushed session %d (entry %s) but failed to mark it: %w",
				id, entry.ID, err)
		}

		util.LogInfof("Pushed session %d as time entry %s", id, entry.ID)
		fmt.Printf("Pushed session %d (%s) as time entry %s\n", id, session.FileTab, entry.ID)
		pushed++
	}

	fmt.Printf("Done: %d pushed, %d skipped\n", pushed, skipped)
	return nil
}
