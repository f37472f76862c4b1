package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/twlf/activity-tracker/internal/core/model"
	"github.com/twlf/activity-tracker/internal/data/store"
)

var (
	editDesc     string
	editProject  string
	editTags     string
	editMatter   string
	editDuration float64
)

var editCmd = &cobra.Command{
	Use:   "edit <session-id>",
	Short: "Update fields of an existing session",
	Long: `Updates the mutable fields of a stored session. Only flags that are
explicitly set are applied; passing an empty string clears that field.

Example:
  activity-tracker edit 42 --project acme --tags "billable,review"`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)

	editCmd.Flags().StringVar(&editDesc, "description", "",
		"Free-text description")
	editCmd.Flags().StringVar(&editProject, "project", "",
		"Project name")
	editCmd.Flags().StringVar(&editTags, "tags", "",
		"Comma-separated tags")
	editCmd.Flags().StringVar(&editMatter, "matter", "",
		"External matter id")
	editCmd.Flags().Float64Var(&editDuration, "duration-sec", 0,
		"Active duration in seconds")
}

func runEdit(cmd *cobra.Command, args []string) error {
	cfg, err := initRuntime()
	if err != nil {
		return err
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid session id %q: %w", args[0], err)
	}

	// Only flags the user actually set become updates; untouched fields
	// keep their stored values.
	var update model.FieldUpdate
	if cmd.Flags().Changed("description") {
		update.Description = &editDesc
	}
	if cmd.Flags().Changed("project") {
		update.Project = &editProject
	}
	if cmd.Flags().Changed("tags") {
		update.Tags = &editTags
	}
	if cmd.Flags().Changed("matter") {
		update.MatterID = &editMatter
	}
	if cmd.Flags().Changed("duration-sec") {
		if editDuration < 0 {
			return fmt.Errorf("duration must not be negative")
		}
		update.DurationSec = &editDuration
	}
	if update.Empty() {
		return fmt.Errorf("no fields to update; set at least one flag")
	}

	sessionStore, err := store.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open session store: %w", err)
	}
	defer sessionStore.Close()

	if err := sessionStore.UpdateFields(context.Background(), id, update); err != nil {
		return fmt.Errorf("failed to update session %d: %w", id, err)
	}

	fmt.Printf("Updated session %d\n", id)
	return nil
}
