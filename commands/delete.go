package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/twlf/activity-tracker/internal/data/store"
)

var deleteForce bool

var deleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Delete a session record",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)

	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false,
		"Delete without confirmation")
}

func runDelete(cmd *cobra.Command, args []string) error {
	cfg, err := initRuntime()
	if err != nil {
		return err
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid session id %q: %w", args[0], err)
	}

	sessionStore, err := store.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open session store: %w", err)
	}
	defer sessionStore.Close()

	ctx := context.Background()

	if !deleteForce {
		session, err := sessionStore.Get(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to load session %d: %w", id, err)
		}
		fmt.Printf("Delete session %d (%s / %s, %s)? [y/N] ",
			id, session.App, session.FileTab, session.Date)
		var answer string
		fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("Aborted")
			return nil
		}
	}

	if err := sessionStore.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session %d: %w", id, err)
	}

	fmt.Printf("Deleted session %d\n", id)
	return nil
}
