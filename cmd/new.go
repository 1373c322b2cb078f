package cmd

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/bitacora/internal/logger"
)

var (
	newDate   string
	newFields eventFlags
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Add an entry to the work log",
	Args:  cobra.NoArgs,
	RunE:  runNew,
}

func init() {
	newCmd.Flags().StringVar(&newDate, "date", "", "Day of the entry (YYYY-MM-DD); defaults to today")
	newFields.register(newCmd)
}

func runNew(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	day, err := parseDateFlag(newDate)
	if err != nil {
		return err
	}
	patch, err := newFields.patch(cmd, day)
	if err != nil {
		return err
	}

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	// Anchor the view on the entry's week so the refresh after saving shows it.
	if err := a.actions.SetDate(ctx, day); err != nil {
		logger.Warn("could not load week before creating entry", "error", err)
	}

	a.actions.CreateNewEvent(patch)
	draft, ok := a.actions.Store().State().Draft()
	if !ok {
		return errors.New("draft entry was not created")
	}
	if err := a.actions.SaveNewEvent(ctx, draft); err != nil {
		return err
	}

	return writeEvents(cmd.OutOrStdout(), a.actions.Store().State().Events, "md")
}
