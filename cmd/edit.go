package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	editDate   string
	editFields eventFlags
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change an existing work-log entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runEdit,
}

func init() {
	editCmd.Flags().StringVar(&editDate, "date", "", "Any day of the entry's week (YYYY-MM-DD); defaults to today")
	editFields.register(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	id := args[0]

	day, err := parseDateFlag(editDate)
	if err != nil {
		return err
	}
	patch, err := editFields.patch(cmd, day)
	if err != nil {
		return err
	}
	if patch.IsEmpty() {
		return errors.New("nothing to change: pass at least one field flag")
	}

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	if err := a.actions.SetDate(ctx, day); err != nil {
		return fmt.Errorf("loading week: %w", err)
	}
	if _, ok := a.actions.Store().State().Event(id); !ok {
		return fmt.Errorf("entry %s not found in the week of %s", id, day.Format("2006-01-02"))
	}

	a.actions.SetSelectedEventID(id)
	a.actions.UpdateEvent(id, patch)
	if err := a.actions.SaveEvent(ctx, id, patch); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), weekSummary(a.actions.Store().State()))
		return err
	}

	ev, _ := a.actions.Store().State().Event(id)
	fmt.Fprintln(cmd.OutOrStdout(), eventLine(ev))
	return nil
}
