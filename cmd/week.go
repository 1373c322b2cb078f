package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/bitacora/internal/timecalc"
)

var (
	weekDate   string
	weekFormat string
)

var weekCmd = &cobra.Command{
	Use:   "week",
	Short: "List the work-log entries of a week",
	Args:  cobra.NoArgs,
	RunE:  runWeek,
}

func init() {
	weekCmd.Flags().StringVar(&weekDate, "date", "", "Any day of the week to show (YYYY-MM-DD); defaults to today")
	weekCmd.Flags().StringVar(&weekFormat, "format", "md", "Output format: md, csv, json, yaml")
}

func runWeek(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	date, err := parseDateFlag(weekDate)
	if err != nil {
		return err
	}

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	if err := a.actions.SetDate(ctx, date); err != nil {
		return fmt.Errorf("loading week: %w", err)
	}

	from, to := a.actions.Week(date)
	if weekFormat == "md" {
		fmt.Fprintf(cmd.OutOrStdout(), "Week %s (%s → %s)\n\n",
			timecalc.ISOWeekLabel(date), from.Format("2006-01-02"), to.Format("2006-01-02"))
	}
	state := a.actions.Store().State()
	if err := writeEvents(cmd.OutOrStdout(), state.Events, weekFormat); err != nil {
		return err
	}
	if weekFormat == "md" && len(state.Events) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", weekSummary(state))
	}
	return nil
}

// parseDateFlag returns today for an empty value.
func parseDateFlag(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	return timecalc.ParseDate(s, time.Local)
}
