package cmd

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/bitacora/internal/model"
	"github.com/Tiliavir/bitacora/internal/timecalc"
)

var (
	reportDate   string
	reportFormat string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show per-project totals for a week",
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportDate, "date", "", "Any day of the week (YYYY-MM-DD); defaults to today")
	reportCmd.Flags().StringVar(&reportFormat, "format", "md", "Output format: md, csv, json")
}

// projectTotal is the time logged on one project.
type projectTotal struct {
	Project         string `json:"project"`
	DurationMinutes int64  `json:"duration_minutes"`
	BillableMinutes int64  `json:"billable_minutes"`

	seconds         int64
	billableSeconds int64
}

// weekReport aggregates a week of events by project.
type weekReport struct {
	Week            string         `json:"week"`
	Projects        []projectTotal `json:"projects"`
	TotalMinutes    int64          `json:"total_minutes"`
	BillableMinutes int64          `json:"billable_minutes"`

	totalSeconds    int64
	billableSeconds int64
}

func buildReport(label string, events []model.Event) weekReport {
	byProject := map[string]*projectTotal{}
	r := weekReport{Week: label, Projects: []projectTotal{}}

	for _, e := range events {
		dur := e.DurationSeconds()
		if dur == 0 {
			continue
		}
		pt, ok := byProject[e.Project]
		if !ok {
			pt = &projectTotal{Project: e.Project}
			byProject[e.Project] = pt
		}
		pt.seconds += dur
		r.totalSeconds += dur
		if e.Billable {
			pt.billableSeconds += dur
			r.billableSeconds += dur
		}
	}

	for _, pt := range byProject {
		pt.DurationMinutes = pt.seconds / 60
		pt.BillableMinutes = pt.billableSeconds / 60
		r.Projects = append(r.Projects, *pt)
	}
	sort.Slice(r.Projects, func(i, j int) bool { return r.Projects[i].Project < r.Projects[j].Project })
	r.TotalMinutes = r.totalSeconds / 60
	r.BillableMinutes = r.billableSeconds / 60
	return r
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	date, err := parseDateFlag(reportDate)
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

	r := buildReport(timecalc.ISOWeekLabel(date), a.actions.Store().State().Events)
	return writeReport(cmd.OutOrStdout(), r, reportFormat)
}

func writeReport(w io.Writer, r weekReport, format string) error {
	switch format {
	case "csv":
		fmt.Fprintln(w, "project,duration_minutes,billable_minutes")
		for _, p := range r.Projects {
			fmt.Fprintf(w, "%s,%d,%d\n", csvEscape(p.Project), p.DurationMinutes, p.BillableMinutes)
		}
	case "json":
		data, err := sonic.ConfigStd.MarshalIndent(r, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
		fmt.Fprintln(w, string(data))
	case "md", "":
		fmt.Fprintf(w, "Week %s\n", r.Week)
		fmt.Fprintln(w, "------------------------------------------")
		for _, p := range r.Projects {
			fmt.Fprintf(w, "%-20s%-10s%s billable\n", p.Project,
				timecalc.FormatDuration(p.seconds), timecalc.FormatHours(p.billableSeconds))
		}
		fmt.Fprintln(w, "------------------------------------------")
		fmt.Fprintf(w, "%-20s%-10s%s billable\n", "Total",
			timecalc.FormatDuration(r.totalSeconds), timecalc.FormatHours(r.billableSeconds))
	default:
		return fmt.Errorf("unknown format %q (want md, csv or json)", format)
	}
	return nil
}
