package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/bitacora/internal/model"
)

// eventFlags binds the editable event fields to a command's flags.
type eventFlags struct {
	title       string
	description string
	project     string
	activity    string
	relatedURL  string
	billable    bool
	start       string
	end         string
}

func (f *eventFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "Entry title")
	cmd.Flags().StringVar(&f.description, "description", "", "Entry description")
	cmd.Flags().StringVar(&f.project, "project", "", "Project (defaults to the stored default project)")
	cmd.Flags().StringVar(&f.activity, "activity", "", "Activity (defaults to the stored default activity)")
	cmd.Flags().StringVar(&f.relatedURL, "url", "", "Related URL, e.g. a ticket link")
	cmd.Flags().BoolVar(&f.billable, "billable", false, "Mark the entry as billable")
	cmd.Flags().StringVar(&f.start, "start", "", "Start time (HH:MM on --date, or RFC3339)")
	cmd.Flags().StringVar(&f.end, "end", "", "End time (HH:MM on --date, or RFC3339)")
}

// patch builds an EventPatch from the flags the user actually set.
func (f *eventFlags) patch(cmd *cobra.Command, day time.Time) (model.EventPatch, error) {
	var p model.EventPatch
	changed := cmd.Flags().Changed

	if changed("title") {
		p.Title = model.String(f.title)
	}
	if changed("description") {
		p.Description = model.String(f.description)
	}
	if changed("project") {
		p.Project = model.String(f.project)
	}
	if changed("activity") {
		p.Activity = model.String(f.activity)
	}
	if changed("url") {
		p.RelatedURL = model.String(f.relatedURL)
	}
	if changed("billable") {
		p.Billable = model.Bool(f.billable)
	}
	if changed("start") {
		t, err := parseClock(day, f.start)
		if err != nil {
			return p, fmt.Errorf("invalid --start: %w", err)
		}
		p.Start = &t
	}
	if changed("end") {
		t, err := parseClock(day, f.end)
		if err != nil {
			return p, fmt.Errorf("invalid --end: %w", err)
		}
		p.End = &t
	}
	if p.Start != nil && p.End != nil && p.End.Before(*p.Start) {
		return p, fmt.Errorf("--end %s is before --start %s", f.end, f.start)
	}
	return p, nil
}

// parseClock accepts HH:MM (on day, in day's location) or a full RFC3339 timestamp.
func parseClock(day time.Time, s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	clock, err := time.Parse("15:04", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q is neither HH:MM nor RFC3339", s)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, day.Location()), nil
}
