package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"gopkg.in/yaml.v3"

	"github.com/Tiliavir/bitacora/internal/logstate"
	"github.com/Tiliavir/bitacora/internal/model"
	"github.com/Tiliavir/bitacora/internal/timecalc"
)

// writeEvents renders events in the requested format: md, csv, json or yaml.
func writeEvents(w io.Writer, events []model.Event, format string) error {
	switch format {
	case "json":
		data, err := sonic.ConfigStd.MarshalIndent(events, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
		fmt.Fprintln(w, string(data))
	case "yaml":
		data, err := yaml.Marshal(events)
		if err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
		fmt.Fprint(w, string(data))
	case "csv":
		printCSV(w, events)
	case "md", "":
		printList(w, events)
	default:
		return fmt.Errorf("unknown format %q (want md, csv, json or yaml)", format)
	}
	return nil
}

// printList groups entries by date and prints them.
func printList(w io.Writer, events []model.Event) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No entries found.")
		return
	}

	for i, e := range events {
		if i == 0 || !sameGroup(events[i-1], e) {
			if e.Start == nil {
				fmt.Fprintln(w, "unscheduled")
			} else {
				fmt.Fprintln(w, e.Start.Format("2006-01-02"))
			}
		}
		fmt.Fprintln(w, eventLine(e))
	}
}

// sameGroup reports whether b is listed under the same heading as a.
func sameGroup(a, b model.Event) bool {
	if a.Start == nil || b.Start == nil {
		return a.Start == nil && b.Start == nil
	}
	return timecalc.SameDay(*a.Start, *b.Start)
}

// weekSummary renders "3 entries, 4h 30m", plus the unsaved count when
// local edits are pending.
func weekSummary(s logstate.State) string {
	var total int64
	for _, e := range s.Events {
		total += e.DurationSeconds()
	}
	noun := "entries"
	if len(s.Events) == 1 {
		noun = "entry"
	}
	out := fmt.Sprintf("%d %s, %s", len(s.Events), noun, timecalc.FormatDuration(total))
	if n := len(s.Unsaved()); n > 0 {
		out += fmt.Sprintf(", %d unsaved", n)
	}
	return out
}

// eventLine renders one event as "09:00–10:30  [id] Project/Activity  Title (1h 30m)".
func eventLine(e model.Event) string {
	span := "--:--–--:--"
	if e.Start != nil {
		endStr := "--:--"
		if e.End != nil {
			endStr = e.End.Format("15:04")
		}
		span = e.Start.Format("15:04") + "–" + endStr
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s  [%s] %s", span, e.ID, e.Project)
	if e.Activity != "" {
		b.WriteString("/" + e.Activity)
	}
	if e.Title != "" {
		b.WriteString("  " + e.Title)
	}
	if dur := e.DurationSeconds(); dur > 0 {
		fmt.Fprintf(&b, " (%s)", timecalc.FormatDuration(dur))
	}
	if e.Billable {
		b.WriteString(" $")
	}
	if e.HasChanged {
		b.WriteString(" *")
	}
	return b.String()
}

func printCSV(w io.Writer, events []model.Event) {
	fmt.Fprintln(w, "id,date,project,activity,title,description,related_url,billable,start,end,duration_minutes")
	for _, e := range events {
		date, startStr, endStr := "", "", ""
		if e.Start != nil {
			date = e.Start.Format("2006-01-02")
			startStr = e.Start.Format(time.RFC3339)
		}
		if e.End != nil {
			endStr = e.End.Format(time.RFC3339)
		}
		fmt.Fprintf(w, "%s,%s,%s,%s,%s,%s,%s,%t,%s,%s,%d\n",
			csvEscape(e.ID),
			csvEscape(date),
			csvEscape(e.Project),
			csvEscape(e.Activity),
			csvEscape(e.Title),
			csvEscape(e.Description),
			csvEscape(e.RelatedURL),
			e.Billable,
			csvEscape(startStr),
			csvEscape(endStr),
			e.DurationSeconds()/60,
		)
	}
}

// csvEscape wraps a field in quotes if it contains a comma, quote, or newline.
func csvEscape(s string) string {
	if !strings.ContainsAny(s, ",\"\n\r") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
