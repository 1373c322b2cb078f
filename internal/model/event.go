package model

import "time"

// NewEventID is the id carried by the single unsaved draft event.
const NewEventID = "new"

// Event is a single work-log entry as shown in the week view.
type Event struct {
	ID          string     `json:"id" yaml:"id"`
	Editable    bool       `json:"editable,omitempty" yaml:"editable,omitempty"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description" yaml:"description"`
	Project     string     `json:"project" yaml:"project"`
	Activity    string     `json:"activity" yaml:"activity"`
	RelatedURL  string     `json:"relatedURL" yaml:"related_url"`
	Billable    bool       `json:"billable" yaml:"billable"`
	Start       *time.Time `json:"start,omitempty" yaml:"start,omitempty"`
	End         *time.Time `json:"end,omitempty" yaml:"end,omitempty"`

	// HasChanged is true while local edits have not been saved to the server.
	HasChanged bool `json:"-" yaml:"-"`
}

// IsDraft reports whether the event has never been saved.
func (e Event) IsDraft() bool {
	return e.ID == NewEventID
}

// DurationSeconds returns the length of the event, or 0 when it is not
// bound to both a start and an end.
func (e Event) DurationSeconds() int64 {
	if e.Start == nil || e.End == nil || e.End.Before(*e.Start) {
		return 0
	}
	return int64(e.End.Sub(*e.Start).Seconds())
}

// EventPatch is a partial update of an Event. Nil fields are left untouched.
// The JSON form is the request body sent to the daily_tasks endpoints.
type EventPatch struct {
	Editable    *bool      `json:"editable,omitempty"`
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Project     *string    `json:"project,omitempty"`
	Activity    *string    `json:"activity,omitempty"`
	RelatedURL  *string    `json:"relatedURL,omitempty"`
	Billable    *bool      `json:"billable,omitempty"`
	Start       *time.Time `json:"start,omitempty"`
	End         *time.Time `json:"end,omitempty"`

	HasChanged *bool `json:"-"`
}

// Apply returns a copy of e with every non-nil field of p merged over it.
// HasChanged is not touched; callers decide how to stamp it.
func (p EventPatch) Apply(e Event) Event {
	if p.Editable != nil {
		e.Editable = *p.Editable
	}
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Project != nil {
		e.Project = *p.Project
	}
	if p.Activity != nil {
		e.Activity = *p.Activity
	}
	if p.RelatedURL != nil {
		e.RelatedURL = *p.RelatedURL
	}
	if p.Billable != nil {
		e.Billable = *p.Billable
	}
	if p.Start != nil {
		start := *p.Start
		e.Start = &start
	}
	if p.End != nil {
		end := *p.End
		e.End = &end
	}
	return e
}

// IsEmpty reports whether the patch carries no field changes.
func (p EventPatch) IsEmpty() bool {
	return p == EventPatch{}
}

// String returns a pointer to s, for building patches.
func String(s string) *string { return &s }

// Bool returns a pointer to b, for building patches.
func Bool(b bool) *bool { return &b }
