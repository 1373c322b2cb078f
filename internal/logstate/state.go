package logstate

import (
	"time"

	"github.com/Tiliavir/bitacora/internal/model"
)

// State is the week view state.
type State struct {
	Loading bool
	// Date anchors the displayed week.
	Date time.Time
	// SelectedEventID is the focused event, or "" for none.
	SelectedEventID string
	// Events are kept in insertion/load order.
	Events []model.Event
}

// Event returns the event with the given id.
func (s State) Event(id string) (model.Event, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.Events[i], true
	}
	return model.Event{}, false
}

// Draft returns the unsaved draft event, if there is one.
func (s State) Draft() (model.Event, bool) {
	for _, e := range s.Events {
		if e.IsDraft() {
			return e, true
		}
	}
	return model.Event{}, false
}

// Unsaved returns the events with local edits not yet saved.
func (s State) Unsaved() []model.Event {
	var out []model.Event
	for _, e := range s.Events {
		if e.HasChanged {
			out = append(out, e)
		}
	}
	return out
}

func (s State) indexOf(id string) int {
	for i, e := range s.Events {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// clone copies s with its own events slice.
func (s State) clone() State {
	if s.Events != nil {
		events := make([]model.Event, len(s.Events))
		copy(events, s.Events)
		s.Events = events
	}
	return s
}
