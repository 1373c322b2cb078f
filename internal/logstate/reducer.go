package logstate

import (
	"time"

	"github.com/Tiliavir/bitacora/internal/logger"
	"github.com/Tiliavir/bitacora/internal/model"
	"github.com/Tiliavir/bitacora/internal/prefs"
)

// Preferences supplies stored default field values for new drafts.
type Preferences interface {
	Get(key string) (string, bool)
}

// Reducer computes state transitions.
type Reducer struct {
	prefs Preferences
	now   func() time.Time
}

// NewReducer returns a Reducer reading draft defaults from p. p may be nil.
func NewReducer(p Preferences) *Reducer {
	return &Reducer{prefs: p, now: time.Now}
}

// Defaults is the state of a freshly created store.
func (r *Reducer) Defaults() State {
	return State{
		Loading:         false,
		Date:            r.now(),
		SelectedEventID: "",
		Events:          []model.Event{},
	}
}

// Reduce returns the state after applying a to s. s is never modified.
func (r *Reducer) Reduce(s State, a Action) State {
	switch a := a.(type) {
	case IsLoading:
		s.Loading = a.Value
		return s

	case SetDate:
		s.Date = a.Value
		return s

	case SetEvents:
		events := make([]model.Event, len(a.Events))
		for i, e := range a.Events {
			e.HasChanged = false
			events[i] = e
		}
		s.Events = events
		return s

	case CreateNewEvent:
		draft := model.Event{
			ID:       model.NewEventID,
			Editable: true,
			Project:  r.pref(prefs.KeyDefaultProject),
			Activity: r.pref(prefs.KeyDefaultActivity),
		}
		draft = a.Options.Apply(draft)
		draft.HasChanged = true

		events := make([]model.Event, 0, len(s.Events)+1)
		for _, e := range s.Events {
			if e.ID != model.NewEventID {
				events = append(events, e)
			}
		}
		s.Events = append(events, draft)
		return s

	case DeleteEvent:
		events := make([]model.Event, 0, len(s.Events))
		for _, e := range s.Events {
			if e.ID != a.EventID {
				events = append(events, e)
			}
		}
		s.Events = events
		return s

	case UpdateEvent:
		i := s.indexOf(a.EventID)
		if i == -1 {
			logger.Warn("update of unknown event ignored", "event_id", a.EventID)
			return s
		}
		events := make([]model.Event, len(s.Events))
		copy(events, s.Events)
		updated := a.Data.Apply(events[i])
		updated.HasChanged = true
		if a.Data.HasChanged != nil {
			updated.HasChanged = *a.Data.HasChanged
		}
		events[i] = updated
		s.Events = events
		return s

	case SetSelectedEventID:
		s.SelectedEventID = a.Value
		return s

	default:
		return r.withDefaults(s)
	}
}

// withDefaults fills the zero fields of s that have a non-zero default.
func (r *Reducer) withDefaults(s State) State {
	if s.Date.IsZero() {
		s.Date = r.now()
	}
	if s.Events == nil {
		s.Events = []model.Event{}
	}
	return s
}

func (r *Reducer) pref(key string) string {
	if r.prefs == nil {
		return ""
	}
	v, _ := r.prefs.Get(key)
	return v
}
