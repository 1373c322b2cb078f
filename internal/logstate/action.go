package logstate

import (
	"time"

	"github.com/Tiliavir/bitacora/internal/model"
)

// Action is a state transition command. The set of actions is closed; the
// reducer treats anything it does not recognise like Init.
type Action interface {
	actionName() string
}

// Init fills missing defaults without discarding existing state.
type Init struct{}

// IsLoading sets the loading flag.
type IsLoading struct {
	Value bool
}

// SetDate moves the anchor date of the displayed week.
type SetDate struct {
	Value time.Time
}

// SetEvents replaces the event list with a fresh server copy.
type SetEvents struct {
	Events []model.Event
}

// CreateNewEvent replaces any existing draft with a new one built from Options.
type CreateNewEvent struct {
	Options model.EventPatch
}

// DeleteEvent removes the event with EventID.
type DeleteEvent struct {
	EventID string
}

// UpdateEvent merges Data into the event with EventID.
type UpdateEvent struct {
	EventID string
	Data    model.EventPatch
}

// SetSelectedEventID focuses an event; "" clears the selection.
type SetSelectedEventID struct {
	Value string
}

func (Init) actionName() string               { return "Init" }
func (IsLoading) actionName() string          { return "IsLoading" }
func (SetDate) actionName() string            { return "SetDate" }
func (SetEvents) actionName() string          { return "SetEvents" }
func (CreateNewEvent) actionName() string     { return "CreateNewEvent" }
func (DeleteEvent) actionName() string        { return "DeleteEvent" }
func (UpdateEvent) actionName() string        { return "UpdateEvent" }
func (SetSelectedEventID) actionName() string { return "SetSelectedEventID" }

// Name returns the action's type name, for logging.
func Name(a Action) string {
	if a == nil {
		return "<nil>"
	}
	return a.actionName()
}
