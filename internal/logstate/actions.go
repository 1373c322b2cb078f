package logstate

import (
	"context"
	"time"

	"github.com/Tiliavir/bitacora/internal/logger"
	"github.com/Tiliavir/bitacora/internal/model"
	"github.com/Tiliavir/bitacora/internal/timecalc"
	"github.com/Tiliavir/bitacora/internal/toast"
)

// Toast texts shown after server round trips.
const (
	MsgDeleted     = "Eliminado de tu bitácora"
	MsgDeleteError = "Ocurrió un error eliminando de tu bitácora"
	MsgCreated     = "Agregado a tu bitácora con éxito"
	MsgSaveError   = "Ocurrió un error guardando en tu bitácora"
	MsgUpdated     = "Entrada actualizada"
)

// EventsAPI is the daily_tasks server as seen by the actions.
type EventsAPI interface {
	ExtractLogData(ctx context.Context, from, to string) ([]model.Event, error)
	CreateEvent(ctx context.Context, e model.Event) error
	UpdateEvent(ctx context.Context, id string, patch model.EventPatch) error
	DeleteEvent(ctx context.Context, id string) error
}

// Options tunes how Actions computes and formats the week bounds.
type Options struct {
	WeekStart  time.Weekday
	DateFormat string
}

// Actions runs the asynchronous operations of the week view against a Store.
type Actions struct {
	store  *Store
	api    EventsAPI
	toasts toast.Notifier
	opts   Options
}

// NewActions wires the store to its collaborators. A zero Options means
// Monday weeks and YYYY-MM-DD bounds.
func NewActions(store *Store, api EventsAPI, toasts toast.Notifier, opts Options) *Actions {
	if opts.DateFormat == "" {
		opts.DateFormat = "2006-01-02"
	}
	return &Actions{store: store, api: api, toasts: toasts, opts: opts}
}

// Store returns the store the actions dispatch to.
func (a *Actions) Store() *Store {
	return a.store
}

// Week returns the bounds of the week containing date.
func (a *Actions) Week(date time.Time) (time.Time, time.Time) {
	return timecalc.WeekRangeFrom(date, a.opts.WeekStart)
}

// loading sets the loading flag and returns the function that clears it.
func (a *Actions) loading() func() {
	a.store.Dispatch(IsLoading{Value: true})
	return func() { a.store.Dispatch(IsLoading{Value: false}) }
}

// SetDate moves the view to date and reloads that week.
func (a *Actions) SetDate(ctx context.Context, date time.Time) error {
	a.store.Dispatch(SetDate{Value: date})
	from, to := a.Week(date)
	return a.FetchEvents(ctx, from, to, true)
}

// DeleteEvent deletes an event on the server and then locally. The draft is
// only discarded locally.
func (a *Actions) DeleteEvent(ctx context.Context, eventID string) error {
	if eventID == model.NewEventID {
		a.store.Dispatch(DeleteEvent{EventID: eventID})
		return nil
	}

	done := a.loading()
	defer done()

	if err := a.api.DeleteEvent(ctx, eventID); err != nil {
		logger.Warn("delete failed", "event_id", eventID, "error", err)
		a.toasts.Push(MsgDeleteError, toast.Danger)
		return err
	}
	a.store.Dispatch(DeleteEvent{EventID: eventID})
	a.toasts.Push(MsgDeleted, toast.Success)
	return nil
}

// UpdateEvent buffers a local edit. Nothing is sent to the server.
func (a *Actions) UpdateEvent(eventID string, data model.EventPatch) {
	a.store.Dispatch(UpdateEvent{EventID: eventID, Data: data})
}

// FetchEvents loads the events in [from, to]. A failed load leaves the list
// as it is and pushes no toast; the error is still returned.
func (a *Actions) FetchEvents(ctx context.Context, from, to time.Time, shouldClear bool) error {
	done := a.loading()
	defer done()

	if shouldClear {
		a.store.Dispatch(SetEvents{Events: []model.Event{}})
	}

	events, err := a.api.ExtractLogData(ctx, from.Format(a.opts.DateFormat), to.Format(a.opts.DateFormat))
	if err != nil {
		logger.Debug("fetch failed", "from", from, "to", to, "error", err)
		return err
	}
	a.store.Dispatch(SetEvents{Events: events})
	return nil
}

// CreateNewEvent starts a draft and selects it.
func (a *Actions) CreateNewEvent(options model.EventPatch) {
	a.store.Dispatch(CreateNewEvent{Options: options})
	a.store.Dispatch(SetSelectedEventID{Value: model.NewEventID})
}

// SaveNewEvent creates data on the server, drops the local draft and quietly
// refreshes the current week.
func (a *Actions) SaveNewEvent(ctx context.Context, data model.Event) error {
	a.store.Dispatch(IsLoading{Value: true})

	if err := a.api.CreateEvent(ctx, data); err != nil {
		logger.Warn("create failed", "error", err)
		a.toasts.Push(MsgSaveError, toast.Danger)
		a.store.Dispatch(IsLoading{Value: false})
		return err
	}

	// Remove the draft by its id so it is gone even if the refresh fails.
	a.store.Dispatch(DeleteEvent{EventID: model.NewEventID})
	a.toasts.Push(MsgCreated, toast.Success)

	// The refresh clears the loading flag on both of its paths.
	from, to := a.Week(a.store.State().Date)
	if err := a.FetchEvents(ctx, from, to, false); err != nil {
		logger.Debug("refresh after create failed", "error", err)
	}
	return nil
}

// SaveEvent sends data for an existing event and marks it as saved.
func (a *Actions) SaveEvent(ctx context.Context, eventID string, data model.EventPatch) error {
	done := a.loading()
	defer done()

	if err := a.api.UpdateEvent(ctx, eventID, data); err != nil {
		logger.Warn("save failed", "event_id", eventID, "error", err)
		a.toasts.Push(MsgSaveError, toast.Danger)
		return err
	}
	a.store.Dispatch(UpdateEvent{EventID: eventID, Data: model.EventPatch{HasChanged: model.Bool(false)}})
	a.toasts.Push(MsgUpdated, toast.Success)
	return nil
}

// SetSelectedEventID focuses an event.
func (a *Actions) SetSelectedEventID(id string) {
	a.store.Dispatch(SetSelectedEventID{Value: id})
}
