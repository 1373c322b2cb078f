package logstate_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/bitacora/internal/logstate"
	"github.com/Tiliavir/bitacora/internal/model"
	"github.com/Tiliavir/bitacora/internal/toast"
)

type call struct {
	op    string
	id    string
	from  string
	to    string
	event model.Event
	patch model.EventPatch
}

type fakeAPI struct {
	calls     []call
	events    []model.Event
	fetchErr  error
	createErr error
	updateErr error
	deleteErr error
}

func (f *fakeAPI) ExtractLogData(_ context.Context, from, to string) ([]model.Event, error) {
	f.calls = append(f.calls, call{op: "extract", from: from, to: to})
	return f.events, f.fetchErr
}

func (f *fakeAPI) CreateEvent(_ context.Context, e model.Event) error {
	f.calls = append(f.calls, call{op: "create", event: e})
	return f.createErr
}

func (f *fakeAPI) UpdateEvent(_ context.Context, id string, patch model.EventPatch) error {
	f.calls = append(f.calls, call{op: "update", id: id, patch: patch})
	return f.updateErr
}

func (f *fakeAPI) DeleteEvent(_ context.Context, id string) error {
	f.calls = append(f.calls, call{op: "delete", id: id})
	return f.deleteErr
}

type harness struct {
	api     *fakeAPI
	toasts  *toast.Recorder
	actions *logstate.Actions
	store   *logstate.Store
	log     []logstate.Action
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{api: &fakeAPI{}, toasts: &toast.Recorder{}}
	h.store = logstate.NewStore(logstate.NewReducer(nil))
	h.actions = logstate.NewActions(h.store, h.api, h.toasts, logstate.Options{WeekStart: time.Monday})
	h.store.Subscribe(func(a logstate.Action, _ logstate.State) {
		h.log = append(h.log, a)
	})
	return h
}

func (h *harness) seed(events ...model.Event) {
	h.store.Dispatch(logstate.SetEvents{Events: events})
	h.log = nil
}

func TestDeleteDraftIsLocalOnly(t *testing.T) {
	h := newHarness(t)
	h.seed(model.Event{ID: "1"})
	h.actions.CreateNewEvent(model.EventPatch{})
	h.log = nil

	require.NoError(t, h.actions.DeleteEvent(context.Background(), model.NewEventID))

	assert.Equal(t, []logstate.Action{logstate.DeleteEvent{EventID: model.NewEventID}}, h.log)
	assert.Empty(t, h.api.calls)
	assert.Empty(t, h.toasts.Toasts())
	assert.Equal(t, []model.Event{{ID: "1"}}, h.store.State().Events)
}

func TestDeleteEventSuccess(t *testing.T) {
	h := newHarness(t)
	h.seed(model.Event{ID: "1"}, model.Event{ID: "2"})

	require.NoError(t, h.actions.DeleteEvent(context.Background(), "1"))

	assert.Equal(t, []call{{op: "delete", id: "1"}}, h.api.calls)
	assert.Equal(t, []logstate.Action{
		logstate.IsLoading{Value: true},
		logstate.DeleteEvent{EventID: "1"},
		logstate.IsLoading{Value: false},
	}, h.log)
	assert.Equal(t, []toast.Toast{{Message: logstate.MsgDeleted, Level: toast.Success}}, h.toasts.Toasts())
	assert.Equal(t, []model.Event{{ID: "2"}}, h.store.State().Events)
}

func TestDeleteEventFailure(t *testing.T) {
	h := newHarness(t)
	h.seed(model.Event{ID: "1"})
	h.api.deleteErr = errors.New("boom")

	err := h.actions.DeleteEvent(context.Background(), "1")

	assert.EqualError(t, err, "boom")
	assert.Equal(t, []logstate.Action{
		logstate.IsLoading{Value: true},
		logstate.IsLoading{Value: false},
	}, h.log)
	assert.Equal(t, []toast.Toast{{Message: logstate.MsgDeleteError, Level: toast.Danger}}, h.toasts.Toasts())
	assert.Equal(t, []model.Event{{ID: "1"}}, h.store.State().Events)
	assert.False(t, h.store.State().Loading)
}

func TestUpdateEventIsLocalOnly(t *testing.T) {
	h := newHarness(t)
	h.seed(model.Event{ID: "1", Title: "X"})

	h.actions.UpdateEvent("1", model.EventPatch{Title: model.String("Y")})

	assert.Empty(t, h.api.calls)
	ev, ok := h.store.State().Event("1")
	require.True(t, ok)
	assert.Equal(t, "Y", ev.Title)
	assert.True(t, ev.HasChanged)
}

func TestFetchEventsClearsThenLoads(t *testing.T) {
	h := newHarness(t)
	h.seed(model.Event{ID: "old"})
	h.api.events = []model.Event{{ID: "1", Title: "X"}}

	from := time.Date(2026, 2, 23, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 1, 23, 59, 59, 0, time.UTC)
	require.NoError(t, h.actions.FetchEvents(context.Background(), from, to, true))

	assert.Equal(t, []call{{op: "extract", from: "2026-02-23", to: "2026-03-01"}}, h.api.calls)
	assert.Equal(t, []logstate.Action{
		logstate.IsLoading{Value: true},
		logstate.SetEvents{Events: []model.Event{}},
		logstate.SetEvents{Events: []model.Event{{ID: "1", Title: "X"}}},
		logstate.IsLoading{Value: false},
	}, h.log)
	assert.Equal(t, []model.Event{{ID: "1", Title: "X"}}, h.store.State().Events)
}

func TestFetchEventsFailureIsSilent(t *testing.T) {
	h := newHarness(t)
	h.seed(model.Event{ID: "old"})
	h.api.fetchErr = errors.New("offline")

	err := h.actions.FetchEvents(context.Background(), time.Now(), time.Now(), false)

	assert.Error(t, err)
	assert.Empty(t, h.toasts.Toasts())
	assert.Equal(t, []model.Event{{ID: "old"}}, h.store.State().Events)
	assert.False(t, h.store.State().Loading)
}

func TestSetDateFetchesWeek(t *testing.T) {
	h := newHarness(t)
	date := time.Date(2026, 2, 27, 10, 0, 0, 0, time.UTC)

	require.NoError(t, h.actions.SetDate(context.Background(), date))

	assert.Equal(t, date, h.store.State().Date)
	assert.Equal(t, []call{{op: "extract", from: "2026-02-23", to: "2026-03-01"}}, h.api.calls)
	require.NotEmpty(t, h.log)
	assert.Equal(t, logstate.SetDate{Value: date}, h.log[0])
}

func TestSetDateSundayWeeks(t *testing.T) {
	h := newHarness(t)
	h.actions = logstate.NewActions(h.store, h.api, h.toasts, logstate.Options{WeekStart: time.Sunday, DateFormat: "02/01/2006"})

	require.NoError(t, h.actions.SetDate(context.Background(), time.Date(2026, 2, 27, 10, 0, 0, 0, time.UTC)))

	assert.Equal(t, []call{{op: "extract", from: "22/02/2026", to: "28/02/2026"}}, h.api.calls)
}

func TestCreateNewEventSelectsDraft(t *testing.T) {
	h := newHarness(t)

	h.actions.CreateNewEvent(model.EventPatch{Title: model.String("A")})

	assert.Equal(t, []logstate.Action{
		logstate.CreateNewEvent{Options: model.EventPatch{Title: model.String("A")}},
		logstate.SetSelectedEventID{Value: model.NewEventID},
	}, h.log)
	st := h.store.State()
	assert.Equal(t, model.NewEventID, st.SelectedEventID)
	draft, ok := st.Draft()
	require.True(t, ok)
	assert.Equal(t, "A", draft.Title)
}

func TestSaveNewEventSuccess(t *testing.T) {
	h := newHarness(t)
	date := time.Date(2026, 2, 27, 10, 0, 0, 0, time.UTC)
	h.store.Dispatch(logstate.SetDate{Value: date})
	h.seed(model.Event{ID: "1"})
	h.actions.CreateNewEvent(model.EventPatch{Title: model.String("A")})
	draft, _ := h.store.State().Draft()
	h.log = nil
	h.api.events = []model.Event{{ID: "1"}, {ID: "2", Title: "A"}}

	require.NoError(t, h.actions.SaveNewEvent(context.Background(), draft))

	assert.Equal(t, []call{
		{op: "create", event: draft},
		{op: "extract", from: "2026-02-23", to: "2026-03-01"},
	}, h.api.calls)
	assert.Equal(t, []logstate.Action{
		logstate.IsLoading{Value: true},
		logstate.DeleteEvent{EventID: model.NewEventID},
		logstate.IsLoading{Value: true},
		logstate.SetEvents{Events: h.api.events},
		logstate.IsLoading{Value: false},
	}, h.log, "the refresh keeps the list visible")
	assert.Equal(t, []toast.Toast{{Message: logstate.MsgCreated, Level: toast.Success}}, h.toasts.Toasts())
	assert.Equal(t, h.api.events, h.store.State().Events)
	assert.False(t, h.store.State().Loading)
}

func TestSaveNewEventRefreshFailureStillSucceeds(t *testing.T) {
	h := newHarness(t)
	h.actions.CreateNewEvent(model.EventPatch{})
	draft, _ := h.store.State().Draft()
	h.api.fetchErr = errors.New("offline")

	require.NoError(t, h.actions.SaveNewEvent(context.Background(), draft))

	_, hasDraft := h.store.State().Draft()
	assert.False(t, hasDraft)
	assert.False(t, h.store.State().Loading)
}

func TestSaveNewEventFailure(t *testing.T) {
	h := newHarness(t)
	h.actions.CreateNewEvent(model.EventPatch{Title: model.String("A")})
	draft, _ := h.store.State().Draft()
	h.log = nil
	h.api.createErr = errors.New("422")

	err := h.actions.SaveNewEvent(context.Background(), draft)

	assert.Error(t, err)
	assert.Equal(t, []logstate.Action{
		logstate.IsLoading{Value: true},
		logstate.IsLoading{Value: false},
	}, h.log)
	assert.Equal(t, []toast.Toast{{Message: logstate.MsgSaveError, Level: toast.Danger}}, h.toasts.Toasts())
	_, hasDraft := h.store.State().Draft()
	assert.True(t, hasDraft, "the draft survives a failed save")
}

func TestSaveEventSuccess(t *testing.T) {
	h := newHarness(t)
	h.seed(model.Event{ID: "1", Title: "X"})
	h.actions.UpdateEvent("1", model.EventPatch{Title: model.String("Y")})
	h.log = nil

	patch := model.EventPatch{Title: model.String("Y")}
	require.NoError(t, h.actions.SaveEvent(context.Background(), "1", patch))

	assert.Equal(t, []call{{op: "update", id: "1", patch: patch}}, h.api.calls)
	assert.Equal(t, []logstate.Action{
		logstate.IsLoading{Value: true},
		logstate.UpdateEvent{EventID: "1", Data: model.EventPatch{HasChanged: model.Bool(false)}},
		logstate.IsLoading{Value: false},
	}, h.log)
	assert.Equal(t, []toast.Toast{{Message: logstate.MsgUpdated, Level: toast.Success}}, h.toasts.Toasts())
	ev, _ := h.store.State().Event("1")
	assert.Equal(t, "Y", ev.Title)
	assert.False(t, ev.HasChanged)
}

func TestSaveEventFailure(t *testing.T) {
	h := newHarness(t)
	h.seed(model.Event{ID: "1"})
	h.actions.UpdateEvent("1", model.EventPatch{Title: model.String("Y")})
	h.api.updateErr = errors.New("500")

	err := h.actions.SaveEvent(context.Background(), "1", model.EventPatch{Title: model.String("Y")})

	assert.Error(t, err)
	assert.Equal(t, []toast.Toast{{Message: logstate.MsgSaveError, Level: toast.Danger}}, h.toasts.Toasts())
	ev, _ := h.store.State().Event("1")
	assert.True(t, ev.HasChanged, "edits stay unsaved")
	assert.False(t, h.store.State().Loading)
}

func TestSetSelectedEventID(t *testing.T) {
	h := newHarness(t)

	h.actions.SetSelectedEventID("9")

	assert.Equal(t, []logstate.Action{logstate.SetSelectedEventID{Value: "9"}}, h.log)
	assert.Equal(t, "9", h.store.State().SelectedEventID)
}
