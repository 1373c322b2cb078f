// Package logstate holds the state of the work-log week view and the
// actions that keep it in sync with the daily_tasks server.
//
// State changes only through Store.Dispatch, which applies one Action at a
// time through the Reducer. Reductions never modify the previous State or its
// events; every transition yields fresh values. Actions wraps the network
// round trips: it flips the loading flag, calls the API, dispatches the
// outcome and pushes a toast.
package logstate
