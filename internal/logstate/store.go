package logstate

import (
	"sync"

	"github.com/Tiliavir/bitacora/internal/logger"
)

// Listener observes every dispatched action together with the state it produced.
type Listener func(Action, State)

// Store owns the current State. It is safe for concurrent use; each
// dispatch is applied atomically.
type Store struct {
	mu        sync.Mutex
	reducer   *Reducer
	state     State
	listeners map[int]Listener
	nextID    int
}

// NewStore returns a store initialised with the reducer's defaults.
func NewStore(r *Reducer) *Store {
	return &Store{
		reducer:   r,
		state:     r.Defaults(),
		listeners: map[int]Listener{},
	}
}

// Dispatch applies a and notifies listeners with the resulting state.
func (s *Store) Dispatch(a Action) {
	s.mu.Lock()
	next := s.reducer.Reduce(s.state, a)
	s.state = next
	listeners := make([]Listener, 0, len(s.listeners))
	for id := 0; id < s.nextID; id++ {
		if l, ok := s.listeners[id]; ok {
			listeners = append(listeners, l)
		}
	}
	s.mu.Unlock()

	logger.Debug("dispatch", "action", Name(a), "loading", next.Loading, "events", len(next.Events))

	for _, l := range listeners {
		l(a, next.clone())
	}
}

// State returns a copy of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Subscribe registers l and returns a function that removes it.
func (s *Store) Subscribe(l Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}
