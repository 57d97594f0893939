// Package flow implements the per-user conversation flow controller: it
// interprets an incoming text message either as a new top-level command or as
// the next input of an in-progress multi-step operation.
package flow

import (
	"log/slog"
	"sync"

	"github.com/ymguan3-boop/line-bot-assistant/internal/models"
)

// StateStore maps a user ID to that user's in-progress flow state. States are
// created when a flow starts, replaced on each step, and deleted on
// completion or cancellation; an abandoned state persists until the user's
// next message reaches it.
//
// The store also hands out a per-user lock so concurrent messages from the
// same user serialize their whole read-advance-write cycle instead of racing
// on the state map.
type StateStore struct {
	mu     sync.Mutex
	states map[string]models.ConversationState
	locks  map[string]*sync.Mutex
}

// NewStateStore creates an empty state store.
func NewStateStore() *StateStore {
	return &StateStore{
		states: make(map[string]models.ConversationState),
		locks:  make(map[string]*sync.Mutex),
	}
}

// LockUser acquires the lock serializing message processing for one user and
// returns the corresponding unlock function.
func (s *StateStore) LockUser(userID string) func() {
	s.mu.Lock()
	l, ok := s.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[userID] = l
	}
	s.mu.Unlock()
	l.Lock()
	return l.Unlock
}

// Get returns the user's current flow state, if any.
func (s *StateStore) Get(userID string) (models.ConversationState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.states[userID]
	return st, ok
}

// Set stores the user's flow state, replacing any previous one.
func (s *StateStore) Set(userID string, st models.ConversationState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	slog.Debug("StateStore.Set", "user_id", userID, "action", st.Action, "step", st.Step)
	s.states[userID] = st
}

// Clear removes the user's flow state.
func (s *StateStore) Clear(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	slog.Debug("StateStore.Clear", "user_id", userID)
	delete(s.states, userID)
}
