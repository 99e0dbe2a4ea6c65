package wizard

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store keeps wizard sessions in memory. A booking draft lives only for
// the duration of one session; abandoned sessions are swept by the cron
// job. Every access runs under the store lock and callers only ever see
// snapshots, so concurrent requests for the same wizard cannot race on
// session state.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Start creates a session and returns a snapshot of it.
func (st *Store) Start(authenticated bool) Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	s := New(uuid.NewString(), authenticated)
	st.sessions[s.ID] = s
	return *s
}

// Get returns a snapshot of the session, or false when it expired or
// never existed.
func (st *Store) Get(id string) (Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	if !ok {
		return Session{}, false
	}
	return *s, true
}

// Update runs fn against the live session under the store lock and
// returns the resulting snapshot. fn is the only way to mutate a stored
// session.
func (st *Store) Update(id string, fn func(*Session) error) (Session, bool, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	if !ok {
		return Session{}, false, nil
	}
	err := fn(s)
	return *s, true, err
}

// Delete drops a session, e.g. after confirmation plus a grace period or
// when the customer restarts.
func (st *Store) Delete(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}

// Sweep removes sessions idle for longer than maxAge and returns how many
// were dropped.
func (st *Store) Sweep(maxAge time.Duration) int {
	st.mu.Lock()
	defer st.mu.Unlock()
	cutoff := time.Now().UTC().Add(-maxAge)
	removed := 0
	for id, s := range st.sessions {
		if s.UpdatedAt.Before(cutoff) {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}
