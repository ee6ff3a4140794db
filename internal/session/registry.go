// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Snapshot is everything a session carries between key presses: the state
// record and the expression buffer in wire form.
type Snapshot struct {
	ID         string    `json:"id"`
	State      State     `json:"state"`
	Expression []string  `json:"expression"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (s Snapshot) clone() Snapshot {
	s.Expression = append([]string(nil), s.Expression...)
	return s
}

// Session is one calculator session. Its snapshot is guarded by its own
// lock, so sessions never contend with each other.
type Session struct {
	mu   sync.Mutex
	snap Snapshot
}

// ID returns the session id.
func (s *Session) ID() string {
	return s.snap.ID
}

// Snapshot returns a copy of the session contents.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.clone()
}

// Update runs fn with exclusive access to the session. Changes are kept
// only when fn returns nil.
func (s *Session) Update(fn func(*Snapshot) error) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	work := s.snap.clone()
	if err := fn(&work); err != nil {
		return s.snap.clone(), err
	}
	work.ID = s.snap.ID
	work.UpdatedAt = time.Now().UTC()
	s.snap = work
	return s.snap.clone(), nil
}

// Registry is a thread-safe set of sessions keyed by id.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
	}
}

// Put installs snap as a session, replacing any session with the same id.
// An empty id is assigned a fresh one.
func (r *Registry) Put(snap Snapshot) *Session {
	if snap.ID == "" {
		snap.ID = uuid.NewString()
	}
	if snap.UpdatedAt.IsZero() {
		snap.UpdatedAt = time.Now().UTC()
	}
	s := &Session{snap: snap.clone()}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[snap.ID] = s
	return s
}

// Adopt installs snap unless a session with its id is already live, and
// returns the live session.
func (r *Registry) Adopt(snap Snapshot) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[snap.ID]; ok {
		return s
	}
	s := &Session{snap: snap.clone()}
	r.sessions[snap.ID] = s
	return s
}

// Get retrieves a session by id.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Delete removes a session.
func (r *Registry) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}
