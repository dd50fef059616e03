package inmem

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/storee/storee"
)

// Interface compliance check.
var _ storee.SessionStore = (*SessionStore)(nil)

// SessionStore is an in-memory [storee.SessionStore].
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]storee.Session
}

// NewSessionStore creates an empty in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]storee.Session)}
}

func (s *SessionStore) CreateSession(_ context.Context, session storee.Session) error {
	if session.ID == "" || session.Owner == "" {
		return fmt.Errorf("session id and owner are required: %w", storee.ErrValidation)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[session.ID]; ok {
		return fmt.Errorf("session %s already exists: %w", session.ID, storee.ErrValidation)
	}
	s.sessions[session.ID] = cloneSession(session)
	return nil
}

func (s *SessionStore) Session(_ context.Context, id, owner string) (storee.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok || session.Owner != owner {
		return storee.Session{}, notFound("session", id)
	}
	return cloneSession(session), nil
}

func (s *SessionStore) UpdateSession(_ context.Context, id, owner string, update storee.SessionUpdate) (storee.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok || session.Owner != owner {
		return storee.Session{}, notFound("session", id)
	}
	if update.Turns != nil {
		session.Turns = append([]storee.Turn(nil), update.Turns...)
	}
	if update.CurrentQuestion != nil {
		session.CurrentQuestion = *update.CurrentQuestion
	}
	if update.Summary != nil {
		session.Summary = *update.Summary
	}
	if update.Status != nil {
		session.Status = *update.Status
	}
	if update.EndedAt != nil {
		session.EndedAt = *update.EndedAt
	}
	if update.LastUpdatedAt != nil {
		session.LastUpdatedAt = *update.LastUpdatedAt
	}
	s.sessions[id] = session
	return cloneSession(session), nil
}

func (s *SessionStore) Sessions(_ context.Context, owner string) ([]storee.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []storee.Session
	for _, session := range s.sessions {
		if session.Owner == owner {
			out = append(out, cloneSession(session))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *SessionStore) DeleteSession(_ context.Context, id, owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok || session.Owner != owner {
		return notFound("session", id)
	}
	delete(s.sessions, id)
	return nil
}

// cloneSession deep-copies the turn slice so callers cannot alias the stored
// value.
func cloneSession(s storee.Session) storee.Session {
	s.Turns = append([]storee.Turn(nil), s.Turns...)
	return s
}
