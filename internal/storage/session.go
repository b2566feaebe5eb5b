package storage

import (
	"errors"
	"sync"

	"github.com/aliskhannn/dark-horizons-bot/internal/domain/entities"
)

var (
	ErrSessionNotFound = errors.New("quiz session not found")
	ErrSessionExists   = errors.New("quiz session already exists")
)

// sessionEntry guards one session. The store map lock is only held to find or
// insert entries; mutations happen under the entry lock so that unrelated keys
// never wait on each other.
type sessionEntry struct {
	mu      sync.Mutex
	session entities.QuizSession
	removed bool
}

// SessionStore provides in-memory storage for quiz sessions keyed by user and topic.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[entities.SessionKey]*sessionEntry
}

// NewSessionStore creates a new SessionStore.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[entities.SessionKey]*sessionEntry),
	}
}

// Get returns a copy of the session stored under key.
func (s *SessionStore) Get(key entities.SessionKey) (entities.QuizSession, error) {
	e := s.lookup(key)
	if e == nil {
		return entities.QuizSession{}, ErrSessionNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.removed {
		return entities.QuizSession{}, ErrSessionNotFound
	}
	return e.session, nil
}

// Create stores a fresh session for key. It fails with ErrSessionExists if
// the key already has a session.
func (s *SessionStore) Create(key entities.SessionKey) (entities.QuizSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[key]; ok {
		return entities.QuizSession{}, ErrSessionExists
	}

	e := &sessionEntry{session: *entities.NewQuizSession(key.UserID, key.Topic)}
	s.sessions[key] = e

	return e.session, nil
}

// Update applies fn to the session stored under key while holding the key lock.
// Changes made by fn are written back only if it returns no error. When fn
// reports done the session is deleted in the same critical section.
func (s *SessionStore) Update(key entities.SessionKey, fn func(session *entities.QuizSession) (done bool, err error)) error {
	e := s.lookup(key)
	if e == nil {
		return ErrSessionNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.removed {
		return ErrSessionNotFound
	}

	updated := e.session
	done, err := fn(&updated)
	if err != nil {
		return err
	}
	e.session = updated

	if done {
		s.drop(key, e)
	}

	return nil
}

// Remove deletes the session stored under key. Removing a missing session is a no-op.
func (s *SessionStore) Remove(key entities.SessionKey) {
	e := s.lookup(key)
	if e == nil {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.removed {
		s.drop(key, e)
	}
}

// Len returns the number of active sessions.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *SessionStore) lookup(key entities.SessionKey) *sessionEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[key]
}

// drop must be called with e.mu held.
func (s *SessionStore) drop(key entities.SessionKey, e *sessionEntry) {
	e.removed = true

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sessions[key] == e {
		delete(s.sessions, key)
	}
}
