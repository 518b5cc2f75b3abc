package memory

import (
	"sync"

	"github.com/stewartburton/brainblitz/internal/game"
)

// SessionStore is an in-memory implementation of app.SessionStore, one
// session per player.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*game.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*game.Session),
	}
}

func (s *SessionStore) GetOrCreate(userID string) *game.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session, ok := s.sessions[userID]; ok {
		return session
	}
	session := game.NewSession(nil)
	s.sessions[userID] = session
	return session
}

func (s *SessionStore) Get(userID string) (*game.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[userID]
	return session, ok
}

func (s *SessionStore) Delete(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[userID]
	if !ok {
		return
	}
	session.Reset()
	delete(s.sessions, userID)
}
