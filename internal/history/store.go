package history

import (
	"sync"

	"github.com/quizgen/quizgen-service/internal/models"
)

// Store is the in-memory history of completed sessions, most-recent-first.
// Entries are immutable snapshots: only completed sessions are added, and
// nothing is ever removed or rewritten. The store lives for the process
// lifetime only.
type Store struct {
	mu       sync.RWMutex
	sessions []*models.QuizSession
	byID     map[string]*models.QuizSession
}

// NewStore creates an empty history store.
func NewStore() *Store {
	return &Store{
		byID: make(map[string]*models.QuizSession),
	}
}

// Prepend adds a completed session to the front of the history.
func (s *Store) Prepend(session *models.QuizSession) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions = append([]*models.QuizSession{session}, s.sessions...)
	s.byID[session.ID] = session
}

// List returns the stored sessions, most-recent-first. The returned slice is
// a copy; the sessions themselves are shared immutable snapshots.
func (s *Store) List() []*models.QuizSession {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]*models.QuizSession(nil), s.sessions...)
}

// Get looks up a stored session by id.
func (s *Store) Get(id string) (*models.QuizSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.byID[id]
	return session, ok
}

// Len returns the number of stored sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sessions)
}
