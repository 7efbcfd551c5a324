package session

import (
	"sync"
	"time"

	"expense-ledger-bot/internal/model"
)

// Store keeps one dialog session per chat. Sessions for different chats are
// fully independent; the map is guarded so handlers for separate chats can
// run concurrently.
type Store struct {
	mu       sync.Mutex
	sessions map[int64]*model.Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[int64]*model.Session)}
}

// Get returns the chat's session if a dialog is in progress.
func (s *Store) Get(chatID int64) (*model.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[chatID]
	return sess, ok
}

// Begin replaces whatever the chat had with a fresh session at the menu.
func (s *Store) Begin(chatID int64) *model.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := &model.Session{State: model.StateMenu, StartedAt: time.Now()}
	s.sessions[chatID] = sess
	return sess
}

// Clear drops the chat's session. Safe to call when none exists.
func (s *Store) Clear(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, chatID)
}
