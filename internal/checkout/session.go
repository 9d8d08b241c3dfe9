package checkout

import (
	"context"
	"sync"
)

// SessionStore keeps each user's in-progress checkout wizard between
// requests. Sessions are short-lived and disposable.
type SessionStore interface {
	Get(ctx context.Context, userID string) (*Wizard, bool, error)
	Put(ctx context.Context, userID string, w *Wizard) error
	Delete(ctx context.Context, userID string) error
}

// MemorySessionStore holds checkout sessions in process memory. Suitable for
// a single API instance; multi-instance deploys use the DynamoDB store.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Wizard
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]*Wizard)}
}

func (s *MemorySessionStore) Get(_ context.Context, userID string) (*Wizard, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.sessions[userID]
	return w, ok, nil
}

func (s *MemorySessionStore) Put(_ context.Context, userID string, w *Wizard) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = w
	return nil
}

func (s *MemorySessionStore) Delete(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
	return nil
}
