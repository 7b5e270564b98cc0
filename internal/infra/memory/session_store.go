package memory

import (
	"context"
	"encoding/json"
	"sync"

	"heart-risk-assistant/internal/domain"
	"heart-risk-assistant/internal/domain/model"
	"heart-risk-assistant/internal/domain/ports/repository"
)

var _ repository.SessionStore = (*SessionStore)(nil)

// SessionStore is the in-process store for dev mode and tests. Sessions
// are copied through JSON on both paths so callers never share memory
// with the store, matching the Redis store's semantics.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string][]byte
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string][]byte)}
}

func (s *SessionStore) Get(ctx context.Context, sessionID string) (*model.AssessmentSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.sessions[sessionID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	var session model.AssessmentSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *SessionStore) Set(ctx context.Context, session *model.AssessmentSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = data
	return nil
}

func (s *SessionStore) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}
