package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/paperdesk/paperdesk/internal/domain"
)

// MemoryStore keeps sessions in process memory: the device-local mode.
// Everything is forgotten on restart, which is exactly the vote-guard
// lifetime the product defines.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*memorySession
}

type memorySession struct {
	session *Session
	voted   map[domain.VoteKind]map[string]bool // kind -> paper id -> voted
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*memorySession),
	}
}

func (s *MemoryStore) Create(_ context.Context, username string) (*Session, error) {
	if err := ValidateUsername(username); err != nil {
		return nil, err
	}

	sess := &Session{
		ID:        uuid.NewString(),
		Username:  username,
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = &memorySession{
		session: sess,
		voted: map[domain.VoteKind]map[string]bool{
			domain.VoteUp:   {},
			domain.VoteDown: {},
		},
	}
	return sess, nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ms, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return ms.session, nil
}

func (s *MemoryStore) HasVoted(_ context.Context, sessionID, paperID string, kind domain.VoteKind) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ms, ok := s.sessions[sessionID]
	if !ok {
		return false, ErrNotFound
	}
	return ms.voted[kind][paperID], nil
}

func (s *MemoryStore) MarkVoted(_ context.Context, sessionID, paperID string, kind domain.VoteKind) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ms, ok := s.sessions[sessionID]
	if !ok {
		return ErrNotFound
	}
	ms.voted[kind][paperID] = true
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}
