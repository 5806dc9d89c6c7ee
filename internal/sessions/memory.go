package sessions

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps sessions in process memory. It is the default backing
// for single-instance deployments; expired entries are dropped lazily on
// access rather than by a background sweeper.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	session   Session
	expiresAt time.Time
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

// Get returns the session for token, or (nil, nil) when absent or expired.
func (s *MemoryStore) Get(ctx context.Context, token string) (*Session, error) {
	s.mu.RLock()
	entry, ok := s.entries[token]
	s.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	if time.Now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.entries, token)
		s.mu.Unlock()
		return nil, nil
	}

	session := entry.session.clone()
	return &session, nil
}

// Set stores a copy of the session under token for ttl.
func (s *MemoryStore) Set(ctx context.Context, token string, session *Session, ttl time.Duration) error {
	if ttl <= 0 {
		return s.Clear(ctx, token)
	}

	s.mu.Lock()
	s.entries[token] = memoryEntry{
		session:   session.clone(),
		expiresAt: time.Now().Add(ttl),
	}
	s.mu.Unlock()
	return nil
}

// Clear removes the session for token. Clearing an absent token succeeds.
func (s *MemoryStore) Clear(ctx context.Context, token string) error {
	s.mu.Lock()
	delete(s.entries, token)
	s.mu.Unlock()
	return nil
}
