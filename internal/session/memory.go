package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// MemoryStore keeps sessions in process; it is used when no Redis is configured.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string][]byte
	now      func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string][]byte),
		now:      time.Now,
	}
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.RLock()
	raw, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}

	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	if s.Expired(m.now()) {
		m.mu.Lock()
		delete(m.sessions, id)
		m.mu.Unlock()
		return nil, ErrNotFound
	}
	return &s, nil
}

func (m *MemoryStore) Save(_ context.Context, s *Session) error {
	// stored encoded so callers never share a Data map with the store
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.sessions[s.ID] = raw
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Update(_ context.Context, id string, fn UpdateFunc) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	raw, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	if s.Expired(m.now()) {
		delete(m.sessions, id)
		return nil, ErrNotFound
	}

	if err := fn(&s); err != nil {
		return nil, err
	}
	updated, err := json.Marshal(&s)
	if err != nil {
		return nil, err
	}
	m.sessions[id] = updated
	return &s, nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
	return nil
}
