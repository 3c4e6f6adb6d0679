package sessions

import (
	"context"
	"fmt"
	"sparcel-journey-service/internal/domain"
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"
)

// entry pairs a session with the lock that serializes work on it.
type entry struct {
	mu      sync.Mutex
	session *domain.Session
}

// MemoryStore implements SessionStore in process memory. Sessions expire
// after ttl without activity.
type MemoryStore struct {
	items *cache.Cache
	ttl   time.Duration
}

func NewMemoryStore(ttl, cleanupInterval time.Duration) *MemoryStore {
	return &MemoryStore{
		items: cache.New(ttl, cleanupInterval),
		ttl:   ttl,
	}
}

func (m *MemoryStore) Create(ctx context.Context, s *domain.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := m.items.Add(s.ID, &entry{session: s.Clone()}, m.ttl); err != nil {
		return fmt.Errorf("create session id=%s: %w", s.ID, err)
	}
	return nil
}

func (m *MemoryStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e, err := m.entry(id)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.Clone(), nil
}

// Update runs fn while holding the session's lock. Changes fn makes are kept
// even when it returns an error, so failed steps still record their state.
func (m *MemoryStore) Update(ctx context.Context, id string, fn func(s *domain.Session) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e, err := m.entry(id)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	err = fn(e.session)
	m.items.Set(id, e, m.ttl)
	return err
}

func (m *MemoryStore) entry(id string) (*entry, error) {
	v, ok := m.items.Get(id)
	if !ok {
		return nil, fmt.Errorf("session id=%s: %w", id, domain.ErrSessionNotFound)
	}
	return v.(*entry), nil
}
