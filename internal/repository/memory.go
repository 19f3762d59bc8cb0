package repository

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	session   Session
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// MemoryStore is an in-process SessionStore for tests and single-node use.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]memoryEntry
	ttl  time.Duration
	now  func() time.Time
}

// NewMemoryStore creates an empty store. A ttl of zero keeps sessions forever.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		data: make(map[string]memoryEntry),
		ttl:  ttl,
		now:  time.Now,
	}
}

// Save stores a copy of s.
func (m *MemoryStore) Save(ctx context.Context, s *Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.sweep(now)
	prepareNew(s, now)
	m.data[s.ID] = memoryEntry{session: cloneSession(*s), expiresAt: m.expiry(now)}
	return nil
}

// Get returns a copy of the stored session.
func (m *MemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	entry, ok := m.live(id)
	m.mu.RUnlock()
	if !ok {
		m.evict(id)
		return nil, ErrSessionNotFound
	}
	s := cloneSession(entry.session)
	return &s, nil
}

// Update replaces a live session and restarts its expiry.
func (m *MemoryStore) Update(ctx context.Context, s *Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.live(s.ID)
	if !ok {
		delete(m.data, s.ID)
		return ErrSessionNotFound
	}
	now := m.now()
	s.CreatedAt = entry.session.CreatedAt
	s.UpdatedAt = now
	m.data[s.ID] = memoryEntry{session: cloneSession(*s), expiresAt: m.expiry(now)}
	return nil
}

// Len reports the number of stored sessions, including expired ones not
// yet evicted.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

func (m *MemoryStore) live(id string) (memoryEntry, bool) {
	entry, ok := m.data[id]
	if !ok || entry.expired(m.now()) {
		return memoryEntry{}, false
	}
	return entry, true
}

// evict removes id if it is still expired once the write lock is held.
func (m *MemoryStore) evict(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if entry, ok := m.data[id]; ok && entry.expired(m.now()) {
		delete(m.data, id)
	}
}

// sweep drops every expired entry. Callers hold the write lock.
func (m *MemoryStore) sweep(now time.Time) {
	if m.ttl <= 0 {
		return
	}
	for id, entry := range m.data {
		if entry.expired(now) {
			delete(m.data, id)
		}
	}
}

func (m *MemoryStore) expiry(now time.Time) time.Time {
	if m.ttl <= 0 {
		return time.Time{}
	}
	return now.Add(m.ttl)
}
