package contextstore

import (
	"context"
	"sync"
	"time"

	"github.com/claro-labs/claro/internal/domain"
)

// Memory is the in-process context store. With ttl == 0 entries live for
// the lifetime of the process; otherwise stale entries are evicted lazily
// on read.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

type memoryEntry struct {
	text     string
	storedAt time.Time
}

// NewMemory creates an in-process store with an optional TTL.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Put implements Store.
func (m *Memory) Put(_ context.Context, userID string, d domain.ContextDomain, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key("", userID, d)] = memoryEntry{text: text, storedAt: m.now()}
	return nil
}

// Get implements Store.
func (m *Memory) Get(_ context.Context, userID string, d domain.ContextDomain) (string, bool, error) {
	k := key("", userID, d)

	m.mu.RLock()
	e, ok := m.entries[k]
	m.mu.RUnlock()
	if !ok {
		return "", false, nil
	}

	if m.ttl > 0 && m.now().Sub(e.storedAt) > m.ttl {
		m.mu.Lock()
		// Re-check under the write lock: a concurrent Put may have
		// refreshed the entry, in which case it survives.
		cur, ok := m.entries[k]
		if ok && m.now().Sub(cur.storedAt) > m.ttl {
			delete(m.entries, k)
			ok = false
		}
		m.mu.Unlock()
		if !ok {
			return "", false, nil
		}
		return cur.text, true, nil
	}
	return e.text, true, nil
}
