package repository

import (
	"sync"

	"smartchef/internal/models"
)

// MemoryStaging keeps sessions whose durable write has not landed yet.
// Safe for concurrent access. Entries are removed once the durable store
// confirms the write, so the map stays small.
type MemoryStaging struct {
	mu       sync.RWMutex
	sessions map[string]models.CookingSession
}

var _ Staging = (*MemoryStaging)(nil)

func NewMemoryStaging() *MemoryStaging {
	return &MemoryStaging{sessions: make(map[string]models.CookingSession)}
}

// Put stages a session, overwriting any previous copy.
func (m *MemoryStaging) Put(session models.CookingSession) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.ID] = session
}

// Get returns a staged session by id.
func (m *MemoryStaging) Get(id string) (*models.CookingSession, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	return &s, true
}

// Remove drops a staged session once it is durably persisted.
func (m *MemoryStaging) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}
