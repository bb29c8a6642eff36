// ABOUTME: Chat session identifier lifecycle
// ABOUTME: A persisted uuid-v4 groups chat turns into one server-side conversation

package session

import (
	"github.com/google/uuid"

	"github.com/ahermansen/todochat/internal/store"
)

// Manager owns the persisted session identifier.
type Manager struct {
	store *store.Store
}

// New creates a session manager backed by the given store.
func New(s *store.Store) *Manager {
	return &Manager{store: s}
}

// GetOrCreate returns the current session identifier, generating and
// persisting a fresh uuid-v4 when none exists.
func (m *Manager) GetOrCreate() (string, error) {
	id, err := m.store.Get(store.KeySessionUUID)
	if err != nil {
		return "", err
	}
	if id != "" {
		return id, nil
	}

	id = uuid.NewString()
	if err := m.store.Set(store.KeySessionUUID, id); err != nil {
		return "", err
	}
	return id, nil
}

// Update replaces the stored identifier with one the backend returned.
// An empty id is ignored.
func (m *Manager) Update(id string) error {
	if id == "" {
		return nil
	}
	return m.store.Set(store.KeySessionUUID, id)
}

// Clear removes the identifier so the next chat starts a new
// conversation. Called on login, register, and logout.
func (m *Manager) Clear() error {
	return m.store.Delete(store.KeySessionUUID)
}
