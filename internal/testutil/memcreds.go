package testutil

import (
	"sync"

	"todoctl/internal/session"
)

// MemStore is an in-memory session.CredentialStore.
type MemStore struct {
	mu    sync.Mutex
	token string
	set   bool

	// Error injection for testing
	LoadErr  error
	SaveErr  error
	ClearErr error
}

// NewMemStore creates an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{}
}

// NewMemStoreWith creates a MemStore holding token.
func NewMemStoreWith(token string) *MemStore {
	return &MemStore{token: token, set: true}
}

// Load implements session.CredentialStore.
func (m *MemStore) Load() (string, error) {
	if m.LoadErr != nil {
		return "", m.LoadErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.set {
		return "", session.ErrNoCredential
	}
	return m.token, nil
}

// Save implements session.CredentialStore.
func (m *MemStore) Save(token string) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	m.set = true
	return nil
}

// Clear implements session.CredentialStore.
func (m *MemStore) Clear() error {
	if m.ClearErr != nil {
		return m.ClearErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.set = false
	return nil
}

// Has reports whether a credential is stored.
func (m *MemStore) Has() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.set
}
