package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoCredential is returned by CredentialStore.Load when no
// credential has been persisted.
var ErrNoCredential = errors.New("no stored credential")

// CredentialStore is the key-value persistence capability for the
// single credential slot. The session store is its only writer.
type CredentialStore interface {
	// Load returns the persisted credential, or ErrNoCredential.
	Load() (string, error)

	// Save persists the credential, replacing any previous one.
	Save(token string) error

	// Clear removes the persisted credential. Clearing an empty slot
	// is not an error.
	Clear() error
}

// FileStore persists the credential in a single file, mode 0600.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load implements CredentialStore.
func (s *FileStore) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNoCredential
		}
		return "", fmt.Errorf("read credential: %w", err)
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", ErrNoCredential
	}
	return token, nil
}

// Save implements CredentialStore.
func (s *FileStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token+"\n"), 0600); err != nil {
		return fmt.Errorf("write credential: %w", err)
	}
	return nil
}

// Clear implements CredentialStore.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove credential: %w", err)
	}
	return nil
}
