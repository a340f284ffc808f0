package session

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_LoadMissing(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "token"))

	_, err := s.Load()
	assert.ErrorIs(t, err, ErrNoCredential)
}

func TestFileStore_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "token")
	s := NewFileStore(path)

	require.NoError(t, s.Save("tok-abc123"))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-abc123", got)

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	}
}

func TestFileStore_LoadTrimsWhitespace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte("  tok-abc123\n\n"), 0600))

	got, err := NewFileStore(path).Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-abc123", got)
}

func TestFileStore_LoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte("\n"), 0600))

	_, err := NewFileStore(path).Load()
	assert.ErrorIs(t, err, ErrNoCredential)
}

func TestFileStore_SaveReplaces(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "token"))
	require.NoError(t, s.Save("old"))
	require.NoError(t, s.Save("new"))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "new", got)
}

func TestFileStore_ClearIdempotent(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "token"))
	require.NoError(t, s.Save("tok"))

	require.NoError(t, s.Clear())
	_, err := s.Load()
	assert.ErrorIs(t, err, ErrNoCredential)

	// Clearing an already-empty slot is fine.
	require.NoError(t, s.Clear())
}
