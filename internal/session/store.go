// Package session holds the current credential and user identity: the
// single source of truth for "who is the current user, and are they
// authenticated". The credential is persisted across restarts through
// an injected CredentialStore; the identity is re-fetched per session.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"todoctl/internal/service"
)

// ErrNotAuthenticated is returned by operations that require an
// authenticated session.
var ErrNotAuthenticated = errors.New("not authenticated")

// State is the session lifecycle state.
type State int

const (
	StateUnknown State = iota
	StateRestoring
	StateAuthenticated
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateRestoring:
		return "restoring"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// Store orchestrates login, register, logout, and credential
// restoration. One long-lived instance is constructed at process start
// and passed explicitly to consumers.
type Store struct {
	svc    service.Service
	creds  CredentialStore
	logger *slog.Logger

	mu      sync.Mutex
	state   State
	token   string
	user    *service.User
	lastErr error

	subMu   sync.Mutex
	subs    map[int]func()
	nextSub int
}

// New creates a Store in the Unknown state.
func New(svc service.Service, creds CredentialStore, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{
		svc:    svc,
		creds:  creds,
		logger: logger,
		state:  StateUnknown,
		subs:   make(map[int]func()),
	}
}

// Restore loads the persisted credential and validates it against the
// server. A missing credential moves straight to Anonymous. A present
// credential moves through Restoring; if the identity fetch fails for
// any reason the credential is cleared and the session falls back to
// Anonymous silently. Restore never surfaces the failure.
func (s *Store) Restore(ctx context.Context) {
	token, err := s.creds.Load()
	if err != nil {
		if !errors.Is(err, ErrNoCredential) {
			s.logger.DebugContext(ctx, "credential load failed", "err", err)
		}
		s.transition(func() {
			s.state = StateAnonymous
			s.token = ""
			s.user = nil
		})
		return
	}

	s.transition(func() {
		s.state = StateRestoring
		s.token = token
	})

	user, err := s.svc.CurrentUser(ctx, token)
	if err != nil {
		s.logger.DebugContext(ctx, "stored credential rejected", "err", err)
		if clearErr := s.creds.Clear(); clearErr != nil {
			s.logger.DebugContext(ctx, "credential clear failed", "err", clearErr)
		}
		s.transition(func() {
			s.state = StateAnonymous
			s.token = ""
			s.user = nil
		})
		return
	}

	s.transition(func() {
		s.state = StateAuthenticated
		s.user = &user
	})
}

// Login authenticates, persists the credential, and fetches the
// identity. Any failure leaves the session Anonymous with no partial
// state and records the failure in the error slot.
func (s *Store) Login(ctx context.Context, email, password string) error {
	s.transition(func() { s.lastErr = nil })

	cred, err := s.svc.Login(ctx, email, password)
	if err != nil {
		s.fail(fmt.Errorf("login: %w", err))
		return err
	}

	if err := s.creds.Save(cred.AccessToken); err != nil {
		s.fail(fmt.Errorf("persist credential: %w", err))
		return err
	}

	user, err := s.svc.CurrentUser(ctx, cred.AccessToken)
	if err != nil {
		// Roll back: no credential without a confirmed identity.
		if clearErr := s.creds.Clear(); clearErr != nil {
			s.logger.DebugContext(ctx, "credential rollback failed", "err", clearErr)
		}
		s.fail(fmt.Errorf("fetch identity: %w", err))
		return err
	}

	s.transition(func() {
		s.state = StateAuthenticated
		s.token = cred.AccessToken
		s.user = &user
	})
	return nil
}

// Register creates the account and chains into Login with the same
// credentials. Either failure surfaces and leaves the session Anonymous.
func (s *Store) Register(ctx context.Context, email, username, password string) error {
	s.transition(func() { s.lastErr = nil })

	if _, err := s.svc.Register(ctx, email, username, password); err != nil {
		s.fail(fmt.Errorf("register: %w", err))
		return err
	}
	return s.Login(ctx, email, password)
}

// Logout clears the credential, identity, and persisted slot. It is
// unconditional and idempotent; a failure to remove the persisted file
// is logged but does not keep the session alive.
func (s *Store) Logout() {
	if err := s.creds.Clear(); err != nil {
		s.logger.Debug("credential clear failed", "err", err)
	}
	s.transition(func() {
		s.state = StateAnonymous
		s.token = ""
		s.user = nil
	})
}

// HasCredential reports whether a credential is persisted, without
// validating it against the server.
func (s *Store) HasCredential() bool {
	_, err := s.creds.Load()
	return err == nil
}

// Authenticated reports whether both a confirmed identity and a
// credential are present. One without the other is not authenticated.
func (s *Store) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil && s.token != ""
}

// State returns the current lifecycle state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Token returns the current credential, or "" when anonymous.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// CurrentUser returns the cached identity, or nil when anonymous.
func (s *Store) CurrentUser() *service.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Err returns the error recorded by the last failed login or register
// attempt. It stays set until ClearError or a fresh attempt.
func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// ClearError clears the error slot.
func (s *Store) ClearError() {
	s.transition(func() { s.lastErr = nil })
}

// Subscribe registers fn to be called after every state, identity, or
// error-slot change. The returned function removes the subscription.
func (s *Store) Subscribe(fn func()) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

// fail records err and drops the session to Anonymous with no partial
// state.
func (s *Store) fail(err error) {
	s.transition(func() {
		s.state = StateAnonymous
		s.token = ""
		s.user = nil
		s.lastErr = err
	})
}

// transition applies mutate under the lock and notifies subscribers
// after releasing it.
func (s *Store) transition(mutate func()) {
	s.mu.Lock()
	mutate()
	s.mu.Unlock()
	s.notify()
}

func (s *Store) notify() {
	s.subMu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()
	for _, fn := range fns {
		fn()
	}
}
