package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/flfe/adminctl/internal/client/creds"
	"github.com/flfe/adminctl/internal/logging"
)

// Manager owns the current session. Transitions are atomic: the credential
// store write and the published session commit under one lock, so a reader
// can never observe a token persisted without its session or vice versa.
type Manager struct {
	store creds.Store
	log   logging.Logger

	mu      sync.RWMutex
	current *Session

	// changes carries a coalesced notification per completed transition.
	// Consumers re-read Current after receiving.
	changes chan struct{}
}

func NewManager(store creds.Store, log logging.Logger) *Manager {
	return &Manager{
		store:   store,
		log:     log.With("component", "session"),
		changes: make(chan struct{}, 1),
	}
}

// Init establishes the startup session from the credential store. A missing
// token leaves the manager anonymous. A token that fails to decode is
// treated as stale: the store is cleared so the next start does not retry
// the same failed decode, and no error is reported — this is a recovery
// path, not a failure.
func (m *Manager) Init(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	token, ok, err := m.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load stored token: %w", err)
	}
	if !ok {
		m.current = nil
		return nil
	}

	sess, err := Decode(token)
	if err != nil {
		m.log.Warn(ctx, "stored token is invalid, clearing", "err", err)
		if clearErr := m.store.Clear(ctx); clearErr != nil {
			return fmt.Errorf("failed to clear invalid token: %w", clearErr)
		}
		m.current = nil
		return nil
	}

	m.current = &sess
	return nil
}

// Login decodes and persists a freshly received token and publishes the
// resulting session. Unlike Init, a decode failure here is loud: the token
// just arrived from the trusted redirect, so a bad one is a caller error.
// Nothing is persisted or published on failure.
func (m *Manager) Login(ctx context.Context, token string) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, err := Decode(token)
	if err != nil {
		return Session{}, err
	}

	if err := m.store.Save(ctx, token); err != nil {
		return Session{}, fmt.Errorf("failed to persist token: %w", err)
	}

	m.current = &sess
	m.notify()
	m.log.Info(ctx, "logged in", "subject", sess.SubjectID, "role", sess.Role)
	return sess, nil
}

// Logout clears the store and publishes the absent session. Consumers must
// treat this as a full navigation reset: any in-flight list or detail state
// is invalid afterwards.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}

	m.current = nil
	m.notify()
	m.log.Info(ctx, "logged out")
	return nil
}

// Current returns the session from the latest completed transition.
func (m *Manager) Current() (Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return Session{}, false
	}
	return *m.current, true
}

// IsAdmin reports whether a session is present and its role claim is ADMIN.
// Always derived from the current session, never cached separately.
func (m *Manager) IsAdmin() bool {
	sess, ok := m.Current()
	return ok && sess.IsAdmin()
}

// Changes returns a channel that receives a coalesced signal after each
// login or logout. Receivers re-read Current for the new state.
func (m *Manager) Changes() <-chan struct{} {
	return m.changes
}

func (m *Manager) notify() {
	select {
	case m.changes <- struct{}{}:
	default:
	}
}
