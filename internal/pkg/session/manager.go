// internal/pkg/session/manager.go
package session

import (
	"context"
	"fmt"
	"strings"
	"sync"

	xerrors "glam-admin/internal/pkg/errors"

	"go.uber.org/zap"
)

// Manager is the console's Session Store facade. The token is read from the
// backing store on every call, never cached, so a login or logout is visible
// to the next request immediately.
type Manager struct {
	store  Store
	logger *zap.Logger

	mu        sync.Mutex // serializes writes and listener dispatch
	listeners []func(State)
}

func NewManager(store Store, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{store: store, logger: logger}
}

// Token returns the current bearer token. A store failure is logged and
// treated as "no session".
func (m *Manager) Token(ctx context.Context) (string, bool) {
	tok, err := m.store.Load(ctx)
	if err != nil {
		m.logger.Warn("failed to read session token", zap.Error(err))
		return "", false
	}
	if tok == "" {
		return "", false
	}
	return tok, true
}

// SetToken stores a token received from a successful login.
func (m *Manager) SetToken(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return xerrors.ErrNoToken
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	before := m.state(ctx)
	if err := m.store.Save(ctx, token); err != nil {
		return fmt.Errorf("failed to persist session token: %w", err)
	}
	m.notify(before, StateAuthenticated)
	return nil
}

// ClearToken ends the session (logout, or the API rejected the token).
func (m *Manager) ClearToken(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	before := m.state(ctx)
	if err := m.store.Delete(ctx); err != nil {
		return fmt.Errorf("failed to clear session token: %w", err)
	}
	m.notify(before, StateAnonymous)
	return nil
}

func (m *Manager) IsAuthenticated(ctx context.Context) bool {
	_, ok := m.Token(ctx)
	return ok
}

func (m *Manager) State(ctx context.Context) State {
	return m.state(ctx)
}

// OnChange registers a listener fired on ANONYMOUS <-> AUTHENTICATED transitions.
func (m *Manager) OnChange(fn func(State)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

func (m *Manager) state(ctx context.Context) State {
	if m.IsAuthenticated(ctx) {
		return StateAuthenticated
	}
	return StateAnonymous
}

func (m *Manager) notify(before, after State) {
	if before == after {
		return
	}
	m.logger.Info("session state changed",
		zap.String("from", string(before)),
		zap.String("to", string(after)),
	)
	for _, fn := range m.listeners {
		fn(after)
	}
}
