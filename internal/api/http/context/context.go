package context

import (
	"context"

	"github.com/dtroode/pawconnect-server/internal/model"
)

type sessionKey struct{}

// Manager stores the authenticated session on a request context.
type Manager struct{}

// NewManager creates a new context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetSessionToContext returns a copy of ctx carrying session.
func (m *Manager) SetSessionToContext(ctx context.Context, session model.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

// GetSessionFromContext returns the session stored by SetSessionToContext.
// Sessions without a user id are treated as absent.
func (m *Manager) GetSessionFromContext(ctx context.Context) (model.Session, bool) {
	session, ok := ctx.Value(sessionKey{}).(model.Session)
	if !ok || session.UserID <= 0 {
		return model.Session{}, false
	}
	return session, true
}
