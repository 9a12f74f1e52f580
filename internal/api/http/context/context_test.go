package context

import (
	stdctx "context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dtroode/pawconnect-server/internal/model"
)

func TestManager_SetAndGetSession(t *testing.T) {
	m := NewManager()
	session := model.Session{UserID: 7, Email: "a@x.com", Roles: model.NewRoleSet(model.RoleUser)}
	ctx := m.SetSessionToContext(stdctx.Background(), session)

	got, ok := m.GetSessionFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, session, got)
}

func TestManager_GetSession_NotFound(t *testing.T) {
	m := NewManager()
	_, ok := m.GetSessionFromContext(stdctx.Background())
	assert.False(t, ok)
}

func TestManager_GetSession_ZeroUser(t *testing.T) {
	m := NewManager()
	ctx := m.SetSessionToContext(stdctx.Background(), model.Session{Email: "a@x.com"})
	_, ok := m.GetSessionFromContext(ctx)
	assert.False(t, ok)
}

func TestManager_SetSession_Overrides(t *testing.T) {
	m := NewManager()
	ctx := m.SetSessionToContext(stdctx.Background(), model.Session{UserID: 1})
	ctx = m.SetSessionToContext(ctx, model.Session{UserID: 2})

	got, ok := m.GetSessionFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, int64(2), got.UserID)
}
