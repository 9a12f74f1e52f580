package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apicontext "github.com/dtroode/pawconnect-server/internal/api/http/context"
	"github.com/dtroode/pawconnect-server/internal/api/http/handler"
	"github.com/dtroode/pawconnect-server/internal/mocks"
	"github.com/dtroode/pawconnect-server/internal/model"
	"github.com/dtroode/pawconnect-server/internal/testutil"
)

func newApp() *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: handler.ErrorHandler(testutil.MakeNoopLogger())})
}

func TestAuthenticate_Handle(t *testing.T) {
	session := model.Session{UserID: 5, Email: "a@x.com", Roles: model.NewRoleSet(model.RoleUser)}

	tests := []struct {
		name       string
		header     string
		setup      func(m *mocks.SessionManager)
		wantStatus int
	}{
		{
			name:       "missing header",
			setup:      func(*mocks.SessionManager) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "not a bearer credential",
			header:     "Basic abc",
			setup:      func(*mocks.SessionManager) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "invalid credential",
			header: "Bearer forged",
			setup: func(m *mocks.SessionManager) {
				m.On("Parse", "forged").Return(model.Session{}, errors.New("signature is invalid"))
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "valid credential",
			header: "Bearer good",
			setup: func(m *mocks.SessionManager) {
				m.On("Parse", "good").Return(session, nil)
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions := mocks.NewSessionManager(t)
			tt.setup(sessions)
			cm := apicontext.NewManager()

			var seen model.Session
			app := newApp()
			app.Get("/me", NewAuthenticate(sessions, cm, testutil.MakeNoopLogger()).Handle, func(c *fiber.Ctx) error {
				seen, _ = cm.GetSessionFromContext(c.UserContext())
				return c.SendStatus(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, session, seen)
			}
		})
	}
}

func TestAuthenticate_RequireRole(t *testing.T) {
	tests := []struct {
		name       string
		roles      model.RoleSet
		wantStatus int
	}{
		{"admin admitted", model.NewRoleSet(model.RoleAdmin, model.RoleUser), http.StatusOK},
		{"user refused", model.NewRoleSet(model.RoleUser), http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions := mocks.NewSessionManager(t)
			sessions.On("Parse", "tok").Return(model.Session{UserID: 1, Email: "a@x.com", Roles: tt.roles}, nil)

			auth := NewAuthenticate(sessions, apicontext.NewManager(), testutil.MakeNoopLogger())
			app := newApp()
			app.Get("/auth/users", auth.Handle, auth.RequireRole(model.RoleAdmin), func(c *fiber.Ctx) error {
				return c.SendStatus(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/auth/users", nil)
			req.Header.Set("Authorization", "Bearer tok")
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestAuthenticate_RequireRole_WithoutSession(t *testing.T) {
	auth := NewAuthenticate(mocks.NewSessionManager(t), apicontext.NewManager(), testutil.MakeNoopLogger())
	app := newApp()
	app.Get("/", auth.RequireRole(model.RoleAdmin), func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
