package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	apicontext "github.com/dtroode/pawconnect-server/internal/api/http/context"
	"github.com/dtroode/pawconnect-server/internal/model"
	"github.com/dtroode/pawconnect-server/internal/testutil"
)

type testEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *ErrorDetail    `json:"error"`
}

var (
	ownerSession = model.Session{UserID: 1, Email: "a@x.com", Roles: model.NewRoleSet(model.RoleUser)}
	adminSession = model.Session{UserID: 9, Email: "admin@pawconnect.com", Roles: model.NewRoleSet(model.RoleAdmin)}
)

// newTestApp returns an app whose requests carry session when it is non-nil.
func newTestApp(session *model.Session) (*fiber.App, *apicontext.Manager) {
	cm := apicontext.NewManager()
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(testutil.MakeNoopLogger())})
	if session != nil {
		app.Use(func(c *fiber.Ctx) error {
			c.SetUserContext(cm.SetSessionToContext(c.UserContext(), *session))
			return c.Next()
		})
	}
	return app, cm
}

func do(t *testing.T, app *fiber.App, method, target, body string) (*http.Response, testEnvelope) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, target, r)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	return send(t, app, req)
}

func send(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, testEnvelope) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	var env testEnvelope
	if strings.HasPrefix(resp.Header.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp, env
}
