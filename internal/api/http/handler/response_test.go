package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/dtroode/pawconnect-server/internal/apierrors"
)

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"api error", apierrors.NewErrAccessDenied(), http.StatusForbidden, apierrors.MsgAccessDenied},
		{"wrapped api error", fmt.Errorf("ctx: %w", apierrors.NewErrInvalidSession()), http.StatusUnauthorized, apierrors.MsgInvalidSession},
		{"too many requests", apierrors.NewErrTooManyRequests(), http.StatusTooManyRequests, apierrors.MsgTooManyRequests},
		{"fiber error", fiber.NewError(fiber.StatusRequestEntityTooLarge, "Request Entity Too Large"), http.StatusRequestEntityTooLarge, "Request Entity Too Large"},
		{"internal", errors.New("pq: relation users does not exist"), http.StatusInternalServerError, apierrors.MsgUnexpected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := newTestApp(nil)
			app.Get("/", func(*fiber.Ctx) error { return tt.err })

			resp, env := do(t, app, http.MethodGet, "/", "")
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.False(t, env.Success)
			assert.Equal(t, tt.wantMsg, env.Message)
			assert.Nil(t, env.Error)
		})
	}
}

func TestErrorHandler_UnknownRoute(t *testing.T) {
	app, _ := newTestApp(nil)

	resp, env := do(t, app, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.False(t, env.Success)
}
