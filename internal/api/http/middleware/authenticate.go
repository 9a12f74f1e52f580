package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/dtroode/pawconnect-server/internal/apierrors"
	"github.com/dtroode/pawconnect-server/internal/logger"
	"github.com/dtroode/pawconnect-server/internal/model"
)

// SessionParser validates session credentials.
type SessionParser interface {
	Parse(credential string) (model.Session, error)
}

// Authenticate validates bearer credentials and stores the session on the
// request context.
type Authenticate struct {
	sessions       SessionParser
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(sessions SessionParser, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{sessions: sessions, contextManager: contextManager, logger: logger}
}

// Handle rejects requests without a valid session.
func (m *Authenticate) Handle(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return apierrors.NewErrMissingSession()
	}

	credential, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(credential) == "" {
		return apierrors.NewErrInvalidSession()
	}

	session, err := m.sessions.Parse(strings.TrimSpace(credential))
	if err != nil {
		m.logger.Debug("Authenticate middleware: session rejected",
			"path", c.Path(),
			"error", err.Error())
		return apierrors.NewErrInvalidSession()
	}

	c.SetUserContext(m.contextManager.SetSessionToContext(c.UserContext(), session))
	return c.Next()
}

// RequireRole admits only sessions holding kind. It must run after Handle.
func (m *Authenticate) RequireRole(kind model.RoleKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, ok := m.contextManager.GetSessionFromContext(c.UserContext())
		if !ok {
			return apierrors.NewErrMissingSession()
		}
		if !session.HasRole(kind) {
			m.logger.Info("Authenticate middleware: role required",
				"user_id", session.UserID,
				"role", kind,
				"path", c.Path())
			return apierrors.NewErrAccessDenied()
		}
		return c.Next()
	}
}
