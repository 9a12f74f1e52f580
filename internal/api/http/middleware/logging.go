package middleware

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/dtroode/pawconnect-server/internal/logger"
)

// HeaderRequestID carries the request id back to the client.
const HeaderRequestID = "X-Request-ID"

// Logging writes one access log line per request.
type Logging struct {
	logger *logger.Logger
}

// NewLogging creates a new Logging middleware.
func NewLogging(logger *logger.Logger) *Logging {
	return &Logging{logger: logger}
}

// Handle logs method, path, status and duration of each request.
func (l *Logging) Handle(c *fiber.Ctx) error {
	start := time.Now()

	requestID := c.Get(HeaderRequestID)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Set(HeaderRequestID, requestID)

	err := c.Next()

	status := c.Response().StatusCode()
	if err != nil {
		// The app error handler has not run yet, so take the status from the error.
		status = fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		} else if se, ok := err.(interface{ HTTPStatus() int }); ok {
			status = se.HTTPStatus()
		}
	}

	attrs := []any{
		"request_id", requestID,
		"method", c.Method(),
		"path", c.Path(),
		"status", status,
		"duration_ms", time.Since(start).Milliseconds(),
		"ip", c.IP(),
	}
	if status >= fiber.StatusInternalServerError {
		l.logger.Error("HTTP request failed", attrs...)
	} else {
		l.logger.Info("HTTP request completed", attrs...)
	}

	return err
}
