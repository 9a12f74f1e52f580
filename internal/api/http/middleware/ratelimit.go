package middleware

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dtroode/pawconnect-server/internal/apierrors"
	"github.com/dtroode/pawconnect-server/internal/logger"
	"github.com/dtroode/pawconnect-server/internal/ratelimit"
)

// Limiter decides whether a request identified by key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (ratelimit.Result, error)
}

// RateLimit throttles requests per client IP and scope.
type RateLimit struct {
	limiter Limiter
	logger  *logger.Logger
	now     func() time.Time
}

// NewRateLimit returns a rate limiting middleware. A nil limiter disables it.
func NewRateLimit(limiter Limiter, logger *logger.Logger) *RateLimit {
	return &RateLimit{limiter: limiter, logger: logger, now: time.Now}
}

// Handle limits requests of the given scope. Limiter failures let the
// request through.
func (m *RateLimit) Handle(scope string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if m.limiter == nil {
			return c.Next()
		}

		key := scope + ":" + c.IP()
		res, err := m.limiter.Allow(c.UserContext(), key)
		if err != nil {
			m.logger.Error("RateLimit middleware: check failed",
				"scope", scope,
				"error", err.Error())
			return c.Next()
		}

		c.Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
		c.Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
		c.Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))

		if !res.Allowed {
			retry := int(math.Ceil(res.RetryAfter(m.now()).Seconds()))
			if retry < 1 {
				retry = 1
			}
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(retry))

			m.logger.Warn("RateLimit middleware: limit exceeded",
				"scope", scope,
				"ip", c.IP())
			return apierrors.NewErrTooManyRequests()
		}

		return c.Next()
	}
}
