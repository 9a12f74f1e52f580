package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dtroode/pawconnect-server/internal/logger"
	"github.com/dtroode/pawconnect-server/internal/model"
)

const (
	MsgHealthy     = "Backend is running"
	MsgUnavailable = "Service unavailable"
)

// Health reports whether the backing store is reachable.
type Health struct {
	store  model.Pinger
	logger *logger.Logger
}

func NewHealth(store model.Pinger, logger *logger.Logger) *Health {
	return &Health{store: store, logger: logger}
}

func (h *Health) Check(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		h.logger.Error("Health handler: store unreachable", "error", err.Error())
		return failure(c, fiber.StatusServiceUnavailable, MsgUnavailable, nil)
	}
	return success(c, MsgHealthy, fiber.Map{"status": "ok"})
}
