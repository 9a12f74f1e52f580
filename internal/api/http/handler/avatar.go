package handler

import (
	"context"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/dtroode/pawconnect-server/internal/apierrors"
	"github.com/dtroode/pawconnect-server/internal/logger"
	"github.com/dtroode/pawconnect-server/internal/model"
	"github.com/dtroode/pawconnect-server/internal/service"
)

const (
	MsgAvatarUpdated = "Profile image updated successfully"
	MsgFileRequired  = "File is required"
)

// AvatarService stores and serves profile images.
type AvatarService interface {
	Upload(ctx context.Context, session model.Session, id int64, in service.AvatarUpload) (model.User, error)
	Download(ctx context.Context, id int64) (io.ReadCloser, string, error)
}

// Avatar handles profile image endpoints.
type Avatar struct {
	avatarService  AvatarService
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewAvatar(avatarService AvatarService, contextManager model.ContextManager, logger *logger.Logger) *Avatar {
	return &Avatar{
		avatarService:  avatarService,
		contextManager: contextManager,
		logger:         logger,
	}
}

func (h *Avatar) Upload(c *fiber.Ctx) error {
	session, ok := h.contextManager.GetSessionFromContext(c.UserContext())
	if !ok {
		return handleError(c, h.logger, apierrors.NewErrMissingSession())
	}
	id, err := pathID(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return handleError(c, h.logger, apierrors.NewErrValidation("file", MsgFileRequired, nil))
	}
	f, err := fh.Open()
	if err != nil {
		return handleError(c, h.logger, err)
	}
	defer f.Close()

	user, err := h.avatarService.Upload(c.UserContext(), session, id, service.AvatarUpload{
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Size:        fh.Size,
		Body:        f,
	})
	if err != nil {
		return handleError(c, h.logger, err)
	}

	return success(c, MsgAvatarUpdated, newUserResponse(user, ""))
}

func (h *Avatar) Download(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	rc, contentType, err := h.avatarService.Download(c.UserContext(), id)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderCacheControl, "public, max-age=300")
	return c.SendStream(rc)
}
