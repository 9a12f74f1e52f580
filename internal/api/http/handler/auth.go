package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/dtroode/pawconnect-server/internal/apierrors"
	"github.com/dtroode/pawconnect-server/internal/logger"
	"github.com/dtroode/pawconnect-server/internal/model"
	"github.com/dtroode/pawconnect-server/internal/service"
)

const (
	MsgLoginSuccessful    = "Login successful"
	MsgSignUpSuccessful   = "Registration successful. Please check your email to verify your account."
	MsgVerified           = "Account verified successfully"
	MsgPasswordChanged    = "Password changed successfully"
	MsgUserUpdated        = "User updated successfully"
	MsgUserBanned         = "User banned successfully"
	MsgUserUnbanned       = "User unbanned successfully"
	MsgUsersRetrieved     = "Users retrieved successfully"
	MsgUserRetrieved      = "User retrieved successfully"
	MsgInvalidRequestBody = "Invalid request body"
	MsgInvalidID          = "must be a positive integer"
)

// AuthService defines the account operations exposed over HTTP.
type AuthService interface {
	SignUp(ctx context.Context, in service.SignUpInput) (model.User, error)
	Verify(ctx context.Context, token string) error
	SignIn(ctx context.Context, in service.SignInInput) (model.AuthResult, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token string, in service.ResetPasswordInput) error
	UpdateProfile(ctx context.Context, session model.Session, id int64, in service.UpdateProfileInput) (model.AuthResult, error)
	Me(ctx context.Context, session model.Session) (model.User, error)
	Ban(ctx context.Context, caller model.Session, id int64) (model.User, error)
	Unban(ctx context.Context, caller model.Session, id int64) (model.User, error)
	ListUsers(ctx context.Context, in service.ListUsersInput) (model.Page[model.User], error)
}

// Auth handles the account endpoints.
type Auth struct {
	authService    AuthService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, contextManager model.ContextManager, logger *logger.Logger) *Auth {
	return &Auth{
		authService:    authService,
		contextManager: contextManager,
		logger:         logger,
	}
}

func (h *Auth) SignIn(c *fiber.Ctx) error {
	var in service.SignInInput
	if err := c.BodyParser(&in); err != nil {
		return handleError(c, h.logger, apierrors.NewErrBadRequest(MsgInvalidRequestBody))
	}

	h.logger.Debug("Auth handler: processing sign in request", "email", in.Email)

	result, err := h.authService.SignIn(c.UserContext(), in)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	return success(c, MsgLoginSuccessful, newUserResponse(result.User, result.Token))
}

func (h *Auth) SignUp(c *fiber.Ctx) error {
	var in service.SignUpInput
	if err := c.BodyParser(&in); err != nil {
		return handleError(c, h.logger, apierrors.NewErrBadRequest(MsgInvalidRequestBody))
	}

	h.logger.Debug("Auth handler: processing sign up request",
		"email", in.Email,
		"username", in.Username)

	user, err := h.authService.SignUp(c.UserContext(), in)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	return success(c, MsgSignUpSuccessful, signUpResponse{
		ID:       user.ID,
		Name:     user.Name,
		Email:    user.Email,
		Username: user.Username,
	})
}

func (h *Auth) Verify(c *fiber.Ctx) error {
	if err := h.authService.Verify(c.UserContext(), c.Query("token")); err != nil {
		return handleError(c, h.logger, err)
	}
	return success(c, MsgVerified, nil)
}

// ResetRequest answers with the same acknowledgement whether or not the
// email is registered, including when issuing the token failed.
func (h *Auth) ResetRequest(c *fiber.Ctx) error {
	err := h.authService.RequestPasswordReset(c.UserContext(), c.Query("email"))
	if err != nil {
		if _, ok := apierrors.As(err); ok {
			return handleError(c, h.logger, err)
		}
		h.logger.Error("Auth handler: password reset request failed",
			"error", err.Error())
	}
	return success(c, apierrors.MsgResetRequested, nil)
}

func (h *Auth) ResetPassword(c *fiber.Ctx) error {
	var in service.ResetPasswordInput
	if err := c.BodyParser(&in); err != nil {
		return handleError(c, h.logger, apierrors.NewErrBadRequest(MsgInvalidRequestBody))
	}

	if err := h.authService.ResetPassword(c.UserContext(), c.Params("token"), in); err != nil {
		return handleError(c, h.logger, err)
	}
	return success(c, MsgPasswordChanged, nil)
}

func (h *Auth) Me(c *fiber.Ctx) error {
	session, err := h.session(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	user, err := h.authService.Me(c.UserContext(), session)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return success(c, MsgUserRetrieved, newUserResponse(user, ""))
}

func (h *Auth) UpdateProfile(c *fiber.Ctx) error {
	session, err := h.session(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	id, err := pathID(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	var in service.UpdateProfileInput
	if err := c.BodyParser(&in); err != nil {
		return handleError(c, h.logger, apierrors.NewErrBadRequest(MsgInvalidRequestBody))
	}

	result, err := h.authService.UpdateProfile(c.UserContext(), session, id, in)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return success(c, MsgUserUpdated, newUserResponse(result.User, result.Token))
}

func (h *Auth) Ban(c *fiber.Ctx) error {
	return h.moderate(c, h.authService.Ban, MsgUserBanned)
}

func (h *Auth) Unban(c *fiber.Ctx) error {
	return h.moderate(c, h.authService.Unban, MsgUserUnbanned)
}

func (h *Auth) moderate(c *fiber.Ctx, op func(context.Context, model.Session, int64) (model.User, error), message string) error {
	session, err := h.session(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	id, err := pathID(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	user, err := op(c.UserContext(), session, id)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	h.logger.Info("Auth handler: moderation applied",
		"caller_id", session.UserID,
		"target_id", id,
		"banned", user.Banned)

	return success(c, message, banResponse{
		ID:     user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Banned: user.Banned,
	})
}

func (h *Auth) ListUsers(c *fiber.Ctx) error {
	in := service.DefaultListUsersInput()
	in.PageNo = c.QueryInt("pageNo", in.PageNo)
	in.PageSize = c.QueryInt("pageSize", in.PageSize)
	in.SortBy = c.Query("sortBy", in.SortBy)
	in.SortDir = c.Query("sortDir", in.SortDir)

	page, err := h.authService.ListUsers(c.UserContext(), in)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return success(c, MsgUsersRetrieved, newPageResponse(page))
}

func (h *Auth) session(c *fiber.Ctx) (model.Session, error) {
	session, ok := h.contextManager.GetSessionFromContext(c.UserContext())
	if !ok {
		return model.Session{}, apierrors.NewErrMissingSession()
	}
	return session, nil
}

func pathID(c *fiber.Ctx) (int64, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, apierrors.NewErrValidation("id", MsgInvalidID, c.Params("id"))
	}
	return int64(id), nil
}
