package handler

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dtroode/pawconnect-server/internal/apierrors"
	"github.com/dtroode/pawconnect-server/internal/logger"
	"github.com/dtroode/pawconnect-server/internal/model"
)

// Envelope is the shape of every response body.
type Envelope struct {
	Success   bool         `json:"success"`
	Message   string       `json:"message"`
	Data      any          `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

// ErrorDetail names the offending field of a rejected request.
type ErrorDetail struct {
	Field         string `json:"field"`
	Message       string `json:"message"`
	RejectedValue any    `json:"rejectedValue,omitempty"`
}

func success(c *fiber.Ctx, message string, data any) error {
	return c.Status(fiber.StatusOK).JSON(Envelope{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	})
}

func failure(c *fiber.Ctx, status int, message string, detail *ErrorDetail) error {
	return c.Status(status).JSON(Envelope{
		Success:   false,
		Message:   message,
		Error:     detail,
		Timestamp: time.Now(),
	})
}

// handleError writes err as an envelope. Anything that is not an APIError is
// logged in full and reported with the generic message.
func handleError(c *fiber.Ctx, log *logger.Logger, err error) error {
	apiErr, ok := apierrors.As(err)
	if !ok {
		log.Error("HTTP: unexpected error",
			"method", c.Method(),
			"path", c.Path(),
			"error", err.Error())
		return failure(c, fiber.StatusInternalServerError, apierrors.MsgUnexpected, nil)
	}

	var detail *ErrorDetail
	if apiErr.Field != "" {
		detail = &ErrorDetail{
			Field:         apiErr.Field,
			Message:       strings.TrimPrefix(apiErr.Message, "Validation failed: "),
			RejectedValue: apiErr.RejectedValue,
		}
	}
	return failure(c, apiErr.HTTPStatus(), apiErr.Message, detail)
}

// ErrorHandler renders errors that escape handlers and middleware,
// including Fiber's own routing and body limit errors.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return failure(c, fe.Code, fe.Message, nil)
		}
		return handleError(c, log, err)
	}
}

type roleResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type jwtResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
}

type userResponse struct {
	ID              int64          `json:"id"`
	Name            string         `json:"name"`
	Username        string         `json:"username"`
	Email           string         `json:"email"`
	Bio             string         `json:"bio"`
	Location        string         `json:"location"`
	DP              string         `json:"dp"`
	Roles           []roleResponse `json:"roles"`
	AccountVerified bool           `json:"accountVerified"`
	Banned          bool           `json:"banned"`
	JWT             *jwtResponse   `json:"jwt,omitempty"`
}

func newUserResponse(u model.User, token string) userResponse {
	roles := make([]roleResponse, 0, len(u.Roles))
	for _, r := range u.Roles {
		roles = append(roles, roleResponse{ID: r.ID, Name: string(r.Name)})
	}

	resp := userResponse{
		ID:              u.ID,
		Name:            u.Name,
		Username:        u.Username,
		Email:           u.Email,
		Bio:             u.Bio,
		Location:        u.Location,
		DP:              u.ProfileImageRef,
		Roles:           roles,
		AccountVerified: u.AccountVerified,
		Banned:          u.Banned,
	}
	if token != "" {
		resp.JWT = &jwtResponse{AccessToken: token, TokenType: "Bearer"}
	}
	return resp
}

type signUpResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

type banResponse struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Banned bool   `json:"banned"`
}

type pageResponse struct {
	Content       []userResponse `json:"content"`
	PageNo        int            `json:"pageNo"`
	PageSize      int            `json:"pageSize"`
	TotalElements int64          `json:"totalElements"`
	TotalPages    int            `json:"totalPages"`
	Last          bool           `json:"last"`
}

func newPageResponse(p model.Page[model.User]) pageResponse {
	content := make([]userResponse, 0, len(p.Content))
	for _, u := range p.Content {
		content = append(content, newUserResponse(u, ""))
	}
	return pageResponse{
		Content:       content,
		PageNo:        p.PageNo,
		PageSize:      p.PageSize,
		TotalElements: p.TotalElements,
		TotalPages:    p.TotalPages,
		Last:          p.Last,
	}
}
