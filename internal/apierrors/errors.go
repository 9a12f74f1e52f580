// Package apierrors defines the client-facing error taxonomy. Domain failures
// are created here at the point of detection and translated to a response
// status only at the transport boundary.
package apierrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an APIError.
type Kind int

const (
	KindUnexpected Kind = iota
	KindDuplicateIdentity
	KindInvalidCredentials
	KindInvalidToken
	KindInvalidSession
	KindForbidden
	KindNotFound
	KindValidationFailed
	KindBadRequest
	KindTooManyRequests
)

// Messages shared by several call sites. The vague wording is intentional:
// these must not reveal whether an account or token exists.
const (
	MsgInvalidCredentials = "Invalid email or password"
	MsgInvalidToken       = "Token is not valid or has expired"
	MsgResetRequested     = "If the email exists, a password reset link has been sent."
	MsgInvalidSession     = "Invalid or expired session"
	MsgMissingSession     = "Authorization header is required"
	MsgAccessDenied       = "You don't have permission to access this resource"
	MsgUnexpected         = "An unexpected error occurred. Please try again later."
	MsgTooManyRequests    = "Too many requests, please try again later"
)

// APIError is a domain failure with a client-safe message.
type APIError struct {
	Kind          Kind
	Message       string
	Field         string
	RejectedValue any
}

func (e *APIError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// HTTPStatus returns the response status for the error kind.
func (e *APIError) HTTPStatus() int {
	switch e.Kind {
	case KindDuplicateIdentity, KindValidationFailed, KindBadRequest, KindInvalidToken:
		return http.StatusBadRequest
	case KindInvalidCredentials, KindInvalidSession:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindTooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// As returns the APIError in err's chain, if any.
func As(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsKind reports whether err carries an APIError of the given kind.
func IsKind(err error, kind Kind) bool {
	apiErr, ok := As(err)
	return ok && apiErr.Kind == kind
}

func NewErrEmailIsTaken() *APIError {
	return &APIError{Kind: KindDuplicateIdentity, Message: "Email is already taken!", Field: "email"}
}

func NewErrUsernameIsTaken() *APIError {
	return &APIError{Kind: KindDuplicateIdentity, Message: "Username is already taken!", Field: "username"}
}

func NewErrDuplicateIdentity() *APIError {
	return &APIError{Kind: KindDuplicateIdentity, Message: "Email or username is already taken!"}
}

func NewErrInvalidCredentials() *APIError {
	return &APIError{Kind: KindInvalidCredentials, Message: MsgInvalidCredentials}
}

// NewErrInvalidToken is used for both unknown and expired tokens.
func NewErrInvalidToken() *APIError {
	return &APIError{Kind: KindInvalidToken, Message: MsgInvalidToken}
}

func NewErrInvalidSession() *APIError {
	return &APIError{Kind: KindInvalidSession, Message: MsgInvalidSession}
}

func NewErrMissingSession() *APIError {
	return &APIError{Kind: KindInvalidSession, Message: MsgMissingSession}
}

func NewErrForbidden(message string) *APIError {
	return &APIError{Kind: KindForbidden, Message: message}
}

func NewErrAccessDenied() *APIError {
	return NewErrForbidden(MsgAccessDenied)
}

func NewErrNotFound(resource, field string, value any) *APIError {
	return &APIError{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s not found with %s : '%v'", resource, field, value),
	}
}

func NewErrValidation(field, message string, rejected any) *APIError {
	return &APIError{
		Kind:          KindValidationFailed,
		Message:       fmt.Sprintf("Validation failed: %s", message),
		Field:         field,
		RejectedValue: rejected,
	}
}

func NewErrBadRequest(message string) *APIError {
	return &APIError{Kind: KindBadRequest, Message: message}
}

func NewErrTooManyRequests() *APIError {
	return &APIError{Kind: KindTooManyRequests, Message: MsgTooManyRequests}
}
