package apierrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAPIError_HTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  *APIError
		want int
	}{
		{"duplicate", NewErrEmailIsTaken(), http.StatusBadRequest},
		{"credentials", NewErrInvalidCredentials(), http.StatusUnauthorized},
		{"token", NewErrInvalidToken(), http.StatusBadRequest},
		{"session", NewErrInvalidSession(), http.StatusUnauthorized},
		{"forbidden", NewErrAccessDenied(), http.StatusForbidden},
		{"not found", NewErrNotFound("User", "id", 7), http.StatusNotFound},
		{"validation", NewErrValidation("email", "must be a valid email address", "x"), http.StatusBadRequest},
		{"bad request", NewErrBadRequest("Admin cannot be banned"), http.StatusBadRequest},
		{"rate limited", NewErrTooManyRequests(), http.StatusTooManyRequests},
		{"unexpected", &APIError{Kind: KindUnexpected, Message: MsgUnexpected}, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.HTTPStatus())
		})
	}
}

func TestAs_WrappedError(t *testing.T) {
	err := fmt.Errorf("signup: %w", NewErrUsernameIsTaken())

	apiErr, ok := As(err)
	assert.True(t, ok)
	assert.Equal(t, KindDuplicateIdentity, apiErr.Kind)
	assert.True(t, IsKind(err, KindDuplicateIdentity))
	assert.False(t, IsKind(errors.New("plain"), KindDuplicateIdentity))
}

func TestNewErrNotFound_Message(t *testing.T) {
	err := NewErrNotFound("User", "id", int64(42))
	assert.Equal(t, "User not found with id : '42'", err.Error())
}

func TestAPIError_ErrorIncludesField(t *testing.T) {
	err := NewErrValidation("password", "the length must be between 6 and 100", nil)
	assert.Equal(t, "password: Validation failed: the length must be between 6 and 100", err.Error())
}
