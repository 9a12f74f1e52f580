package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/pawconnect-server/internal/apierrors"
	"github.com/dtroode/pawconnect-server/internal/model"
)

func TestValidate_ReportsFirstFieldByName(t *testing.T) {
	in := SignUpInput{Name: "A", Username: "ab", Email: "bad", Password: "123"}

	err := validate(in, map[string]any{"email": in.Email, "name": in.Name})
	apiErr := requireKind(t, err, apierrors.KindValidationFailed)
	assert.Equal(t, "email", apiErr.Field)
	assert.Equal(t, "bad", apiErr.RejectedValue)
	assert.Contains(t, apiErr.Message, "Validation failed: ")
}

func TestSignUpInput_Validate(t *testing.T) {
	valid := SignUpInput{Name: "Ann", Username: "ann", Email: "ann@paw.test", Password: "secret"}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*SignUpInput)
		field  string
	}{
		{"short name", func(in *SignUpInput) { in.Name = "A" }, "name"},
		{"long username", func(in *SignUpInput) { in.Username = "abcdefghijklmnopqrstu" }, "username"},
		{"short password", func(in *SignUpInput) { in.Password = "12345" }, "password"},
		{"long bio", func(in *SignUpInput) { in.Bio = string(make([]byte, 1001)) }, "bio"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			apiErr := requireKind(t, validate(in, nil), apierrors.KindValidationFailed)
			assert.Equal(t, tt.field, apiErr.Field)
		})
	}
}

func TestUpdateProfileInput_EmptyPasswordAllowed(t *testing.T) {
	assert.NoError(t, UpdateProfileInput{Name: "Ann"}.Validate())
	assert.Error(t, UpdateProfileInput{Name: "Ann", Password: "123"}.Validate())
}

func TestListUsersInput(t *testing.T) {
	def := DefaultListUsersInput()
	require.NoError(t, def.Validate())
	assert.Equal(t, model.PageRequest{PageNo: 0, PageSize: 10, SortBy: "id", SortDir: model.SortAsc}, def.PageRequest())

	tests := []struct {
		name  string
		in    ListUsersInput
		field string
	}{
		{"negative page", ListUsersInput{PageNo: -1, PageSize: 10, SortBy: "id", SortDir: "asc"}, "pageNo"},
		{"page beyond range", ListUsersInput{PageNo: MaxPageNo + 1, PageSize: 4, SortBy: "id", SortDir: "asc"}, "pageNo"},
		{"page that overflows the offset", ListUsersInput{PageNo: 1<<61 + 1, PageSize: 4, SortBy: "id", SortDir: "asc"}, "pageNo"},
		{"page size too large", ListUsersInput{PageSize: 101, SortBy: "id", SortDir: "asc"}, "pageSize"},
		{"unknown column", ListUsersInput{PageSize: 10, SortBy: "password", SortDir: "asc"}, "sortBy"},
		{"unknown direction", ListUsersInput{PageSize: 10, SortBy: "id", SortDir: "up"}, "sortDir"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := requireKind(t, validate(tt.in, nil), apierrors.KindValidationFailed)
			assert.Equal(t, tt.field, apiErr.Field)
		})
	}

	last := ListUsersInput{PageNo: MaxPageNo, PageSize: 100, SortBy: "id", SortDir: "asc"}
	assert.NoError(t, last.Validate())
}
