package service

import (
	"errors"
	"math"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/dtroode/pawconnect-server/internal/apierrors"
	"github.com/dtroode/pawconnect-server/internal/model"
)

// SignUpInput is the registration request.
type SignUpInput struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Bio      string `json:"bio"`
	Location string `json:"location"`
	DP       string `json:"dp"`
}

func (r SignUpInput) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(2, 50)),
		validation.Field(&r.Username, validation.Required, validation.Length(3, 20)),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(6, 100)),
		validation.Field(&r.Bio, validation.Length(0, 1000)),
		validation.Field(&r.Location, validation.Length(0, 200)),
		validation.Field(&r.DP, validation.Length(0, 1000)),
	)
}

// SignInInput is the login request.
type SignInInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r SignInInput) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(6, 0)),
	)
}

// ResetPasswordInput carries the new password for a reset token.
type ResetPasswordInput struct {
	Password string `json:"password"`
}

func (r ResetPasswordInput) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Password, validation.Required, validation.Length(6, 100)),
	)
}

// UpdateProfileInput changes the caller's profile. An empty password keeps
// the current one.
type UpdateProfileInput struct {
	Name     string `json:"name"`
	Password string `json:"password"`
	Bio      string `json:"bio"`
	Location string `json:"location"`
	DP       string `json:"dp"`
}

func (r UpdateProfileInput) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(2, 50)),
		validation.Field(&r.Password, validation.Length(6, 100)),
		validation.Field(&r.Bio, validation.Length(0, 1000)),
		validation.Field(&r.Location, validation.Length(0, 200)),
		validation.Field(&r.DP, validation.Length(0, 1000)),
	)
}

// MaxPageNo bounds the requested page so the row offset fits any backend.
const MaxPageNo = math.MaxInt32

// ListUsersInput selects a page of the user listing.
type ListUsersInput struct {
	PageNo   int    `json:"pageNo"`
	PageSize int    `json:"pageSize"`
	SortBy   string `json:"sortBy"`
	SortDir  string `json:"sortDir"`
}

// DefaultListUsersInput returns the listing defaults.
func DefaultListUsersInput() ListUsersInput {
	return ListUsersInput{PageNo: 0, PageSize: 10, SortBy: "id", SortDir: string(model.SortAsc)}
}

func (r ListUsersInput) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.PageNo, validation.Min(0), validation.Max(MaxPageNo)),
		validation.Field(&r.PageSize, validation.Required, validation.Min(1), validation.Max(100)),
		validation.Field(&r.SortBy, validation.Required, validation.In("id", "name", "email", "username")),
		validation.Field(&r.SortDir, validation.Required, validation.In(string(model.SortAsc), string(model.SortDesc))),
	)
}

func (r ListUsersInput) PageRequest() model.PageRequest {
	return model.PageRequest{
		PageNo:   r.PageNo,
		PageSize: r.PageSize,
		SortBy:   r.SortBy,
		SortDir:  model.SortDirection(r.SortDir),
	}
}

type validatable interface {
	Validate() error
}

// validate runs v's rules and reports the first failing field, in field name
// order, as a ValidationFailed error.
func validate(v validatable, rejected map[string]any) error {
	err := v.Validate()
	if err == nil {
		return nil
	}

	var errs validation.Errors
	if !errors.As(err, &errs) {
		return apierrors.NewErrValidation("", err.Error(), nil)
	}

	fields := make([]string, 0, len(errs))
	for f := range errs {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	field := fields[0]
	return apierrors.NewErrValidation(field, errs[field].Error(), rejected[field])
}
