package model

import (
	"context"
	"time"
)

// UserStore defines persistence operations for user accounts.
type UserStore interface {
	Create(ctx context.Context, user User) (User, error)
	Save(ctx context.Context, user User) (User, error)
	GetByID(ctx context.Context, id int64) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Count(ctx context.Context) (int64, error)
	List(ctx context.Context, page PageRequest) ([]User, int64, error)
}

// User represents a stored account with its credentials and roles.
type User struct {
	ID              int64
	Email           string
	Username        string
	PasswordHash    string
	Name            string
	Bio             string
	Location        string
	ProfileImageRef string
	Roles           []Role
	AccountVerified bool
	Banned          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// HasRole reports whether the user holds a role of the given kind.
func (u User) HasRole(kind RoleKind) bool {
	for _, r := range u.Roles {
		if r.Name == kind {
			return true
		}
	}
	return false
}

// RoleKinds returns the kinds of all roles held by the user.
func (u User) RoleKinds() []RoleKind {
	kinds := make([]RoleKind, 0, len(u.Roles))
	for _, r := range u.Roles {
		kinds = append(kinds, r.Name)
	}
	return kinds
}
