package model

import "time"

// SessionManager issues and validates stateless session credentials.
type SessionManager interface {
	Issue(user User) (string, error)
	Parse(credential string) (Session, error)
}

// Session is the identity asserted by a valid session credential.
type Session struct {
	UserID    int64
	Email     string
	Roles     RoleSet
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// HasRole reports whether the session carries the given role.
func (s Session) HasRole(kind RoleKind) bool {
	return s.Roles.Has(kind)
}

// Owns reports whether the session was issued for user. Both the id and the
// email must match exactly.
func (s Session) Owns(user User) bool {
	return s.UserID == user.ID && s.Email == user.Email
}

// AuthResult is returned by operations that authenticate a user.
type AuthResult struct {
	User  User
	Token string
}
