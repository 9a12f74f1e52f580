package model

import "context"

// RoleStore is the registry of named roles.
type RoleStore interface {
	// GetOrCreate returns the role with the given name, creating it if absent.
	GetOrCreate(ctx context.Context, name RoleKind) (Role, error)
	GetByName(ctx context.Context, name RoleKind) (Role, error)
}

// RoleKind enumerates role names known to the system.
type RoleKind string

const (
	// RoleAdmin marks administrators. Administrators can never be banned.
	RoleAdmin RoleKind = "ROLE_ADMIN"
	// RoleUser is granted to every account created through signup.
	RoleUser RoleKind = "ROLE_USER"
)

// Valid reports whether k is a known role kind.
func (k RoleKind) Valid() bool {
	switch k {
	case RoleAdmin, RoleUser:
		return true
	}
	return false
}

// Role is reference data linked to users by relation.
type Role struct {
	ID   int64
	Name RoleKind
}

// RoleSet is a set of role kinds carried by a session.
type RoleSet map[RoleKind]struct{}

// NewRoleSet builds a RoleSet from the given kinds.
func NewRoleSet(kinds ...RoleKind) RoleSet {
	s := make(RoleSet, len(kinds))
	for _, k := range kinds {
		s[k] = struct{}{}
	}
	return s
}

// Has reports whether kind is in the set.
func (s RoleSet) Has(kind RoleKind) bool {
	_, ok := s[kind]
	return ok
}
