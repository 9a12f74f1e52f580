package model

import "errors"

var (
	// ErrNotFound is returned by stores when a lookup has no result.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned by stores when a unique constraint is violated.
	ErrDuplicate = errors.New("duplicate identity")

	// ErrInvalidToken means the presented token does not exist for the purpose.
	ErrInvalidToken = errors.New("token not found")
	// ErrExpiredToken means the presented token existed but its TTL elapsed.
	ErrExpiredToken = errors.New("token expired")
	// ErrInvalidSession means a session credential failed signature or expiry checks.
	ErrInvalidSession = errors.New("invalid session")
)

// DuplicateError reports which identity field collided with an existing row.
// It matches ErrDuplicate with errors.Is.
type DuplicateError struct {
	Field string
}

func (e *DuplicateError) Error() string {
	if e.Field == "" {
		return ErrDuplicate.Error()
	}
	return ErrDuplicate.Error() + ": " + e.Field
}

func (e *DuplicateError) Is(target error) bool {
	return target == ErrDuplicate
}
