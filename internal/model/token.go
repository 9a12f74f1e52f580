package model

import (
	"context"
	"time"
)

// TokenStore persists single-use verification and password reset tokens.
type TokenStore interface {
	Create(ctx context.Context, token AuthToken) error
	// Consume atomically deletes the token with the given hash and purpose
	// and returns it. A token can be consumed at most once.
	Consume(ctx context.Context, hash []byte, purpose TokenPurpose) (AuthToken, error)
	DeleteByUser(ctx context.Context, userID int64, purpose TokenPurpose) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// TokenPurpose separates verification tokens from password reset tokens.
type TokenPurpose string

const (
	// TokenPurposeVerification authorizes an email verification.
	TokenPurposeVerification TokenPurpose = "verification"
	// TokenPurposePasswordReset authorizes a password change.
	TokenPurposePasswordReset TokenPurpose = "password_reset"
)

// AuthToken is a stored token. Only the hash of the presented value is kept.
type AuthToken struct {
	ID        int64
	Hash      []byte
	Purpose   TokenPurpose
	UserID    int64
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the token is no longer valid at now.
func (t AuthToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
