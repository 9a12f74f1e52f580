package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dtroode/pawconnect-server/internal/model"
)

var _ model.TokenStore = (*TokenRepository)(nil)

type TokenRepository struct {
	db DBTX
}

func NewTokenRepository(db DBTX) *TokenRepository {
	return &TokenRepository{db: db}
}

func (r *TokenRepository) Create(ctx context.Context, token model.AuthToken) error {
	const query = `
        INSERT INTO auth_tokens (token_hash, purpose, user_id, expires_at, created_at)
        VALUES ($1, $2, $3, $4, $5)
    `

	_, err := r.db.ExecContext(ctx, query,
		token.Hash, string(token.Purpose), token.UserID, token.ExpiresAt, token.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create auth token: %w", err)
	}
	return nil
}

// Consume deletes the matching row and returns it. The single DELETE makes
// consumption race-free: of two concurrent callers only one gets the row.
// Expired rows are consumed too so they cannot linger.
func (r *TokenRepository) Consume(ctx context.Context, hash []byte, purpose model.TokenPurpose) (model.AuthToken, error) {
	const query = `
        DELETE FROM auth_tokens
        WHERE token_hash = $1 AND purpose = $2
        RETURNING id, token_hash, purpose, user_id, expires_at, created_at
    `

	var t model.AuthToken
	err := r.db.QueryRowContext(ctx, query, hash, string(purpose)).Scan(
		&t.ID, &t.Hash, &t.Purpose, &t.UserID, &t.ExpiresAt, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.AuthToken{}, model.ErrNotFound
		}
		return model.AuthToken{}, fmt.Errorf("failed to consume auth token: %w", err)
	}
	return t, nil
}

func (r *TokenRepository) DeleteByUser(ctx context.Context, userID int64, purpose model.TokenPurpose) error {
	const query = `DELETE FROM auth_tokens WHERE user_id = $1 AND purpose = $2`

	if _, err := r.db.ExecContext(ctx, query, userID, string(purpose)); err != nil {
		return fmt.Errorf("failed to delete auth tokens: %w", err)
	}
	return nil
}

func (r *TokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	const query = `DELETE FROM auth_tokens WHERE expires_at <= $1`

	res, err := r.db.ExecContext(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired auth tokens: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted auth tokens: %w", err)
	}
	return n, nil
}
