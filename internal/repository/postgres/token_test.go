package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/pawconnect-server/internal/model"
)

func TestTokenRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTokenRepository(db)
	now := time.Now()

	mock.ExpectExec(`(?s)INSERT INTO auth_tokens .*VALUES \(\$1, \$2, \$3, \$4, \$5\)`).
		WithArgs([]byte("hash"), "verification", int64(7), now.Add(time.Hour), now).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Create(context.Background(), model.AuthToken{
		Hash:      []byte("hash"),
		Purpose:   model.TokenPurposeVerification,
		UserID:    7,
		ExpiresAt: now.Add(time.Hour),
		CreatedAt: now,
	})
	require.NoError(t, err)
}

func TestTokenRepository_Consume(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTokenRepository(db)
	now := time.Now()

	mock.ExpectQuery(`(?s)DELETE FROM auth_tokens\s+WHERE token_hash = \$1 AND purpose = \$2\s+RETURNING`).
		WithArgs([]byte("hash"), "password_reset").
		WillReturnRows(sqlmock.NewRows([]string{"id", "token_hash", "purpose", "user_id", "expires_at", "created_at"}).
			AddRow(int64(1), []byte("hash"), "password_reset", int64(7), now, now))

	tok, err := repo.Consume(context.Background(), []byte("hash"), model.TokenPurposePasswordReset)
	require.NoError(t, err)
	assert.Equal(t, int64(7), tok.UserID)
	assert.Equal(t, model.TokenPurposePasswordReset, tok.Purpose)
}

func TestTokenRepository_Consume_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTokenRepository(db)

	mock.ExpectQuery(`(?s)DELETE FROM auth_tokens`).
		WithArgs([]byte("nope"), "verification").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Consume(context.Background(), []byte("nope"), model.TokenPurposeVerification)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestTokenRepository_DeleteByUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTokenRepository(db)

	mock.ExpectExec(`DELETE FROM auth_tokens WHERE user_id = \$1 AND purpose = \$2`).
		WithArgs(int64(7), "verification").
		WillReturnResult(sqlmock.NewResult(0, 2))

	require.NoError(t, repo.DeleteByUser(context.Background(), 7, model.TokenPurposeVerification))
}

func TestTokenRepository_DeleteExpired(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTokenRepository(db)
	now := time.Now()

	mock.ExpectExec(`DELETE FROM auth_tokens WHERE expires_at <= \$1`).
		WithArgs(now).
		WillReturnResult(sqlmock.NewResult(0, 4))

	n, err := repo.DeleteExpired(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}
