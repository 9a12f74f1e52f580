package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/pawconnect-server/internal/model"
)

func testUser() model.User {
	return model.User{
		ID:    7,
		Email: "jane@pawconnect.com",
		Roles: []model.Role{{ID: 2, Name: model.RoleUser}},
	}
}

func TestJWT_Roundtrip(t *testing.T) {
	j := NewJWT("secret", time.Hour, "pawconnect")

	tok, err := j.Issue(testUser())
	require.NoError(t, err)

	session, err := j.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, int64(7), session.UserID)
	assert.Equal(t, "jane@pawconnect.com", session.Email)
	assert.True(t, session.HasRole(model.RoleUser))
	assert.False(t, session.HasRole(model.RoleAdmin))
	assert.WithinDuration(t, session.IssuedAt.Add(time.Hour), session.ExpiresAt, time.Second)
}

func TestJWT_Expired(t *testing.T) {
	j := NewJWT("secret", time.Minute, "pawconnect")
	issued := time.Now().Add(-2 * time.Minute)
	j.now = func() time.Time { return issued }

	tok, err := j.Issue(testUser())
	require.NoError(t, err)

	j.now = time.Now
	_, err = j.Parse(tok)
	assert.ErrorIs(t, err, model.ErrInvalidSession)
}

func TestJWT_WrongSecret(t *testing.T) {
	tok, err := NewJWT("secret", time.Hour, "pawconnect").Issue(testUser())
	require.NoError(t, err)

	_, err = NewJWT("other", time.Hour, "pawconnect").Parse(tok)
	assert.ErrorIs(t, err, model.ErrInvalidSession)
}

func TestJWT_WrongIssuer(t *testing.T) {
	tok, err := NewJWT("secret", time.Hour, "someone-else").Issue(testUser())
	require.NoError(t, err)

	_, err = NewJWT("secret", time.Hour, "pawconnect").Parse(tok)
	assert.ErrorIs(t, err, model.ErrInvalidSession)
}

func TestJWT_Garbage(t *testing.T) {
	_, err := NewJWT("secret", time.Hour, "pawconnect").Parse("not.a.jwt")
	assert.ErrorIs(t, err, model.ErrInvalidSession)
}

func TestJWT_RejectsNoneAlgorithm(t *testing.T) {
	now := time.Now()
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "pawconnect",
			Subject:   "jane@pawconnect.com",
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		UserID:    7,
		TokenType: typeAccess,
	})
	tok, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewJWT("secret", time.Hour, "pawconnect").Parse(tok)
	assert.ErrorIs(t, err, model.ErrInvalidSession)
}

func TestJWT_TypeMismatch(t *testing.T) {
	now := time.Now()
	other := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "pawconnect",
			Subject:   "jane@pawconnect.com",
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		UserID:    7,
		TokenType: "refresh",
	})
	tok, err := other.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewJWT("secret", time.Hour, "pawconnect").Parse(tok)
	assert.ErrorIs(t, err, model.ErrInvalidSession)
}
