package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dtroode/pawconnect-server/internal/model"
)

// Claims represents session claims. The subject is the user's email.
type Claims struct {
	jwt.RegisteredClaims
	UserID    int64            `json:"uid"`
	Roles     []model.RoleKind `json:"roles"`
	TokenType string           `json:"typ"`
}

// JWT implements SessionManager backed by symmetric HMAC.
type JWT struct {
	secretKey string
	ttl       time.Duration
	issuer    string
	now       func() time.Time
}

var _ model.SessionManager = (*JWT)(nil)

// NewJWT creates a new JWT session manager.
func NewJWT(secretKey string, ttl time.Duration, issuer string) *JWT {
	return &JWT{secretKey: secretKey, ttl: ttl, issuer: issuer, now: time.Now}
}

const typeAccess = "access"

// Issue signs a session credential for the user.
func (j *JWT) Issue(user model.User) (string, error) {
	now := j.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    j.issuer,
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
		UserID:    user.ID,
		Roles:     user.RoleKinds(),
		TokenType: typeAccess,
	})

	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return tokenString, nil
}

// Parse validates the credential and returns the session it asserts. All
// failures wrap model.ErrInvalidSession.
func (j *JWT) Parse(tokenString string) (model.Session, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	},
		jwt.WithIssuer(j.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return model.Session{}, errors.Join(model.ErrInvalidSession, fmt.Errorf("failed to parse session token: %w", err))
	}
	if !token.Valid {
		return model.Session{}, fmt.Errorf("%w: token is invalid", model.ErrInvalidSession)
	}
	if claims.TokenType != typeAccess {
		return model.Session{}, fmt.Errorf("%w: token type mismatch: %s", model.ErrInvalidSession, claims.TokenType)
	}
	if claims.UserID <= 0 || claims.Subject == "" {
		return model.Session{}, fmt.Errorf("%w: missing subject", model.ErrInvalidSession)
	}

	session := model.Session{
		UserID: claims.UserID,
		Email:  claims.Subject,
		Roles:  model.NewRoleSet(claims.Roles...),
	}
	if claims.IssuedAt != nil {
		session.IssuedAt = claims.IssuedAt.Time
	}
	session.ExpiresAt = claims.ExpiresAt.Time

	return session, nil
}

