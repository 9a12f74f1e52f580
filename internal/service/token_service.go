package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/dtroode/pawconnect-server/internal/logger"
	"github.com/dtroode/pawconnect-server/internal/model"
)

const tokenBytes = 32

// TokenService issues and consumes single-use verification and password
// reset tokens. Only the SHA-256 of a token value is stored.
type TokenService struct {
	store  model.TokenStore
	ttl    time.Duration
	logger *logger.Logger
	now    func() time.Time
}

func NewTokenService(store model.TokenStore, ttl time.Duration, logger *logger.Logger) *TokenService {
	return &TokenService{store: store, ttl: ttl, logger: logger, now: time.Now}
}

// WithStore returns a copy of the service bound to store, typically a
// transactional one.
func (s *TokenService) WithStore(store model.TokenStore) *TokenService {
	c := *s
	c.store = store
	return &c
}

// Issue creates a token for the user and returns its value. Live tokens the
// user holds for the same purpose are invalidated.
func (s *TokenService) Issue(ctx context.Context, userID int64, purpose model.TokenPurpose) (string, error) {
	value, err := newTokenValue()
	if err != nil {
		return "", err
	}

	if err := s.store.DeleteByUser(ctx, userID, purpose); err != nil {
		return "", fmt.Errorf("invalidate previous tokens: %w", err)
	}

	now := s.now()
	token := model.AuthToken{
		Hash:      hashToken(value),
		Purpose:   purpose,
		UserID:    userID,
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	}
	if err := s.store.Create(ctx, token); err != nil {
		return "", fmt.Errorf("persist token: %w", err)
	}

	s.logger.Debug("Token service: token issued",
		"user_id", userID,
		"purpose", purpose)

	return value, nil
}

// Consume validates the presented value for purpose and deletes it. It
// returns the bound user id, model.ErrInvalidToken when no such token exists
// and model.ErrExpiredToken when it existed past its expiry.
func (s *TokenService) Consume(ctx context.Context, value string, purpose model.TokenPurpose) (int64, error) {
	if value == "" {
		return 0, model.ErrInvalidToken
	}

	token, err := s.store.Consume(ctx, hashToken(value), purpose)
	if errors.Is(err, model.ErrNotFound) {
		return 0, model.ErrInvalidToken
	}
	if err != nil {
		return 0, fmt.Errorf("consume token: %w", err)
	}

	if token.Expired(s.now()) {
		s.logger.Info("Token service: expired token presented",
			"user_id", token.UserID,
			"purpose", purpose)
		return 0, model.ErrExpiredToken
	}

	return token.UserID, nil
}

// Sweep deletes expired tokens and returns how many were removed.
func (s *TokenService) Sweep(ctx context.Context) (int64, error) {
	n, err := s.store.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("sweep expired tokens: %w", err)
	}
	return n, nil
}

// RunSweeper calls Sweep every interval until ctx is done.
func (s *TokenService) RunSweeper(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			n, err := s.Sweep(ctx)
			if err != nil {
				s.logger.Error("Token service: sweep failed", "error", err.Error())
				continue
			}
			if n > 0 {
				s.logger.Info("Token service: expired tokens removed", "count", n)
			}
		}
	}
}

func newTokenValue() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func hashToken(value string) []byte {
	h := sha256.Sum256([]byte(value))
	return h[:]
}
