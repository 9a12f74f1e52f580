package memory

import (
	"context"
	"time"

	"github.com/dtroode/pawconnect-server/internal/model"
)

var _ model.TokenStore = (*TokenRepository)(nil)

type TokenRepository struct {
	view view
}

func NewTokenRepository(s *Store) *TokenRepository {
	return &TokenRepository{view: view{store: s}}
}

func (r *TokenRepository) Create(_ context.Context, token model.AuthToken) error {
	return r.view.do(func(st *state) error {
		if _, ok := st.tokens[string(token.Hash)]; ok {
			return model.ErrDuplicate
		}
		st.nextTokID++
		token.ID = st.nextTokID
		st.tokens[string(token.Hash)] = token
		return nil
	})
}

func (r *TokenRepository) Consume(_ context.Context, hash []byte, purpose model.TokenPurpose) (model.AuthToken, error) {
	var token model.AuthToken
	err := r.view.do(func(st *state) error {
		t, ok := st.tokens[string(hash)]
		if !ok || t.Purpose != purpose {
			return model.ErrNotFound
		}
		delete(st.tokens, string(hash))
		token = t
		return nil
	})
	return token, err
}

func (r *TokenRepository) DeleteByUser(_ context.Context, userID int64, purpose model.TokenPurpose) error {
	return r.view.do(func(st *state) error {
		for k, t := range st.tokens {
			if t.UserID == userID && t.Purpose == purpose {
				delete(st.tokens, k)
			}
		}
		return nil
	})
}

func (r *TokenRepository) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	var n int64
	err := r.view.do(func(st *state) error {
		for k, t := range st.tokens {
			if t.Expired(now) {
				delete(st.tokens, k)
				n++
			}
		}
		return nil
	})
	return n, err
}
