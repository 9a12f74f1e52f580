// Package memory keeps all application state in process memory. It backs the
// server when no database is configured and serves as a fast fake in tests.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/dtroode/pawconnect-server/internal/model"
)

var _ model.TxManager = (*Store)(nil)

type state struct {
	users      map[int64]model.User
	roles      map[model.RoleKind]model.Role
	tokens     map[string]model.AuthToken
	adoptions  []model.AdoptionPost
	missing    []model.MissingPost
	donations  []model.DonationPost
	nextUserID int64
	nextRoleID int64
	nextTokID  int64
	nextPostID int64
}

func newState() *state {
	return &state{
		users:  make(map[int64]model.User),
		roles:  make(map[model.RoleKind]model.Role),
		tokens: make(map[string]model.AuthToken),
	}
}

func (s *state) clone() *state {
	c := *s
	c.users = make(map[int64]model.User, len(s.users))
	for id, u := range s.users {
		u.Roles = slices.Clone(u.Roles)
		c.users[id] = u
	}
	c.roles = maps.Clone(s.roles)
	c.tokens = maps.Clone(s.tokens)
	c.adoptions = slices.Clone(s.adoptions)
	c.missing = slices.Clone(s.missing)
	c.donations = slices.Clone(s.donations)
	return &c
}

// Store is a mutex-guarded in-memory database.
type Store struct {
	mu    sync.Mutex
	state *state
}

func NewStore() *Store {
	return &Store{state: newState()}
}

// Stores returns stores that lock the Store per operation.
func (s *Store) Stores() model.Stores {
	return s.stores(false)
}

func (s *Store) stores(held bool) model.Stores {
	v := view{store: s, held: held}
	return model.Stores{
		Users:    &UserRepository{view: v},
		Roles:    &RoleRepository{view: v},
		Tokens:   &TokenRepository{view: v},
		Listings: &ListingRepository{view: v},
	}
}

// WithinTx holds the lock for the whole of fn and restores the prior state
// if fn fails or panics.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, stores model.Stores) error) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.state.clone()
	defer func() {
		if p := recover(); p != nil {
			s.state = snapshot
			panic(p)
		}
		if err != nil {
			s.state = snapshot
		}
	}()

	return fn(ctx, s.stores(true))
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error {
	return nil
}

// view runs operations against the current state, locking unless the lock
// is already held by an enclosing transaction.
type view struct {
	store *Store
	held  bool
}

func (v view) do(fn func(st *state) error) error {
	if !v.held {
		v.store.mu.Lock()
		defer v.store.mu.Unlock()
	}
	return fn(v.store.state)
}
