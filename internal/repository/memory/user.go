package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dtroode/pawconnect-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

type UserRepository struct {
	view view
}

func NewUserRepository(s *Store) *UserRepository {
	return &UserRepository{view: view{store: s}}
}

func (st *state) conflict(u model.User) error {
	for id, other := range st.users {
		if id == u.ID {
			continue
		}
		if strings.EqualFold(other.Email, u.Email) {
			return &model.DuplicateError{Field: "email"}
		}
		if other.Username == u.Username {
			return &model.DuplicateError{Field: "username"}
		}
	}
	return nil
}

// resolveRoles links roles by name, as the database does.
func (st *state) resolveRoles(roles []model.Role) []model.Role {
	out := make([]model.Role, 0, len(roles))
	for _, r := range roles {
		if stored, ok := st.roles[r.Name]; ok && !slices.Contains(out, stored) {
			out = append(out, stored)
		}
	}
	slices.SortFunc(out, func(a, b model.Role) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

func (r *UserRepository) Create(_ context.Context, user model.User) (model.User, error) {
	err := r.view.do(func(st *state) error {
		user.ID = 0
		if err := st.conflict(user); err != nil {
			return err
		}
		st.nextUserID++
		user.ID = st.nextUserID
		now := time.Now()
		user.CreatedAt, user.UpdatedAt = now, now
		user.Roles = st.resolveRoles(user.Roles)
		st.users[user.ID] = user
		return nil
	})
	if err != nil {
		return model.User{}, err
	}
	return user, nil
}

func (r *UserRepository) Save(_ context.Context, user model.User) (model.User, error) {
	err := r.view.do(func(st *state) error {
		existing, ok := st.users[user.ID]
		if !ok {
			return model.ErrNotFound
		}
		if err := st.conflict(user); err != nil {
			return err
		}
		user.CreatedAt = existing.CreatedAt
		user.UpdatedAt = time.Now()
		user.Roles = st.resolveRoles(user.Roles)
		st.users[user.ID] = user
		return nil
	})
	if err != nil {
		return model.User{}, err
	}
	return user, nil
}

func (r *UserRepository) find(match func(model.User) bool) (model.User, error) {
	var found model.User
	err := r.view.do(func(st *state) error {
		for _, u := range st.users {
			if match(u) {
				found = u
				found.Roles = slices.Clone(u.Roles)
				return nil
			}
		}
		return model.ErrNotFound
	})
	return found, err
}

func (r *UserRepository) GetByID(_ context.Context, id int64) (model.User, error) {
	return r.find(func(u model.User) bool { return u.ID == id })
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (model.User, error) {
	return r.find(func(u model.User) bool { return u.Email == email })
}

func (r *UserRepository) GetByUsername(_ context.Context, username string) (model.User, error) {
	return r.find(func(u model.User) bool { return u.Username == username })
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	return err == nil, nil
}

func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := r.GetByUsername(ctx, username)
	return err == nil, nil
}

func (r *UserRepository) Count(context.Context) (int64, error) {
	var n int64
	_ = r.view.do(func(st *state) error {
		n = int64(len(st.users))
		return nil
	})
	return n, nil
}

func (r *UserRepository) List(_ context.Context, page model.PageRequest) ([]model.User, int64, error) {
	key, ok := sortKeys[page.SortBy]
	if !ok {
		return nil, 0, fmt.Errorf("unsupported sort column %q", page.SortBy)
	}

	var all []model.User
	_ = r.view.do(func(st *state) error {
		all = make([]model.User, 0, len(st.users))
		for _, u := range st.users {
			u.Roles = slices.Clone(u.Roles)
			all = append(all, u)
		}
		return nil
	})

	slices.SortFunc(all, func(a, b model.User) int {
		c := key(a, b)
		if c == 0 {
			c = cmp.Compare(a.ID, b.ID)
		}
		if page.SortDir == model.SortDesc {
			return -c
		}
		return c
	})

	total := int64(len(all))
	start := min(page.Offset(), len(all))
	end := min(start+page.PageSize, len(all))
	return all[start:end], total, nil
}

var sortKeys = map[string]func(a, b model.User) int{
	"id":       func(a, b model.User) int { return cmp.Compare(a.ID, b.ID) },
	"name":     func(a, b model.User) int { return strings.Compare(a.Name, b.Name) },
	"email":    func(a, b model.User) int { return strings.Compare(a.Email, b.Email) },
	"username": func(a, b model.User) int { return strings.Compare(a.Username, b.Username) },
}
