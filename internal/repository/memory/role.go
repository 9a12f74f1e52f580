package memory

import (
	"context"

	"github.com/dtroode/pawconnect-server/internal/model"
)

var _ model.RoleStore = (*RoleRepository)(nil)

type RoleRepository struct {
	view view
}

func NewRoleRepository(s *Store) *RoleRepository {
	return &RoleRepository{view: view{store: s}}
}

func (r *RoleRepository) GetOrCreate(_ context.Context, name model.RoleKind) (model.Role, error) {
	var role model.Role
	_ = r.view.do(func(st *state) error {
		if existing, ok := st.roles[name]; ok {
			role = existing
			return nil
		}
		st.nextRoleID++
		role = model.Role{ID: st.nextRoleID, Name: name}
		st.roles[name] = role
		return nil
	})
	return role, nil
}

func (r *RoleRepository) GetByName(_ context.Context, name model.RoleKind) (model.Role, error) {
	var role model.Role
	err := r.view.do(func(st *state) error {
		existing, ok := st.roles[name]
		if !ok {
			return model.ErrNotFound
		}
		role = existing
		return nil
	})
	return role, err
}
