package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dtroode/pawconnect-server/internal/model"
)

var _ model.RoleStore = (*RoleRepository)(nil)

type RoleRepository struct {
	db DBTX
}

func NewRoleRepository(db DBTX) *RoleRepository {
	return &RoleRepository{db: db}
}

// GetOrCreate upserts the role so concurrent callers observe the same row.
func (r *RoleRepository) GetOrCreate(ctx context.Context, name model.RoleKind) (model.Role, error) {
	const query = `INSERT INTO roles (name) VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name`

	var role model.Role
	if err := r.db.QueryRowContext(ctx, query, string(name)).Scan(&role.ID, &role.Name); err != nil {
		return model.Role{}, fmt.Errorf("failed to get or create role %s: %w", name, err)
	}
	return role, nil
}

func (r *RoleRepository) GetByName(ctx context.Context, name model.RoleKind) (model.Role, error) {
	const query = `SELECT id, name FROM roles WHERE name = $1`

	var role model.Role
	if err := r.db.QueryRowContext(ctx, query, string(name)).Scan(&role.ID, &role.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Role{}, model.ErrNotFound
		}
		return model.Role{}, fmt.Errorf("failed to get role %s: %w", name, err)
	}
	return role, nil
}
