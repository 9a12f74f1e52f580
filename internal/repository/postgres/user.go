package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dtroode/pawconnect-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

// userColumns selects a user with its roles folded into "id:name" pairs.
const userColumns = `u.id, u.email, u.username, u.password_hash, u.name, u.bio, u.location,
	u.profile_image_ref, u.account_verified, u.banned, u.created_at, u.updated_at,
	COALESCE(string_agg(r.id::text || ':' || r.name, ',' ORDER BY r.id), '') AS roles`

const userFrom = `FROM users u
	LEFT JOIN user_roles ur ON ur.user_id = u.id
	LEFT JOIN roles r ON r.id = ur.role_id`

// sortColumns whitelists the sortable listing columns.
var sortColumns = map[string]string{
	"id":       "u.id",
	"name":     "u.name",
	"email":    "u.email",
	"username": "u.username",
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (model.User, error) {
	var (
		user  model.User
		roles string
	)
	err := row.Scan(
		&user.ID, &user.Email, &user.Username, &user.PasswordHash, &user.Name, &user.Bio, &user.Location,
		&user.ProfileImageRef, &user.AccountVerified, &user.Banned, &user.CreatedAt, &user.UpdatedAt,
		&roles,
	)
	if err != nil {
		return model.User{}, err
	}

	user.Roles, err = parseRoles(roles)
	if err != nil {
		return model.User{}, err
	}

	return user, nil
}

func parseRoles(s string) ([]model.Role, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	roles := make([]model.Role, 0, len(parts))
	for _, p := range parts {
		idStr, name, ok := strings.Cut(p, ":")
		if !ok {
			return nil, fmt.Errorf("malformed role entry %q", p)
		}
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed role id %q: %w", idStr, err)
		}
		roles = append(roles, model.Role{ID: id, Name: model.RoleKind(name)})
	}
	return roles, nil
}

func (r *UserRepository) getBy(ctx context.Context, column string, value any) (model.User, error) {
	query := `SELECT ` + userColumns + ` ` + userFrom + `
		WHERE u.` + column + ` = $1
		GROUP BY u.id`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, value))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by %s: %w", column, err)
	}

	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (model.User, error) {
	return r.getBy(ctx, "id", id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	return r.getBy(ctx, "email", email)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (model.User, error) {
	return r.getBy(ctx, "username", username)
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "email", email)
}

func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, "username", username)
}

func (r *UserRepository) exists(ctx context.Context, column, value string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE ` + column + ` = $1)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, value).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check user %s: %w", column, err)
	}
	return exists, nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return n, nil
}

// Create inserts the user and links its roles in one transaction.
func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	const query = `INSERT INTO users (email, username, password_hash, name, bio, location,
			profile_image_ref, account_verified, banned)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`

	err := inTx(ctx, r.db, func(ctx context.Context, tx DBTX) error {
		err := tx.QueryRowContext(ctx, query,
			user.Email, user.Username, user.PasswordHash, user.Name, user.Bio, user.Location,
			user.ProfileImageRef, user.AccountVerified, user.Banned,
		).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
		if err != nil {
			return wrapDuplicate(err)
		}
		return linkRoles(ctx, tx, user.ID, user.Roles)
	})
	if err != nil {
		if errors.Is(err, model.ErrDuplicate) {
			return model.User{}, err
		}
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Save updates the mutable columns of an existing user and replaces its roles.
func (r *UserRepository) Save(ctx context.Context, user model.User) (model.User, error) {
	const query = `UPDATE users SET email = $2, username = $3, password_hash = $4, name = $5,
			bio = $6, location = $7, profile_image_ref = $8, account_verified = $9, banned = $10,
			updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at`

	err := inTx(ctx, r.db, func(ctx context.Context, tx DBTX) error {
		err := tx.QueryRowContext(ctx, query,
			user.ID, user.Email, user.Username, user.PasswordHash, user.Name,
			user.Bio, user.Location, user.ProfileImageRef, user.AccountVerified, user.Banned,
		).Scan(&user.CreatedAt, &user.UpdatedAt)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return model.ErrNotFound
			}
			return wrapDuplicate(err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM user_roles WHERE user_id = $1`, user.ID); err != nil {
			return err
		}
		return linkRoles(ctx, tx, user.ID, user.Roles)
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) || errors.Is(err, model.ErrDuplicate) {
			return model.User{}, err
		}
		return model.User{}, fmt.Errorf("failed to save user: %w", err)
	}

	return user, nil
}

func linkRoles(ctx context.Context, tx DBTX, userID int64, roles []model.Role) error {
	const query = `INSERT INTO user_roles (user_id, role_id)
		SELECT $1, id FROM roles WHERE name = $2
		ON CONFLICT DO NOTHING`

	for _, role := range roles {
		if _, err := tx.ExecContext(ctx, query, userID, string(role.Name)); err != nil {
			return fmt.Errorf("failed to link role %s: %w", role.Name, err)
		}
	}
	return nil
}

// List returns one page of users and the total number of users.
func (r *UserRepository) List(ctx context.Context, page model.PageRequest) ([]model.User, int64, error) {
	column, ok := sortColumns[page.SortBy]
	if !ok {
		return nil, 0, fmt.Errorf("unsupported sort column %q", page.SortBy)
	}
	dir := "ASC"
	if page.SortDir == model.SortDesc {
		dir = "DESC"
	}

	total, err := r.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + userColumns + ` ` + userFrom + `
		GROUP BY u.id
		ORDER BY ` + column + ` ` + dir + `, u.id ` + dir + `
		LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, page.PageSize, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := make([]model.User, 0, page.PageSize)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, total, nil
}
