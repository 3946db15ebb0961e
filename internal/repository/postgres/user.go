package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/stridehq/stride/internal/domain"
	"github.com/stridehq/stride/internal/service/auth"
	"github.com/stridehq/stride/internal/service/user"
)

// UserRepo implements auth.Repository and user.Repository against PostgreSQL.
// It also serves as the session manager's user loader. Each method maps
// failures to the sentinels of the service that calls it.
type UserRepo struct{ db *sql.DB }

// NewUserRepo creates a Postgres-backed user repository.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

const userColumns = `id, username, email, password_hash, role, created_at, updated_at`

func scanUser(row *sql.Row) (*domain.User, error) {
	u := &domain.User{}
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, `
		SELECT `+userColumns+` FROM users WHERE id = $1
	`, id))
	if err == sql.ErrNoRows {
		return nil, user.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (r *UserRepo) GetByEmailOrUsername(ctx context.Context, principal string) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, `
		SELECT `+userColumns+` FROM users WHERE email = $1 OR username = $1
	`, principal))
	if err == sql.ErrNoRows {
		return nil, auth.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by principal: %w", err)
	}
	return u, nil
}

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, username, email, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`, u.ID, u.Username, u.Email, u.PasswordHash, u.Role)
	if err != nil {
		if uniqueViolation(err, "users_email_key") {
			return auth.ErrEmailTaken
		}
		if uniqueViolation(err, "users_username_key") {
			return auth.ErrUsernameTaken
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *UserRepo) Update(ctx context.Context, u *domain.User) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET username = $1, email = $2, updated_at = NOW()
		WHERE id = $3
	`, u.Username, u.Email, u.ID)
	if err != nil {
		if uniqueViolation(err, "users_email_key") {
			return user.ErrEmailTaken
		}
		if uniqueViolation(err, "users_username_key") {
			return user.ErrUsernameTaken
		}
		return fmt.Errorf("update user: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return user.ErrNotFound
	}
	return nil
}
