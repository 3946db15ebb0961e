package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/stridehq/stride/internal/domain"
	"github.com/stridehq/stride/internal/service/contexts"
)

// ContextRepo implements contexts.Repository against PostgreSQL. It also
// satisfies the task service's context lookups.
type ContextRepo struct{ db *sql.DB }

// NewContextRepo creates a Postgres-backed context repository.
func NewContextRepo(db *sql.DB) *ContextRepo { return &ContextRepo{db: db} }

const contextColumns = `id, user_id, name, role, created_at`

func (r *ContextRepo) Get(ctx context.Context, userID, id string) (*domain.Context, error) {
	c := &domain.Context{}
	err := r.db.QueryRowContext(ctx, `
		SELECT `+contextColumns+` FROM contexts
		WHERE id = $1 AND user_id = $2
	`, id, userID).Scan(&c.ID, &c.UserID, &c.Name, &c.Role, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, contexts.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get context: %w", err)
	}
	return c, nil
}

func (r *ContextRepo) GetByRole(ctx context.Context, userID string, role domain.ContextRole) (*domain.Context, error) {
	c := &domain.Context{}
	err := r.db.QueryRowContext(ctx, `
		SELECT `+contextColumns+` FROM contexts
		WHERE user_id = $1 AND role = $2
	`, userID, role).Scan(&c.ID, &c.UserID, &c.Name, &c.Role, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, contexts.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get context by role: %w", err)
	}
	return c, nil
}

func (r *ContextRepo) List(ctx context.Context, userID string) ([]domain.Context, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+contextColumns+` FROM contexts
		WHERE user_id = $1
		ORDER BY (role = 'INBOX') DESC, name ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list contexts: %w", err)
	}
	defer rows.Close()

	var out []domain.Context
	for rows.Next() {
		var c domain.Context
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Role, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan context: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *ContextRepo) Create(ctx context.Context, c *domain.Context) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO contexts (id, user_id, name, role, created_at)
		VALUES ($1, $2, $3, $4, NOW())
	`, c.ID, c.UserID, c.Name, c.Role)
	if err != nil {
		return fmt.Errorf("create context: %w", err)
	}
	return nil
}
