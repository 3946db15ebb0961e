package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/stridehq/stride/internal/domain"
	"github.com/stridehq/stride/internal/service/task"
)

// TaskRepo implements task.Repository against PostgreSQL.
type TaskRepo struct{ db *sql.DB }

// NewTaskRepo creates a Postgres-backed task repository.
func NewTaskRepo(db *sql.DB) *TaskRepo { return &TaskRepo{db: db} }

const taskColumns = `id, user_id, context_id, title, COALESCE(notes,''), completed, created_at, updated_at`

func (r *TaskRepo) Get(ctx context.Context, userID, id string) (*domain.Task, error) {
	t := &domain.Task{}
	err := r.db.QueryRowContext(ctx, `
		SELECT `+taskColumns+` FROM tasks
		WHERE id = $1 AND user_id = $2
	`, id, userID).Scan(&t.ID, &t.UserID, &t.ContextID, &t.Title, &t.Notes, &t.Completed, &t.CreatedAt, &t.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, task.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

func (r *TaskRepo) ListByContext(ctx context.Context, userID, contextID string) ([]domain.Task, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+taskColumns+` FROM tasks
		WHERE user_id = $1 AND context_id = $2
		ORDER BY created_at DESC
	`, userID, contextID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var out []domain.Task
	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(&t.ID, &t.UserID, &t.ContextID, &t.Title, &t.Notes, &t.Completed, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TaskRepo) Create(ctx context.Context, t *domain.Task) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (id, user_id, context_id, title, notes, completed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`, t.ID, t.UserID, t.ContextID, t.Title, t.Notes, t.Completed)
	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (r *TaskRepo) Update(ctx context.Context, t *domain.Task) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE tasks SET title = $1, notes = $2, completed = $3, context_id = $4, updated_at = NOW()
		WHERE id = $5 AND user_id = $6
	`, t.Title, t.Notes, t.Completed, t.ContextID, t.ID, t.UserID)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return task.ErrNotFound
	}
	return nil
}
