package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/stridehq/stride/internal/domain"
	"github.com/stridehq/stride/internal/service/waitlist"
)

// WaitlistRepo implements waitlist.Repository against PostgreSQL.
type WaitlistRepo struct{ db *sql.DB }

// NewWaitlistRepo creates a Postgres-backed waitlist repository.
func NewWaitlistRepo(db *sql.DB) *WaitlistRepo { return &WaitlistRepo{db: db} }

func (r *WaitlistRepo) Create(ctx context.Context, e *domain.WaitlistEntry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO waitlist (id, email, created_at)
		VALUES ($1, $2, NOW())
	`, e.ID, e.Email)
	if err != nil {
		if uniqueViolation(err, "waitlist_email_key") {
			return waitlist.ErrDuplicate
		}
		return fmt.Errorf("create waitlist entry: %w", err)
	}
	return nil
}
