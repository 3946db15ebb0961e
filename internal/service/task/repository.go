package task

import (
	"context"

	"github.com/stridehq/stride/internal/domain"
)

// Repository defines the data access contract for tasks. All reads and
// writes are scoped by owner. Implementations must be safe for concurrent use.
type Repository interface {
	// Get returns one of the user's tasks. Returns ErrNotFound when the id
	// doesn't exist or belongs to another user.
	Get(ctx context.Context, userID, id string) (*domain.Task, error)

	// ListByContext returns the user's tasks in one context, newest first.
	ListByContext(ctx context.Context, userID, contextID string) ([]domain.Task, error)

	// Create inserts a new task.
	Create(ctx context.Context, t *domain.Task) error

	// Update rewrites title, notes, completed, and context assignment.
	// Returns ErrNotFound when no row matched the owner/id pair.
	Update(ctx context.Context, t *domain.Task) error
}

// ContextSource resolves the caller's contexts. Satisfied by the contexts
// repository; the task service never writes contexts.
type ContextSource interface {
	Get(ctx context.Context, userID, id string) (*domain.Context, error)
	GetByRole(ctx context.Context, userID string, role domain.ContextRole) (*domain.Context, error)
}
