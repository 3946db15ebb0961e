package contexts

import (
	"context"

	"github.com/stridehq/stride/internal/domain"
)

// Repository defines the data access contract for contexts.
// Implementations must be safe for concurrent use.
type Repository interface {
	// Get returns one of the user's contexts, or ErrNotFound.
	Get(ctx context.Context, userID, id string) (*domain.Context, error)

	// GetByRole returns the user's context with the given role (e.g. the
	// INBOX), or ErrNotFound.
	GetByRole(ctx context.Context, userID string, role domain.ContextRole) (*domain.Context, error)

	// List returns the user's contexts, Inbox first, then by name ascending.
	List(ctx context.Context, userID string) ([]domain.Context, error)

	// Create inserts a new context.
	Create(ctx context.Context, c *domain.Context) error
}
