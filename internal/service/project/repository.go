package project

import (
	"context"

	"github.com/stridehq/stride/internal/domain"
)

// Repository defines the data access contract for projects. All reads and
// writes are scoped by owner. Implementations must be safe for concurrent use.
type Repository interface {
	// Get returns one of the user's projects. Returns ErrNotFound when the id
	// doesn't exist or belongs to another user.
	Get(ctx context.Context, userID, id string) (*domain.Project, error)

	// List returns the user's projects, newest first.
	List(ctx context.Context, userID string) ([]domain.Project, error)

	// Create inserts a new project.
	Create(ctx context.Context, p *domain.Project) error

	// Update rewrites title, description, and completed. Returns ErrNotFound
	// when no row matched the owner/id pair.
	Update(ctx context.Context, p *domain.Project) error

	// Delete removes one of the user's projects. Returns ErrNotFound when no
	// row matched.
	Delete(ctx context.Context, userID, id string) error
}
