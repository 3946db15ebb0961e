package featureflag

import (
	"context"

	"github.com/stridehq/stride/internal/domain"
)

// Repository defines the data access contract for feature flags.
// Implementations must be safe for concurrent use.
type Repository interface {
	// Get returns a single flag. Returns ErrNotFound if it doesn't exist.
	Get(ctx context.Context, id string) (*domain.FeatureFlag, error)

	// GetBySlug returns the flag with the given slug, or ErrNotFound.
	GetBySlug(ctx context.Context, slug string) (*domain.FeatureFlag, error)

	// List returns every flag ordered by name ascending.
	List(ctx context.Context) ([]domain.FeatureFlag, error)

	// Create inserts a new flag. The name-uniqueness check and the insert run
	// in one transaction; ErrNameTaken is returned when either the check or
	// the unique index fires.
	Create(ctx context.Context, f *domain.FeatureFlag) error

	// Update rewrites a flag's mutable fields. Runs load, name re-check, and
	// write in one transaction. Returns ErrNotFound or ErrNameTaken.
	Update(ctx context.Context, f *domain.FeatureFlag) error

	// Delete removes a flag. Returns ErrNotFound when no row matched.
	Delete(ctx context.Context, id string) error
}
