package auth

import (
	"context"

	"github.com/stridehq/stride/internal/domain"
)

// Repository defines the persistence operations the auth service needs.
type Repository interface {
	// GetByEmailOrUsername matches the principal against either column.
	// Returns ErrNotFound when no user matches.
	GetByEmailOrUsername(ctx context.Context, principal string) (*domain.User, error)

	// Create inserts the user. The insert and the uniqueness guarantees run
	// in a single statement; a violated constraint surfaces as ErrEmailTaken
	// or ErrUsernameTaken.
	Create(ctx context.Context, user *domain.User) error
}

// FlagSource resolves feature flags by slug. Satisfied by the feature flag
// repository.
type FlagSource interface {
	GetBySlug(ctx context.Context, slug string) (*domain.FeatureFlag, error)
}

// ContextProvisioner creates a new user's default contexts. Satisfied by the
// contexts service.
type ContextProvisioner interface {
	CreateDefaults(ctx context.Context, userID string) error
}
