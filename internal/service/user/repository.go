package user

import (
	"context"

	"github.com/stridehq/stride/internal/domain"
)

// Repository defines the persistence operations the user service needs.
type Repository interface {
	// GetByID returns the user with the given id, or ErrNotFound.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// Update persists profile fields. A violated unique constraint surfaces
	// as ErrEmailTaken or ErrUsernameTaken; a missing row as ErrNotFound.
	Update(ctx context.Context, user *domain.User) error
}
