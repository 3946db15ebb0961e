package waitlist

import (
	"context"

	"github.com/stridehq/stride/internal/domain"
)

// Repository defines the persistence operations the waitlist service needs.
type Repository interface {
	// Create inserts the entry. A violated unique constraint on email
	// surfaces as ErrDuplicate.
	Create(ctx context.Context, entry *domain.WaitlistEntry) error
}
