package contexts

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/stridehq/stride/internal/apierr"
	"github.com/stridehq/stride/internal/domain"
)

// Service implements context business logic. It is stateless and safe for
// concurrent use; the acting user is passed per call.
type Service struct {
	repo Repository
}

// NewService creates a context service backed by the given repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func authorize(actor *domain.User) error {
	if actor == nil {
		return apierr.New("Unauthorized", http.StatusUnauthorized)
	}
	return nil
}

// List returns the actor's contexts ordered by name.
func (s *Service) List(ctx context.Context, actor *domain.User) ([]domain.Context, error) {
	if err := authorize(actor); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, actor.ID)
}

// GetByRole returns the actor's context with the given role. The inbox page
// loader uses this to resolve the INBOX context.
func (s *Service) GetByRole(ctx context.Context, actor *domain.User, role domain.ContextRole) (*domain.Context, error) {
	if err := authorize(actor); err != nil {
		return nil, err
	}
	c, err := s.repo.GetByRole(ctx, actor.ID, role)
	if err != nil {
		if err == ErrNotFound {
			return nil, apierr.New("Inbox not found.", http.StatusNotFound)
		}
		return nil, err
	}
	return c, nil
}

// CreateDefaults provisions the system contexts for a new account. Called by
// signup with the freshly created user's id.
func (s *Service) CreateDefaults(ctx context.Context, userID string) error {
	inbox := &domain.Context{
		ID:     uuid.New().String(),
		UserID: userID,
		Name:   "Inbox",
		Role:   domain.ContextInbox,
	}
	return s.repo.Create(ctx, inbox)
}
