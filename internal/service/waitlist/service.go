package waitlist

import (
	"context"
	"net/http"
	"regexp"

	"github.com/google/uuid"

	"github.com/stridehq/stride/internal/apierr"
	"github.com/stridehq/stride/internal/domain"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Service implements waitlist signup. Stateless; safe for concurrent use.
type Service struct {
	repo Repository
}

// NewService creates a waitlist service backed by the given repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Join validates the email and records it, rejecting duplicates.
func (s *Service) Join(ctx context.Context, email string) (*domain.WaitlistEntry, error) {
	if email == "" {
		return nil, apierr.NewField("Email is required.", http.StatusUnprocessableEntity, "email")
	}
	if !emailRe.MatchString(email) {
		return nil, apierr.NewField("Invalid email address.", http.StatusUnprocessableEntity, "email")
	}

	entry := &domain.WaitlistEntry{
		ID:    uuid.New().String(),
		Email: email,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		if err == ErrDuplicate {
			return nil, apierr.NewField("This email is already on the waitlist.", http.StatusConflict, "email")
		}
		return nil, err
	}
	return entry, nil
}
