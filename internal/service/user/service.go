package user

import (
	"context"
	"fmt"
	"net/http"
	"regexp"

	"github.com/stridehq/stride/internal/apierr"
	"github.com/stridehq/stride/internal/domain"
)

// Username constraints, matching account creation.
const (
	MinUsernameLength = 3
	MaxUsernameLength = 30
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Service implements profile updates. Stateless; safe for concurrent use.
type Service struct {
	repo Repository
}

// NewService creates a user service backed by the given repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// UpdateRequest carries the profile form fields.
type UpdateRequest struct {
	Username string
	Email    string
}

// ValidateUpdate collects every violation in a profile update request.
func ValidateUpdate(req UpdateRequest) apierr.List {
	var errs apierr.List
	if req.Email == "" {
		errs = append(errs, apierr.NewField("Email is required.", http.StatusUnprocessableEntity, "email"))
	} else if !emailRe.MatchString(req.Email) {
		errs = append(errs, apierr.NewField("Invalid email address.", http.StatusUnprocessableEntity, "email"))
	}
	if req.Username == "" {
		errs = append(errs, apierr.NewField("Username is required.", http.StatusUnprocessableEntity, "username"))
	} else if len(req.Username) < MinUsernameLength || len(req.Username) > MaxUsernameLength {
		errs = append(errs, apierr.NewField(
			fmt.Sprintf("Username must be between %d and %d characters.", MinUsernameLength, MaxUsernameLength),
			http.StatusUnprocessableEntity, "username"))
	}
	return errs
}

// Update changes the actor's own username and email. The caller is expected
// to refresh the session with the returned user.
func (s *Service) Update(ctx context.Context, actor *domain.User, req UpdateRequest) (*domain.User, error) {
	if actor == nil {
		return nil, apierr.New("Unauthorized", http.StatusUnauthorized)
	}
	if errs := ValidateUpdate(req); len(errs) > 0 {
		return nil, errs
	}

	current, err := s.repo.GetByID(ctx, actor.ID)
	if err != nil {
		if err == ErrNotFound {
			return nil, apierr.NewField("User not found.", http.StatusNotFound, "user")
		}
		return nil, err
	}

	current.Username = req.Username
	current.Email = req.Email
	if err := s.repo.Update(ctx, current); err != nil {
		switch err {
		case ErrEmailTaken:
			return nil, apierr.NewField("Email is already in use.", http.StatusConflict, "email")
		case ErrUsernameTaken:
			return nil, apierr.NewField("Username is already in use.", http.StatusConflict, "username")
		case ErrNotFound:
			return nil, apierr.NewField("User not found.", http.StatusNotFound, "user")
		}
		return nil, err
	}
	return current, nil
}
