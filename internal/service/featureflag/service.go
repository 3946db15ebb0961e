package featureflag

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"github.com/stridehq/stride/internal/apierr"
	"github.com/stridehq/stride/internal/domain"
)

// Field length limits for feature flag requests.
const (
	MaxNameLength        = 50
	MaxDescriptionLength = 300
)

// Service implements feature flag business logic. It is stateless and safe
// for concurrent use; the acting user is passed per call.
type Service struct {
	repo Repository
}

// NewService creates a feature flag service backed by the given repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Request carries the raw form fields of a create or update submission.
// IsEnabled stays a string until validation because it arrives as a form
// value; an empty value means "unchecked" and parses to false.
type Request struct {
	ID          string
	Name        string
	Description string
	IsEnabled   string
}

// Validate collects every violation in the request. The missing-name error is
// reported against the "title" field; the web form renders the name input
// under a "Title" label and looks errors up by that key.
func Validate(req Request) apierr.List {
	var errs apierr.List

	if req.Name != "" {
		if len(req.Name) > MaxNameLength {
			errs = append(errs, apierr.NewField(
				fmt.Sprintf("Name must be less than %d characters.", MaxNameLength),
				http.StatusUnprocessableEntity, "name"))
		}
	} else {
		errs = append(errs, apierr.NewField("Title is required.", http.StatusUnprocessableEntity, "title"))
	}

	if len(req.Description) > MaxDescriptionLength {
		errs = append(errs, apierr.NewField(
			fmt.Sprintf("Description must be less than %d characters.", MaxDescriptionLength),
			http.StatusUnprocessableEntity, "description"))
	}

	if req.IsEnabled != "" {
		if _, err := strconv.ParseBool(req.IsEnabled); err != nil {
			errs = append(errs, apierr.NewField("Invalid isEnabled value received.",
				http.StatusUnprocessableEntity, "isEnabled"))
		}
	}

	return errs
}

// authorize admits only ADMIN and SUPER_ADMIN actors. It is the first
// statement of every guarded operation so failures never touch persistence.
func authorize(actor *domain.User) error {
	if actor == nil || !actor.IsAdmin() {
		return apierr.New("Unauthorized", http.StatusUnauthorized)
	}
	return nil
}

// Create validates and persists a new flag, deriving its slug from the name.
func (s *Service) Create(ctx context.Context, actor *domain.User, req Request) (*domain.FeatureFlag, error) {
	if err := authorize(actor); err != nil {
		return nil, err
	}
	if errs := Validate(req); len(errs) > 0 {
		return nil, errs
	}

	enabled := false
	if req.IsEnabled != "" {
		enabled, _ = strconv.ParseBool(req.IsEnabled)
	}

	f := &domain.FeatureFlag{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Slug:        slug.Make(req.Name),
		Description: req.Description,
		IsEnabled:   enabled,
		UpdatedBy:   actor.ID,
	}

	if err := s.repo.Create(ctx, f); err != nil {
		if err == ErrNameTaken {
			return nil, apierr.New("Feature flag with this name already exists.", http.StatusConflict)
		}
		return nil, err
	}
	return f, nil
}

// Update validates and rewrites an existing flag. Renaming re-derives the
// slug and re-checks name uniqueness.
func (s *Service) Update(ctx context.Context, actor *domain.User, req Request) (*domain.FeatureFlag, error) {
	if err := authorize(actor); err != nil {
		return nil, err
	}
	if errs := Validate(req); len(errs) > 0 {
		return nil, errs
	}

	enabled := false
	if req.IsEnabled != "" {
		enabled, _ = strconv.ParseBool(req.IsEnabled)
	}

	f := &domain.FeatureFlag{
		ID:          req.ID,
		Name:        req.Name,
		Slug:        slug.Make(req.Name),
		Description: req.Description,
		IsEnabled:   enabled,
		UpdatedBy:   actor.ID,
	}

	if err := s.repo.Update(ctx, f); err != nil {
		switch err {
		case ErrNotFound:
			return nil, apierr.New("Feature flag not found.", http.StatusNotFound)
		case ErrNameTaken:
			return nil, apierr.New("Feature flag with this name already exists.", http.StatusConflict)
		}
		return nil, err
	}
	return f, nil
}

// Delete removes a flag by id.
func (s *Service) Delete(ctx context.Context, actor *domain.User, id string) error {
	if err := authorize(actor); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if err == ErrNotFound {
			return apierr.New("Feature flag not found.", http.StatusNotFound)
		}
		return err
	}
	return nil
}

// GetByID returns a single flag.
func (s *Service) GetByID(ctx context.Context, actor *domain.User, id string) (*domain.FeatureFlag, error) {
	if err := authorize(actor); err != nil {
		return nil, err
	}
	f, err := s.repo.Get(ctx, id)
	if err != nil {
		if err == ErrNotFound {
			return nil, apierr.New("Feature flag not found.", http.StatusNotFound)
		}
		return nil, err
	}
	return f, nil
}

// GetAll returns every flag ordered by name ascending. Unlike the other
// operations it takes no actor: the flag set is publicly readable.
func (s *Service) GetAll(ctx context.Context) ([]domain.FeatureFlag, error) {
	return s.repo.List(ctx)
}
