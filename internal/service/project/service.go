package project

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/stridehq/stride/internal/apierr"
	"github.com/stridehq/stride/internal/domain"
)

// Field length limits for project requests.
const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 500
)

// Service implements project business logic. It is stateless and safe for
// concurrent use; the acting user is passed per call.
type Service struct {
	repo Repository
}

// NewService creates a project service backed by the given repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateRequest carries the form fields of a new-project submission.
type CreateRequest struct {
	Title       string
	Description string
}

// UpdateRequest carries the form fields of a project update. Completed stays
// a string until validation: it arrives as a form value, and "absent" must be
// distinguishable from false.
type UpdateRequest struct {
	ID          string
	Title       string
	Description string
	Completed   string
}

// ValidateCreate collects every violation in a new-project request.
func ValidateCreate(req CreateRequest) apierr.List {
	var errs apierr.List

	if req.Title == "" {
		errs = append(errs, apierr.NewField("Title is required.", http.StatusUnprocessableEntity, "title"))
	} else if len(req.Title) > MaxTitleLength {
		errs = append(errs, apierr.NewField(
			fmt.Sprintf("Title must be less than %d characters.", MaxTitleLength),
			http.StatusUnprocessableEntity, "title"))
	}

	if len(req.Description) > MaxDescriptionLength {
		errs = append(errs, apierr.NewField(
			fmt.Sprintf("Description must be less than %d characters.", MaxDescriptionLength),
			http.StatusUnprocessableEntity, "description"))
	}

	return errs
}

// ValidateUpdate collects every violation in an update request. A request
// carrying nothing but an id gets exactly one generic error; otherwise each
// violated field is reported with its own tag.
func ValidateUpdate(req UpdateRequest) apierr.List {
	var errs apierr.List

	if req.ID == "" {
		errs = append(errs, apierr.NewField("Project id is required.", http.StatusUnprocessableEntity, "id"))
	}

	if req.Title == "" && req.Description == "" && req.Completed == "" {
		if len(errs) == 0 {
			errs = append(errs, apierr.New("No updatable data received.", http.StatusUnprocessableEntity))
		}
		return errs
	}

	if req.Title == "" {
		errs = append(errs, apierr.NewField("Title is required.", http.StatusUnprocessableEntity, "title"))
	} else if len(req.Title) > MaxTitleLength {
		errs = append(errs, apierr.NewField(
			fmt.Sprintf("Title must be less than %d characters.", MaxTitleLength),
			http.StatusUnprocessableEntity, "title"))
	}

	if len(req.Description) > MaxDescriptionLength {
		errs = append(errs, apierr.NewField(
			fmt.Sprintf("Description must be less than %d characters.", MaxDescriptionLength),
			http.StatusUnprocessableEntity, "description"))
	}

	if req.Completed == "" {
		errs = append(errs, apierr.NewField("Completed status is required.", http.StatusUnprocessableEntity, "completed"))
	} else if _, err := strconv.ParseBool(req.Completed); err != nil {
		errs = append(errs, apierr.NewField("Invalid completed value received.", http.StatusUnprocessableEntity, "completed"))
	}

	return errs
}

func authorize(actor *domain.User) error {
	if actor == nil {
		return apierr.New("Unauthorized", http.StatusUnauthorized)
	}
	return nil
}

// Create validates and persists a new project for the actor.
func (s *Service) Create(ctx context.Context, actor *domain.User, req CreateRequest) (*domain.Project, error) {
	if err := authorize(actor); err != nil {
		return nil, err
	}
	if errs := ValidateCreate(req); len(errs) > 0 {
		return nil, errs
	}

	p := &domain.Project{
		ID:          uuid.New().String(),
		UserID:      actor.ID,
		Title:       req.Title,
		Description: req.Description,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Update validates and rewrites one of the actor's projects.
func (s *Service) Update(ctx context.Context, actor *domain.User, req UpdateRequest) (*domain.Project, error) {
	if err := authorize(actor); err != nil {
		return nil, err
	}
	if errs := ValidateUpdate(req); len(errs) > 0 {
		return nil, errs
	}

	completed, _ := strconv.ParseBool(req.Completed)
	p := &domain.Project{
		ID:          req.ID,
		UserID:      actor.ID,
		Title:       req.Title,
		Description: req.Description,
		Completed:   completed,
	}
	if err := s.repo.Update(ctx, p); err != nil {
		if err == ErrNotFound {
			return nil, apierr.New("Project not found.", http.StatusNotFound)
		}
		return nil, err
	}
	return p, nil
}

// Delete removes one of the actor's projects.
func (s *Service) Delete(ctx context.Context, actor *domain.User, id string) error {
	if err := authorize(actor); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, actor.ID, id); err != nil {
		if err == ErrNotFound {
			return apierr.New("Project not found.", http.StatusNotFound)
		}
		return err
	}
	return nil
}

// Get returns one of the actor's projects.
func (s *Service) Get(ctx context.Context, actor *domain.User, id string) (*domain.Project, error) {
	if err := authorize(actor); err != nil {
		return nil, err
	}
	p, err := s.repo.Get(ctx, actor.ID, id)
	if err != nil {
		if err == ErrNotFound {
			return nil, apierr.New("Project not found.", http.StatusNotFound)
		}
		return nil, err
	}
	return p, nil
}

// List returns the actor's projects, newest first.
func (s *Service) List(ctx context.Context, actor *domain.User) ([]domain.Project, error) {
	if err := authorize(actor); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, actor.ID)
}
