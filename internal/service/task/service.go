package task

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/stridehq/stride/internal/apierr"
	"github.com/stridehq/stride/internal/domain"
	"github.com/stridehq/stride/internal/service/contexts"
)

// Field length limits for task requests.
const (
	MaxTitleLength = 100
	MaxNotesLength = 1000
)

// Service implements task business logic. It is stateless and safe for
// concurrent use; the acting user is passed per call.
type Service struct {
	repo     Repository
	contexts ContextSource
}

// NewService creates a task service backed by the given repositories.
func NewService(repo Repository, ctxSource ContextSource) *Service {
	return &Service{repo: repo, contexts: ctxSource}
}

// QuickCreateRequest carries the two fields of the quick-add form.
type QuickCreateRequest struct {
	Title string
	Notes string
}

// CreateRequest carries the form fields of a full task creation. Completed
// is the raw form value; ContextRef is the client-encoded JSON reference
// ({"value": "<context id>"}) and may be empty to default to the Inbox.
type CreateRequest struct {
	Title      string
	Notes      string
	Completed  string
	ContextRef string
}

// UpdateRequest carries the form fields of a full task update. Completed is
// the raw form value; ContextRef is the client-encoded JSON reference
// ({"value": "<context id>"}) and may be empty to leave the context alone.
type UpdateRequest struct {
	ID         string
	Title      string
	Notes      string
	Completed  string
	ContextRef string
}

// ParseContextRef extracts the context id from the client-encoded reference.
// An empty reference means "no reassignment". Malformed JSON or a missing
// value is a validation failure.
func ParseContextRef(raw string) (string, *apierr.Error) {
	if raw == "" {
		return "", nil
	}
	var ref struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal([]byte(raw), &ref); err != nil || ref.Value == "" {
		return "", apierr.NewField("Invalid context received.", http.StatusUnprocessableEntity, "contextId")
	}
	return ref.Value, nil
}

func validateTitleNotes(title, notes string) apierr.List {
	var errs apierr.List
	if title == "" {
		errs = append(errs, apierr.NewField("Title is required.", http.StatusUnprocessableEntity, "title"))
	} else if len(title) > MaxTitleLength {
		errs = append(errs, apierr.NewField(
			fmt.Sprintf("Title must be less than %d characters.", MaxTitleLength),
			http.StatusUnprocessableEntity, "title"))
	}
	if len(notes) > MaxNotesLength {
		errs = append(errs, apierr.NewField(
			fmt.Sprintf("Notes must be less than %d characters.", MaxNotesLength),
			http.StatusUnprocessableEntity, "notes"))
	}
	return errs
}

// ValidateQuickCreate collects every violation in a quick-add request.
func ValidateQuickCreate(req QuickCreateRequest) apierr.List {
	return validateTitleNotes(req.Title, req.Notes)
}

// ValidateCreate collects every violation in a full creation request.
func ValidateCreate(req CreateRequest) apierr.List {
	errs := validateTitleNotes(req.Title, req.Notes)
	if req.Completed != "" {
		if _, err := strconv.ParseBool(req.Completed); err != nil {
			errs = append(errs, apierr.NewField("Invalid completed value received.",
				http.StatusUnprocessableEntity, "completed"))
		}
	}
	if _, err := ParseContextRef(req.ContextRef); err != nil {
		errs = append(errs, err)
	}
	return errs
}

// ValidateUpdate collects every violation in a full update request.
func ValidateUpdate(req UpdateRequest) apierr.List {
	var errs apierr.List
	if req.ID == "" {
		errs = append(errs, apierr.NewField("Task id is required.", http.StatusUnprocessableEntity, "id"))
	}
	errs = append(errs, validateTitleNotes(req.Title, req.Notes)...)
	if req.Completed != "" {
		if _, err := strconv.ParseBool(req.Completed); err != nil {
			errs = append(errs, apierr.NewField("Invalid completed value received.",
				http.StatusUnprocessableEntity, "completed"))
		}
	}
	if _, err := ParseContextRef(req.ContextRef); err != nil {
		errs = append(errs, err)
	}
	return errs
}

func authorize(actor *domain.User) error {
	if actor == nil {
		return apierr.New("Unauthorized", http.StatusUnauthorized)
	}
	return nil
}

// QuickCreate creates a minimal task in the actor's Inbox context.
func (s *Service) QuickCreate(ctx context.Context, actor *domain.User, req QuickCreateRequest) (*domain.Task, error) {
	if err := authorize(actor); err != nil {
		return nil, err
	}
	if errs := ValidateQuickCreate(req); len(errs) > 0 {
		return nil, errs
	}

	inbox, err := s.contexts.GetByRole(ctx, actor.ID, domain.ContextInbox)
	if err != nil {
		if err == contexts.ErrNotFound {
			return nil, apierr.New("Inbox not found.", http.StatusNotFound)
		}
		return nil, err
	}

	t := &domain.Task{
		ID:        uuid.New().String(),
		UserID:    actor.ID,
		ContextID: &inbox.ID,
		Title:     req.Title,
		Notes:     req.Notes,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Create creates a task with the full field set. An explicit context
// reference must name one of the actor's own contexts; without one the task
// lands in the Inbox.
func (s *Service) Create(ctx context.Context, actor *domain.User, req CreateRequest) (*domain.Task, error) {
	if err := authorize(actor); err != nil {
		return nil, err
	}
	if errs := ValidateCreate(req); len(errs) > 0 {
		return nil, errs
	}

	var contextID string
	if ref, _ := ParseContextRef(req.ContextRef); ref != "" {
		target, err := s.contexts.Get(ctx, actor.ID, ref)
		if err != nil {
			if err == contexts.ErrNotFound {
				return nil, apierr.NewField("Invalid context received.",
					http.StatusUnprocessableEntity, "contextId")
			}
			return nil, err
		}
		contextID = target.ID
	} else {
		inbox, err := s.contexts.GetByRole(ctx, actor.ID, domain.ContextInbox)
		if err != nil {
			if err == contexts.ErrNotFound {
				return nil, apierr.New("Inbox not found.", http.StatusNotFound)
			}
			return nil, err
		}
		contextID = inbox.ID
	}

	t := &domain.Task{
		ID:        uuid.New().String(),
		UserID:    actor.ID,
		ContextID: &contextID,
		Title:     req.Title,
		Notes:     req.Notes,
	}
	if req.Completed != "" {
		t.Completed, _ = strconv.ParseBool(req.Completed)
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Update rewrites one of the actor's tasks, reassigning its context when the
// request carries a context reference.
func (s *Service) Update(ctx context.Context, actor *domain.User, req UpdateRequest) (*domain.Task, error) {
	if err := authorize(actor); err != nil {
		return nil, err
	}
	if errs := ValidateUpdate(req); len(errs) > 0 {
		return nil, errs
	}

	t, err := s.repo.Get(ctx, actor.ID, req.ID)
	if err != nil {
		if err == ErrNotFound {
			return nil, apierr.New("Task not found.", http.StatusNotFound)
		}
		return nil, err
	}

	t.Title = req.Title
	t.Notes = req.Notes
	if req.Completed != "" {
		t.Completed, _ = strconv.ParseBool(req.Completed)
	}

	if contextID, _ := ParseContextRef(req.ContextRef); contextID != "" {
		// The target must be one of the actor's own contexts.
		target, err := s.contexts.Get(ctx, actor.ID, contextID)
		if err != nil {
			if err == contexts.ErrNotFound {
				return nil, apierr.NewField("Invalid context received.",
					http.StatusUnprocessableEntity, "contextId")
			}
			return nil, err
		}
		t.ContextID = &target.ID
	}

	if err := s.repo.Update(ctx, t); err != nil {
		if err == ErrNotFound {
			return nil, apierr.New("Task not found.", http.StatusNotFound)
		}
		return nil, err
	}
	return t, nil
}

// ListByContext returns the actor's tasks in one of their contexts.
func (s *Service) ListByContext(ctx context.Context, actor *domain.User, contextID string) ([]domain.Task, error) {
	if err := authorize(actor); err != nil {
		return nil, err
	}
	if _, err := s.contexts.Get(ctx, actor.ID, contextID); err != nil {
		if err == contexts.ErrNotFound {
			return nil, apierr.New("Context not found.", http.StatusNotFound)
		}
		return nil, err
	}
	return s.repo.ListByContext(ctx, actor.ID, contextID)
}
