package task

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stridehq/stride/internal/apierr"
	"github.com/stridehq/stride/internal/domain"
	"github.com/stridehq/stride/internal/service/contexts"
)

type mockRepo struct {
	mu   sync.Mutex
	byID map[string]*domain.Task
}

func newMockRepo() *mockRepo {
	return &mockRepo{byID: make(map[string]*domain.Task)}
}

func (m *mockRepo) Get(_ context.Context, userID, id string) (*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.byID[id]
	if !ok || t.UserID != userID {
		return nil, ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *mockRepo) ListByContext(_ context.Context, userID, contextID string) ([]domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Task
	for _, t := range m.byID {
		if t.UserID == userID && t.ContextID != nil && *t.ContextID == contextID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (m *mockRepo) Create(_ context.Context, t *domain.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *t
	m.byID[t.ID] = &cp
	return nil
}

func (m *mockRepo) Update(_ context.Context, t *domain.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.byID[t.ID]
	if !ok || existing.UserID != t.UserID {
		return ErrNotFound
	}
	cp := *t
	m.byID[t.ID] = &cp
	return nil
}

// mockContexts satisfies ContextSource with a fixed set of contexts.
type mockContexts struct {
	byID map[string]*domain.Context
}

func (m *mockContexts) Get(_ context.Context, userID, id string) (*domain.Context, error) {
	c, ok := m.byID[id]
	if !ok || c.UserID != userID {
		return nil, contexts.ErrNotFound
	}
	return c, nil
}

func (m *mockContexts) GetByRole(_ context.Context, userID string, role domain.ContextRole) (*domain.Context, error) {
	for _, c := range m.byID {
		if c.UserID == userID && c.Role == role {
			return c, nil
		}
	}
	return nil, contexts.ErrNotFound
}

var owner = &domain.User{ID: "u-1", Username: "ada", Role: domain.RoleUser}

func newTestService(withInbox bool) (*Service, *mockRepo, *mockContexts) {
	repo := newMockRepo()
	ctxs := &mockContexts{byID: map[string]*domain.Context{}}
	if withInbox {
		ctxs.byID["ctx-inbox"] = &domain.Context{ID: "ctx-inbox", UserID: owner.ID, Name: "Inbox", Role: domain.ContextInbox}
		ctxs.byID["ctx-home"] = &domain.Context{ID: "ctx-home", UserID: owner.ID, Name: "At Home", Role: domain.ContextNone}
	}
	return NewService(repo, ctxs), repo, ctxs
}

func TestParseContextRef(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"empty means no reassignment", "", "", false},
		{"valid reference", `{"value":"ctx-home"}`, "ctx-home", false},
		{"malformed json", `{value: ctx-home}`, "", true},
		{"not json at all", "ctx-home", "", true},
		{"missing value", `{"label":"At Home"}`, "", true},
		{"empty value", `{"value":""}`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseContextRef(tt.raw)
			if tt.wantErr {
				require.NotNil(t, err)
				assert.Equal(t, "contextId", err.Field)
				assert.Equal(t, http.StatusUnprocessableEntity, err.Status)
				return
			}
			require.Nil(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQuickCreate_LandsInInbox(t *testing.T) {
	svc, _, _ := newTestService(true)

	created, err := svc.QuickCreate(context.Background(), owner, QuickCreateRequest{
		Title: "Buy milk", Notes: "oat, not dairy",
	})

	require.NoError(t, err)
	require.NotNil(t, created.ContextID)
	assert.Equal(t, "ctx-inbox", *created.ContextID)
	assert.False(t, created.Completed)
}

func TestQuickCreate_NoInbox_NotFound(t *testing.T) {
	svc, _, _ := newTestService(false)

	_, err := svc.QuickCreate(context.Background(), owner, QuickCreateRequest{Title: "Buy milk"})

	require.Error(t, err)
	apiErr, ok := err.(*apierr.Error)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "Inbox not found.", apiErr.Message)
}

func TestQuickCreate_MissingTitle(t *testing.T) {
	svc, _, _ := newTestService(true)

	_, err := svc.QuickCreate(context.Background(), owner, QuickCreateRequest{Notes: "no title"})

	require.Error(t, err)
	list, ok := err.(apierr.List)
	require.True(t, ok)
	require.Len(t, list, 1)
	assert.Equal(t, "title", list[0].Field)
}

func TestQuickCreate_Anonymous_Unauthorized(t *testing.T) {
	svc, _, _ := newTestService(true)

	_, err := svc.QuickCreate(context.Background(), nil, QuickCreateRequest{Title: "Buy milk"})

	require.Error(t, err)
	apiErr, ok := err.(*apierr.Error)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
}

func TestCreate_ExplicitContext(t *testing.T) {
	svc, _, _ := newTestService(true)

	created, err := svc.Create(context.Background(), owner, CreateRequest{
		Title:      "Fix the door",
		Completed:  "false",
		ContextRef: `{"value":"ctx-home"}`,
	})

	require.NoError(t, err)
	require.NotNil(t, created.ContextID)
	assert.Equal(t, "ctx-home", *created.ContextID)
}

func TestCreate_NoContext_DefaultsToInbox(t *testing.T) {
	svc, _, _ := newTestService(true)

	created, err := svc.Create(context.Background(), owner, CreateRequest{Title: "Fix the door"})

	require.NoError(t, err)
	require.NotNil(t, created.ContextID)
	assert.Equal(t, "ctx-inbox", *created.ContextID)
}

func TestCreate_ForeignContext_Invalid(t *testing.T) {
	svc, _, ctxs := newTestService(true)
	ctxs.byID["ctx-other"] = &domain.Context{ID: "ctx-other", UserID: "u-2", Name: "Theirs", Role: domain.ContextNone}

	_, err := svc.Create(context.Background(), owner, CreateRequest{
		Title:      "Fix the door",
		ContextRef: `{"value":"ctx-other"}`,
	})

	require.Error(t, err)
	apiErr, ok := err.(*apierr.Error)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	assert.Equal(t, "contextId", apiErr.Field)
}

func TestCreate_InvalidCompleted(t *testing.T) {
	svc, _, _ := newTestService(true)

	_, err := svc.Create(context.Background(), owner, CreateRequest{
		Title:     "Fix the door",
		Completed: "yep",
	})

	require.Error(t, err)
	list, ok := err.(apierr.List)
	require.True(t, ok)
	require.Len(t, list, 1)
	assert.Equal(t, "completed", list[0].Field)
	assert.Equal(t, "Invalid completed value received.", list[0].Message)
}

func TestUpdate_ReassignsContext(t *testing.T) {
	svc, _, _ := newTestService(true)
	ctx := context.Background()

	created, err := svc.QuickCreate(ctx, owner, QuickCreateRequest{Title: "Buy milk"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, owner, UpdateRequest{
		ID:         created.ID,
		Title:      "Buy milk",
		Notes:      "and eggs",
		Completed:  "true",
		ContextRef: `{"value":"ctx-home"}`,
	})

	require.NoError(t, err)
	require.NotNil(t, updated.ContextID)
	assert.Equal(t, "ctx-home", *updated.ContextID)
	assert.True(t, updated.Completed)
	assert.Equal(t, "and eggs", updated.Notes)
}

func TestUpdate_MalformedContextRef_Invalid(t *testing.T) {
	svc, _, _ := newTestService(true)
	ctx := context.Background()

	created, err := svc.QuickCreate(ctx, owner, QuickCreateRequest{Title: "Buy milk"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, owner, UpdateRequest{
		ID: created.ID, Title: "Buy milk", ContextRef: "not-json",
	})

	require.Error(t, err)
	list, ok := err.(apierr.List)
	require.True(t, ok)
	require.Len(t, list, 1)
	assert.Equal(t, "contextId", list[0].Field)
	assert.Equal(t, "Invalid context received.", list[0].Message)
}

func TestUpdate_ForeignContext_Invalid(t *testing.T) {
	svc, _, ctxs := newTestService(true)
	ctx := context.Background()

	ctxs.byID["ctx-other"] = &domain.Context{ID: "ctx-other", UserID: "u-2", Name: "Theirs", Role: domain.ContextNone}

	created, err := svc.QuickCreate(ctx, owner, QuickCreateRequest{Title: "Buy milk"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, owner, UpdateRequest{
		ID: created.ID, Title: "Buy milk", ContextRef: `{"value":"ctx-other"}`,
	})

	require.Error(t, err)
	apiErr, ok := err.(*apierr.Error)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
}

func TestUpdate_OtherUsersTask_NotFound(t *testing.T) {
	svc, repo, _ := newTestService(true)
	ctx := context.Background()

	foreign := &domain.Task{ID: "t-9", UserID: "u-2", Title: "Theirs"}
	require.NoError(t, repo.Create(ctx, foreign))

	_, err := svc.Update(ctx, owner, UpdateRequest{ID: "t-9", Title: "Hijacked"})

	require.Error(t, err)
	apiErr, ok := err.(*apierr.Error)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}

func TestListByContext_ReturnsOwnTasks(t *testing.T) {
	svc, _, _ := newTestService(true)
	ctx := context.Background()

	_, err := svc.QuickCreate(ctx, owner, QuickCreateRequest{Title: "Buy milk"})
	require.NoError(t, err)
	_, err = svc.QuickCreate(ctx, owner, QuickCreateRequest{Title: "Walk dog"})
	require.NoError(t, err)

	tasks, err := svc.ListByContext(ctx, owner, "ctx-inbox")
	require.NoError(t, err)
	assert.Len(t, tasks, 2)
}

func TestListByContext_ForeignContext_NotFound(t *testing.T) {
	svc, _, ctxs := newTestService(true)
	ctxs.byID["ctx-other"] = &domain.Context{ID: "ctx-other", UserID: "u-2", Name: "Theirs", Role: domain.ContextNone}

	_, err := svc.ListByContext(context.Background(), owner, "ctx-other")

	require.Error(t, err)
	apiErr, ok := err.(*apierr.Error)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}
