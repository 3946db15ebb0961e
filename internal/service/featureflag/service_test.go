package featureflag

import (
	"context"
	"net/http"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stridehq/stride/internal/apierr"
	"github.com/stridehq/stride/internal/domain"
)

// mockRepo is an in-memory repository for testing. It counts calls so tests
// can assert that unauthorized requests never reach persistence.
type mockRepo struct {
	mu    sync.Mutex
	byID  map[string]*domain.FeatureFlag
	calls int
}

func newMockRepo() *mockRepo {
	return &mockRepo{byID: make(map[string]*domain.FeatureFlag)}
}

func (m *mockRepo) Get(_ context.Context, id string) (*domain.FeatureFlag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	f, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *f
	return &cp, nil
}

func (m *mockRepo) GetBySlug(_ context.Context, slug string) (*domain.FeatureFlag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	for _, f := range m.byID {
		if f.Slug == slug {
			cp := *f
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockRepo) List(_ context.Context) ([]domain.FeatureFlag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	var out []domain.FeatureFlag
	for _, f := range m.byID {
		out = append(out, *f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *mockRepo) Create(_ context.Context, f *domain.FeatureFlag) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	for _, existing := range m.byID {
		if existing.Name == f.Name {
			return ErrNameTaken
		}
	}
	cp := *f
	m.byID[f.ID] = &cp
	return nil
}

func (m *mockRepo) Update(_ context.Context, f *domain.FeatureFlag) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	existing, ok := m.byID[f.ID]
	if !ok {
		return ErrNotFound
	}
	if existing.Name != f.Name {
		for _, other := range m.byID {
			if other.ID != f.ID && other.Name == f.Name {
				return ErrNameTaken
			}
		}
	}
	cp := *f
	cp.CreatedAt = existing.CreatedAt
	m.byID[f.ID] = &cp
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if _, ok := m.byID[id]; !ok {
		return ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

var (
	admin  = &domain.User{ID: "u-admin", Username: "root", Role: domain.RoleAdmin}
	member = &domain.User{ID: "u-member", Username: "ada", Role: domain.RoleUser}
)

func TestValidate_MissingName_TaggedTitle(t *testing.T) {
	errs := Validate(Request{Description: "gate the beta"})

	require.Len(t, errs, 1)
	assert.Equal(t, "title", errs[0].Field)
	assert.Equal(t, "Title is required.", errs[0].Message)
	assert.Equal(t, http.StatusUnprocessableEntity, errs[0].Status)
}

func TestValidate_NameTooLong(t *testing.T) {
	errs := Validate(Request{Name: strings.Repeat("a", MaxNameLength+1)})

	require.Len(t, errs, 1)
	assert.Equal(t, "name", errs[0].Field)
}

func TestValidate_CollectsAllViolations(t *testing.T) {
	errs := Validate(Request{
		Name:        strings.Repeat("a", MaxNameLength+1),
		Description: strings.Repeat("b", MaxDescriptionLength+1),
		IsEnabled:   "maybe",
	})

	require.Len(t, errs, 3)
	fields := []string{errs[0].Field, errs[1].Field, errs[2].Field}
	assert.Equal(t, []string{"name", "description", "isEnabled"}, fields)
}

func TestValidate_ValidRequest(t *testing.T) {
	errs := Validate(Request{Name: "Beta Mode", Description: "gate the beta", IsEnabled: "true"})
	assert.Empty(t, errs)
}

func TestCreate_DerivesSlug(t *testing.T) {
	svc := NewService(newMockRepo())

	f, err := svc.Create(context.Background(), admin, Request{Name: "Beta Mode", IsEnabled: "true"})

	require.NoError(t, err)
	assert.Equal(t, "beta-mode", f.Slug)
	assert.True(t, f.IsEnabled)
	assert.Equal(t, admin.ID, f.UpdatedBy)
}

func TestCreate_SingleCharName(t *testing.T) {
	svc := NewService(newMockRepo())

	f, err := svc.Create(context.Background(), admin, Request{Name: "X", IsEnabled: "true"})

	require.NoError(t, err)
	assert.Equal(t, "x", f.Slug)
}

func TestCreate_NonAdmin_UnauthorizedBeforePersistence(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	for _, actor := range []*domain.User{nil, member} {
		_, err := svc.Create(context.Background(), actor, Request{Name: "X", IsEnabled: "true"})

		require.Error(t, err)
		apiErr, ok := err.(*apierr.Error)
		require.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	}
	assert.Zero(t, repo.calls, "unauthorized request must not touch the repository")
}

func TestCreate_DuplicateName_ConflictAndNoWrite(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, admin, Request{Name: "Beta Mode", IsEnabled: "true"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, admin, Request{Name: "Beta Mode", IsEnabled: "false"})
	require.Error(t, err)
	apiErr, ok := err.(*apierr.Error)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, apiErr.Status)

	flags, _ := svc.GetAll(ctx)
	assert.Len(t, flags, 1)
	assert.True(t, flags[0].IsEnabled, "conflicting create must not overwrite the existing flag")
}

func TestCreate_ValidationErrorsAreExhaustive(t *testing.T) {
	svc := NewService(newMockRepo())

	_, err := svc.Create(context.Background(), admin, Request{
		Description: strings.Repeat("d", MaxDescriptionLength+1),
	})

	require.Error(t, err)
	list, ok := err.(apierr.List)
	require.True(t, ok)
	assert.Len(t, list, 2)
}

func TestUpdate_Rename_ReslugsAndPreservesOtherFields(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	ctx := context.Background()

	f, err := svc.Create(ctx, admin, Request{Name: "Beta Mode", Description: "the beta gate", IsEnabled: "true"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, admin, Request{
		ID: f.ID, Name: "Beta Mode 2", Description: "the beta gate", IsEnabled: "true",
	})
	require.NoError(t, err)
	assert.Equal(t, "beta-mode-2", updated.Slug)
	assert.Equal(t, "the beta gate", updated.Description)
	assert.True(t, updated.IsEnabled)
}

func TestUpdate_MissingFlag_NotFound(t *testing.T) {
	svc := NewService(newMockRepo())

	_, err := svc.Update(context.Background(), admin, Request{ID: "gone", Name: "X"})

	require.Error(t, err)
	apiErr, ok := err.(*apierr.Error)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}

func TestUpdate_RenameToExistingName_Conflict(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, admin, Request{Name: "Alpha"})
	require.NoError(t, err)
	f, err := svc.Create(ctx, admin, Request{Name: "Beta"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, admin, Request{ID: f.ID, Name: "Alpha"})
	require.Error(t, err)
	apiErr, ok := err.(*apierr.Error)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
}

func TestDelete_Missing_NotFound(t *testing.T) {
	svc := NewService(newMockRepo())

	err := svc.Delete(context.Background(), admin, "gone")

	require.Error(t, err)
	apiErr, ok := err.(*apierr.Error)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}

func TestGetAll_OrderedByName_AndIdempotent(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()

	for _, name := range []string{"Charlie", "Alpha", "Bravo"} {
		_, err := svc.Create(ctx, admin, Request{Name: name})
		require.NoError(t, err)
	}

	first, err := svc.GetAll(ctx)
	require.NoError(t, err)
	second, err := svc.GetAll(ctx)
	require.NoError(t, err)

	require.Len(t, first, 3)
	assert.Equal(t, "Alpha", first[0].Name)
	assert.Equal(t, "Bravo", first[1].Name)
	assert.Equal(t, "Charlie", first[2].Name)
	assert.Equal(t, first, second)
}

func TestGetAll_NoAuthorizationRequired(t *testing.T) {
	svc := NewService(newMockRepo())

	_, err := svc.GetAll(context.Background())

	assert.NoError(t, err)
}
