package user

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stridehq/stride/internal/apierr"
	"github.com/stridehq/stride/internal/domain"
)

type mockRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newMockRepo(seed ...*domain.User) *mockRepo {
	m := &mockRepo{users: make(map[string]*domain.User)}
	for _, u := range seed {
		cp := *u
		m.users[u.ID] = &cp
	}
	return m
}

func (m *mockRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *mockRepo) Update(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.ID]; !ok {
		return ErrNotFound
	}
	for id, u := range m.users {
		if id == user.ID {
			continue
		}
		if u.Email == user.Email {
			return ErrEmailTaken
		}
		if u.Username == user.Username {
			return ErrUsernameTaken
		}
	}
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

var ada = &domain.User{ID: "u-1", Username: "ada", Email: "ada@example.com", Role: domain.RoleUser}

func TestUpdate_ChangesProfile(t *testing.T) {
	repo := newMockRepo(ada)
	svc := NewService(repo)

	updated, err := svc.Update(context.Background(), ada, UpdateRequest{
		Username: "ada_l", Email: "lovelace@example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, "ada_l", updated.Username)
	assert.Equal(t, "lovelace@example.com", updated.Email)
	assert.Equal(t, ada.ID, updated.ID)
}

func TestUpdate_Anonymous_Unauthorized(t *testing.T) {
	svc := NewService(newMockRepo(ada))

	_, err := svc.Update(context.Background(), nil, UpdateRequest{Username: "ada", Email: "ada@example.com"})

	require.Error(t, err)
	apiErr, ok := err.(*apierr.Error)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
}

func TestUpdate_ValidationCollected(t *testing.T) {
	svc := NewService(newMockRepo(ada))

	_, err := svc.Update(context.Background(), ada, UpdateRequest{Username: "ab", Email: "nope"})

	require.Error(t, err)
	list, ok := err.(apierr.List)
	require.True(t, ok)
	require.Len(t, list, 2)
	assert.Equal(t, "email", list[0].Field)
	assert.Equal(t, "username", list[1].Field)
}

func TestUpdate_EmailConflict(t *testing.T) {
	other := &domain.User{ID: "u-2", Username: "grace", Email: "grace@example.com"}
	svc := NewService(newMockRepo(ada, other))

	_, err := svc.Update(context.Background(), ada, UpdateRequest{
		Username: "ada", Email: "grace@example.com",
	})

	require.Error(t, err)
	apiErr, ok := err.(*apierr.Error)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "email", apiErr.Field)
}

func TestUpdate_UsernameConflict(t *testing.T) {
	other := &domain.User{ID: "u-2", Username: "grace", Email: "grace@example.com"}
	svc := NewService(newMockRepo(ada, other))

	_, err := svc.Update(context.Background(), ada, UpdateRequest{
		Username: "grace", Email: "ada@example.com",
	})

	require.Error(t, err)
	apiErr, ok := err.(*apierr.Error)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "username", apiErr.Field)
}

func TestUpdate_DeletedAccount_NotFound(t *testing.T) {
	svc := NewService(newMockRepo())

	_, err := svc.Update(context.Background(), ada, UpdateRequest{
		Username: "ada", Email: "ada@example.com",
	})

	require.Error(t, err)
	apiErr, ok := err.(*apierr.Error)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "User not found.", apiErr.Message)
}
