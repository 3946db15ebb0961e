package api

import (
	"context"
	"net/http"

	"github.com/stridehq/stride/internal/apierr"
	"github.com/stridehq/stride/internal/domain"
)

type contextKey string

const userContextKey contextKey = "currentUser"

// CurrentUser returns the authenticated user stored on the request context,
// or nil for anonymous requests.
func CurrentUser(r *http.Request) *domain.User {
	u, _ := r.Context().Value(userContextKey).(*domain.User)
	return u
}

// withSession resolves the session cookie to a user and stores it on the
// request context. Anonymous requests pass through with no user.
func (h *Handlers) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := h.sessions.Load(r.Context(), r)
		if err != nil {
			respondError(w, err)
			return
		}
		if user != nil {
			r = r.WithContext(context.WithValue(r.Context(), userContextKey, user))
		}
		next.ServeHTTP(w, r)
	})
}

// requireUser rejects anonymous requests before they reach a handler.
func requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if CurrentUser(r) == nil {
			respondError(w, apierr.New("Unauthorized", http.StatusUnauthorized))
			return
		}
		next.ServeHTTP(w, r)
	})
}
