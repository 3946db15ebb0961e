package api

import (
	"log"
	"net/http"

	"github.com/stridehq/stride/internal/service/auth"
	"github.com/stridehq/stride/internal/service/user"
)

// SignIn verifies a credential form and opens a session.
func (h *Handlers) SignIn(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, err)
		return
	}

	u, err := h.auth.SignIn(r.Context(), auth.SignInRequest{
		EmailOrUsername: r.PostFormValue("email_or_username"),
		Password:        r.PostFormValue("password"),
	})
	if err != nil {
		respondError(w, err)
		return
	}

	token, err := h.sessions.Create(r.Context(), u)
	if err != nil {
		respondError(w, err)
		return
	}
	h.sessions.SetCookie(w, token)

	respondJSON(w, http.StatusOK, map[string]interface{}{"user": u})
}

// SignUp creates an account and opens a session.
func (h *Handlers) SignUp(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, err)
		return
	}

	u, err := h.auth.SignUp(r.Context(), auth.SignUpRequest{
		Email:    r.PostFormValue("email"),
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	})
	if err != nil {
		respondError(w, err)
		return
	}

	token, err := h.sessions.Create(r.Context(), u)
	if err != nil {
		respondError(w, err)
		return
	}
	h.sessions.SetCookie(w, token)

	respondJSON(w, http.StatusCreated, map[string]interface{}{"user": u})
}

// SignOut destroys the session. Always succeeds, even without one.
func (h *Handlers) SignOut(w http.ResponseWriter, r *http.Request) {
	h.sessions.Destroy(r.Context(), r, w)
	respondJSON(w, http.StatusOK, nil)
}

// GetUser returns the current session's user, or null when anonymous.
func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{"user": CurrentUser(r)})
}

// UpdateUser changes the current user's profile and refreshes the session
// so subsequent requests see the new identity.
func (h *Handlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, err)
		return
	}

	updated, err := h.users.Update(r.Context(), CurrentUser(r), user.UpdateRequest{
		Username: r.PostFormValue("username"),
		Email:    r.PostFormValue("email"),
	})
	if err != nil {
		respondError(w, err)
		return
	}

	token, err := h.sessions.Create(r.Context(), updated)
	if err != nil {
		log.Printf("[api] refresh session after profile update: %v", err)
	} else {
		h.sessions.SetCookie(w, token)
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"user": updated})
}
