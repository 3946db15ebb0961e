package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stridehq/stride/internal/service/featureflag"
)

// ListFeatureFlags returns every flag. Intentionally unauthenticated: the
// front end needs flag state before a user signs in.
func (h *Handlers) ListFeatureFlags(w http.ResponseWriter, r *http.Request) {
	flags, err := h.flags.GetAll(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"featureFlags": flags})
}

func flagRequestFromForm(r *http.Request) featureflag.Request {
	return featureflag.Request{
		Name:        r.PostFormValue("name"),
		Description: r.PostFormValue("description"),
		IsEnabled:   r.PostFormValue("isEnabled"),
	}
}

// CreateFeatureFlag creates a flag. Admin only, enforced by the service.
func (h *Handlers) CreateFeatureFlag(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, err)
		return
	}

	flag, err := h.flags.Create(r.Context(), CurrentUser(r), flagRequestFromForm(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]interface{}{"featureFlag": flag})
}

// GetFeatureFlag returns one flag by id. Admin only.
func (h *Handlers) GetFeatureFlag(w http.ResponseWriter, r *http.Request) {
	flag, err := h.flags.GetByID(r.Context(), CurrentUser(r), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"featureFlag": flag})
}

// UpdateFeatureFlag rewrites a flag. Admin only.
func (h *Handlers) UpdateFeatureFlag(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, err)
		return
	}

	req := flagRequestFromForm(r)
	req.ID = chi.URLParam(r, "id")

	flag, err := h.flags.Update(r.Context(), CurrentUser(r), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"featureFlag": flag})
}

// DeleteFeatureFlag removes a flag. Admin only.
func (h *Handlers) DeleteFeatureFlag(w http.ResponseWriter, r *http.Request) {
	if err := h.flags.Delete(r.Context(), CurrentUser(r), chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}
