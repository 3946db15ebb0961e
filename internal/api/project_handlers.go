package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stridehq/stride/internal/service/project"
)

// ListProjects returns the current user's projects, newest first.
func (h *Handlers) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projects.List(r.Context(), CurrentUser(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"projects": projects})
}

// CreateProject creates a project from a form submission.
func (h *Handlers) CreateProject(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, err)
		return
	}

	p, err := h.projects.Create(r.Context(), CurrentUser(r), project.CreateRequest{
		Title:       r.PostFormValue("title"),
		Description: r.PostFormValue("description"),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]interface{}{"project": p})
}

// GetProject returns one of the current user's projects.
func (h *Handlers) GetProject(w http.ResponseWriter, r *http.Request) {
	p, err := h.projects.Get(r.Context(), CurrentUser(r), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"project": p})
}

// UpdateProject rewrites one of the current user's projects.
func (h *Handlers) UpdateProject(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, err)
		return
	}

	p, err := h.projects.Update(r.Context(), CurrentUser(r), project.UpdateRequest{
		ID:          chi.URLParam(r, "id"),
		Title:       r.PostFormValue("title"),
		Description: r.PostFormValue("description"),
		Completed:   r.PostFormValue("completed"),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"project": p})
}

// DeleteProject removes one of the current user's projects.
func (h *Handlers) DeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := h.projects.Delete(r.Context(), CurrentUser(r), chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}
