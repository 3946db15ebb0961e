package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stridehq/stride/internal/service/task"
)

// QuickCreateTask creates a minimal task in the current user's Inbox.
func (h *Handlers) QuickCreateTask(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, err)
		return
	}

	t, err := h.tasks.QuickCreate(r.Context(), CurrentUser(r), task.QuickCreateRequest{
		Title: r.PostFormValue("title"),
		Notes: r.PostFormValue("notes"),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]interface{}{"task": t})
}

// CreateTask creates a task with the full field set, honoring an explicit
// contextId reference when the form carries one.
func (h *Handlers) CreateTask(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, err)
		return
	}

	t, err := h.tasks.Create(r.Context(), CurrentUser(r), task.CreateRequest{
		Title:      r.PostFormValue("title"),
		Notes:      r.PostFormValue("notes"),
		Completed:  r.PostFormValue("completed"),
		ContextRef: r.PostFormValue("contextId"),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]interface{}{"task": t})
}

// UpdateTask rewrites a task's fields, reassigning its context when the form
// carries a contextId reference.
func (h *Handlers) UpdateTask(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, err)
		return
	}

	t, err := h.tasks.Update(r.Context(), CurrentUser(r), task.UpdateRequest{
		ID:         chi.URLParam(r, "id"),
		Title:      r.PostFormValue("title"),
		Notes:      r.PostFormValue("notes"),
		Completed:  r.PostFormValue("completed"),
		ContextRef: r.PostFormValue("contextId"),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"task": t})
}

// ListTasks returns the current user's tasks in the context named by the
// ?context= query parameter.
func (h *Handlers) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.tasks.ListByContext(r.Context(), CurrentUser(r), r.URL.Query().Get("context"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"tasks": tasks})
}
