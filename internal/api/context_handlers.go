package api

import (
	"net/http"
)

// ListContexts returns the current user's contexts ordered by name.
func (h *Handlers) ListContexts(w http.ResponseWriter, r *http.Request) {
	list, err := h.contexts.List(r.Context(), CurrentUser(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"contexts": list})
}
