package api

import (
	"net/http"
)

// JoinWaitlist records an email address on the waitlist.
func (h *Handlers) JoinWaitlist(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, err)
		return
	}

	entry, err := h.waitlist.Join(r.Context(), r.PostFormValue("email"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]interface{}{"entry": entry})
}
