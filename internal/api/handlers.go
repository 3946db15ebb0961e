package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/stridehq/stride/internal/apierr"
	"github.com/stridehq/stride/internal/service/auth"
	"github.com/stridehq/stride/internal/service/contexts"
	"github.com/stridehq/stride/internal/service/featureflag"
	"github.com/stridehq/stride/internal/service/project"
	"github.com/stridehq/stride/internal/service/task"
	"github.com/stridehq/stride/internal/service/user"
	"github.com/stridehq/stride/internal/service/waitlist"
	"github.com/stridehq/stride/internal/session"
)

// Handlers contains all HTTP handlers.
type Handlers struct {
	auth     *auth.Service
	users    *user.Service
	flags    *featureflag.Service
	projects *project.Service
	tasks    *task.Service
	contexts *contexts.Service
	waitlist *waitlist.Service
	sessions *session.Manager
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(
	authSvc *auth.Service,
	userSvc *user.Service,
	flagSvc *featureflag.Service,
	projectSvc *project.Service,
	taskSvc *task.Service,
	contextSvc *contexts.Service,
	waitlistSvc *waitlist.Service,
	sessions *session.Manager,
) *Handlers {
	return &Handlers{
		auth:     authSvc,
		users:    userSvc,
		flags:    flagSvc,
		projects: projectSvc,
		tasks:    taskSvc,
		contexts: contextSvc,
		waitlist: waitlistSvc,
		sessions: sessions,
	}
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("[api] encode response: %v", err)
	}
}

// respondError normalizes any error into the uniform failure payload.
// Unclassified errors are logged and reported as a generic internal error.
func respondError(w http.ResponseWriter, err error) {
	resp := apierr.NewResponse(apierr.Parse(err))
	if resp.StatusCode >= http.StatusInternalServerError {
		log.Printf("[api] internal error: %v", err)
	}
	respondJSON(w, resp.StatusCode, resp)
}
