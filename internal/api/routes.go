package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// SetupRoutes configures all API routes.
func SetupRoutes(h *Handlers, health *HealthChecker, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)

	// CORS - allow credentials for the session cookie
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Use(h.withSession)

	// Health check (no auth required)
	r.Get("/health", health.Handler)

	// Public routes
	r.Post("/waitlist", h.JoinWaitlist)
	r.Post("/auth/signin", h.SignIn)
	r.Post("/auth/signup", h.SignUp)
	r.Post("/auth/signout", h.SignOut)
	r.Get("/auth/user", h.GetUser)

	r.Route("/api", func(r chi.Router) {
		// Flag enumeration is readable without a session; the front end
		// gates features before sign-in.
		r.Get("/feature-flags", h.ListFeatureFlags)

		// Everything else requires a session. Role checks beyond "signed
		// in" live in the services.
		r.Group(func(r chi.Router) {
			r.Use(requireUser)

			r.Put("/user", h.UpdateUser)

			r.Post("/feature-flags", h.CreateFeatureFlag)
			r.Get("/feature-flags/{id}", h.GetFeatureFlag)
			r.Put("/feature-flags/{id}", h.UpdateFeatureFlag)
			r.Delete("/feature-flags/{id}", h.DeleteFeatureFlag)

			r.Get("/projects", h.ListProjects)
			r.Post("/projects", h.CreateProject)
			r.Get("/projects/{id}", h.GetProject)
			r.Put("/projects/{id}", h.UpdateProject)
			r.Delete("/projects/{id}", h.DeleteProject)

			r.Get("/tasks", h.ListTasks)
			r.Post("/tasks", h.CreateTask)
			r.Post("/tasks/quick", h.QuickCreateTask)
			r.Put("/tasks/{id}", h.UpdateTask)

			r.Get("/contexts", h.ListContexts)
		})
	})

	return r
}
