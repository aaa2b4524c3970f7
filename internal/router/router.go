// Package router sets up all HTTP routes and middleware chains for the
// inkpress API. It organizes routes into public and authenticated groups
// with appropriate middleware stacks.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"inkpress/internal/handlers"
	"inkpress/internal/middleware"
	"inkpress/internal/token"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. Routes outside the RequireAuth group are
// public: they skip token checks entirely.
func New(
	tokens *token.Manager,
	authLimiter *middleware.RateLimiter,
	auth *handlers.Auth,
	categories *handlers.Categories,
	subcategories *handlers.Subcategories,
	posts *handlers.Posts,
) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	// Health check, no auth.
	r.Get("/health", healthHandler)

	// Credential endpoints: public, rate-limited.
	r.Group(func(r chi.Router) {
		r.Use(authLimiter.Middleware)
		r.Post("/register", auth.Register)
		r.Post("/sign", auth.SignIn)
	})

	// Public reads.
	r.Get("/categories", categories.List)
	r.Get("/sub-categories", subcategories.List)
	r.Get("/posts", posts.List)

	// Authenticated mutations.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(tokens))

		r.Get("/logout", auth.Logout)

		r.Post("/categories", categories.Create)
		r.Delete("/categories/{slug}", categories.Delete)

		r.Post("/sub-categories", subcategories.Create)
		r.Delete("/sub-categories/{slug}", subcategories.Delete)

		r.Post("/posts", posts.Create)
		r.Delete("/posts/{slug}", posts.Delete)
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
