// Package router sets up all HTTP routes and middleware chains for the
// Facturio API. Routes are grouped under /api with a shared middleware
// stack.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"facturio/internal/handlers"
	"facturio/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(api *handlers.API) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	// Health check.
	r.Get("/health", healthHandler)

	// Uploads get a tighter rate limit than the rest of the API.
	uploadLimiter := middleware.NewRateLimiter(30, time.Minute)
	apiLimiter := middleware.NewRateLimiter(600, time.Minute)

	r.Route("/api", func(r chi.Router) {
		r.Use(apiLimiter.Middleware)

		// Element palette for the builder UI.
		r.Get("/palette", api.Palette)

		// Templates
		r.Route("/templates", func(r chi.Router) {
			r.Get("/", api.TemplatesList)
			r.Post("/", api.TemplateCreate)
			r.Post("/validate", api.TemplateValidate)
			r.Get("/{id}", api.TemplateGet)
			r.Put("/{id}", api.TemplateUpdate)
			r.Delete("/{id}", api.TemplateDelete)
			r.Post("/{id}/default", api.TemplateSetDefault)
			r.Get("/{id}/preview", api.TemplatePreview)
			r.Get("/{id}/revisions", api.TemplateRevisions)
			r.Post("/{id}/revisions/{revisionID}/restore", api.TemplateRestore)
		})

		// Clients
		r.Route("/clients", func(r chi.Router) {
			r.Get("/", api.ClientsList)
			r.Get("/{id}", api.ClientGet)
		})

		// Invoices
		r.Route("/invoices", func(r chi.Router) {
			r.Get("/", api.InvoicesList)
			r.Get("/{id}", api.InvoiceGet)
			r.Get("/{id}/document", api.InvoiceDocument)
		})

		// Company settings
		r.Get("/settings", api.SettingsGet)
		r.Put("/settings", api.SettingsUpdate)

		// Uploads
		r.Group(func(r chi.Router) {
			r.Use(uploadLimiter.Middleware)
			r.Post("/uploads", api.UploadImage)
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
