package main

import (
	"net/http"

	"skywatch/models"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	httpSwagger "github.com/swaggo/http-swagger"
)

// routes wires middlewares and endpoints. Adjust CORS for your frontend hosts.
func (a *App) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:3000", "https://*.run.app"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/api/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
		w.Header().Set("Cache-Control", "public, max-age=60")
		w.Write(openapiYAML)
	})

	r.Mount("/swagger", httpSwagger.Handler(
		httpSwagger.URL("/api/openapi.yaml"),
	))

	r.Route("/api", func(api chi.Router) {
		api.Post("/auth/register", a.handleRegister)
		api.Post("/auth/login", a.handleLogin)

		api.With(a.requireAuth()).Get("/me", a.handleMe)

		api.Route("/reports", func(rr chi.Router) {
			rr.With(a.requireAuth(models.RoleUser, models.RoleAdmin)).Post("/", a.handleSubmitReport)
			rr.With(a.requireAuth(models.RoleUser)).Get("/", a.handleListOwnReports)
			rr.With(a.requireAuth(models.RoleAdmin)).Get("/all", a.handleListAllReports)
			rr.With(a.requireAuth(models.RoleUser, models.RoleAdmin)).Get("/{id}", a.handleGetReport)
			rr.With(a.requireAuth(models.RoleAdmin)).Put("/{id}/status", a.handleUpdateStatus)
			rr.With(a.requireAuth(models.RoleAdmin)).Put("/{id}/assign", a.handleAssignTask)
		})
	})

	return r
}
