package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/trackerworkflow/tracker-api/internal/api"
	"github.com/trackerworkflow/tracker-api/internal/api/middleware"
)

// setupRouter builds the chi router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(app.userService, app.jwtService, app.googleAuth)
	projectHandler := api.NewProjectHandler(app.projectService)
	taskHandler := api.NewTaskHandler(app.taskService, app.userService)
	notificationHandler := api.NewNotificationHandler(app.notificationService, app.userService)
	aiHandler := api.NewAIHandler(app.summarizer)
	adminHandler := api.NewAdminHandler(app.userCache, app.tokenCache)

	authMiddleware := middleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		// Public authentication endpoints.
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)
		r.Post("/auth/google", authHandler.GoogleLogin)
		r.Get("/auth/google/url", authHandler.GoogleAuthURL)

		// Everything else requires a valid access token.
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/me", authHandler.Me)

			r.Route("/projects", func(r chi.Router) {
				r.Post("/", projectHandler.Create)
				r.Get("/", projectHandler.List)
				r.Get("/{projectID}", projectHandler.Get)
				r.Put("/{projectID}", projectHandler.Update)
				r.Delete("/{projectID}", projectHandler.Delete)
				r.Get("/{projectID}/tasks", taskHandler.ListByProject)
			})

			r.Route("/tasks", func(r chi.Router) {
				r.Post("/", taskHandler.Create)
				r.Get("/", taskHandler.List)
				r.Get("/project/{projectID}", taskHandler.ListByProject)
				r.Get("/{taskID}", taskHandler.Get)
				r.Put("/{taskID}", taskHandler.Update)
				r.Delete("/{taskID}", taskHandler.Delete)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", notificationHandler.List)
				r.Get("/unread-count", notificationHandler.UnreadCount)
				r.Post("/read-all", notificationHandler.MarkAllRead)
				r.Post("/{notificationID}/read", notificationHandler.MarkRead)
				r.Delete("/{notificationID}", notificationHandler.Delete)
			})

			r.Post("/ai/summarize", aiHandler.Summarize)
			r.Get("/ai/status", aiHandler.Status)

			r.Get("/admin/cache", adminHandler.CacheStats)
			r.Post("/admin/cache/clear", adminHandler.ClearCaches)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
