package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/phrazzld/taskmate-api/internal/api"
	apiMiddleware "github.com/phrazzld/taskmate-api/internal/api/middleware"
	"github.com/phrazzld/taskmate-api/internal/metrics"
	"github.com/phrazzld/taskmate-api/internal/realtime"
)

// greeting is the body of GET /.
const greeting = "Hello from TaskMate Server.."

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(apiMiddleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.config.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With"},
		ExposedHeaders:   []string{"Set-Cookie"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	sessionHandler := api.NewSessionHandler(app.jwtService, app.config.Server.IsProduction(), app.logger)
	userHandler := api.NewUserHandler(app.userService, app.logger)
	taskHandler := api.NewTaskHandler(app.taskService, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)
	realtimeHandler := realtime.NewHandler(
		app.hub,
		app.jwtService,
		app.config.Server.AllowedOrigins,
		app.config.Notify.SendBuffer,
		app.logger,
	)

	r.Get("/", app.writeText(greeting))
	r.Get("/health", app.writeText("OK"))
	r.Handle("/metrics", metrics.Handler())

	// Session and registration endpoints (public)
	r.Post("/jwt", sessionHandler.IssueSession)
	r.Get("/logout", sessionHandler.EndSession)
	r.Post("/users", userHandler.RegisterUser)

	// Realtime change signals; authenticates its own upgrade request
	r.Get("/ws", realtimeHandler.ServeHTTP)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Get("/tasks/{email}", taskHandler.ListTasks)
		r.Post("/tasks", taskHandler.CreateTask)
		r.Put("/tasks/{id}", taskHandler.ReplaceTask)
		r.With(apiMiddleware.ValidateTaskID("id")).Patch("/tasks/{id}", taskHandler.PatchTask)
		r.Delete("/tasks/{id}", taskHandler.DeleteTask)
	})

	return r
}

func (app *application) writeText(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(body)); err != nil {
			app.logger.Error("Failed to write response", "error", err, "path", r.URL.Path)
		}
	}
}
