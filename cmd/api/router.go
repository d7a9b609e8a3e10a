package main

import (
	"database/sql"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/crucial707/todo-api/internal/auth"
	"github.com/crucial707/todo-api/internal/config"
	"github.com/crucial707/todo-api/internal/handlers"
	mw "github.com/crucial707/todo-api/internal/middleware"
	"github.com/crucial707/todo-api/internal/repo"
)

// newRouter builds the full HTTP handler chain: global middleware, public
// auth endpoints (rate limited), and the bearer-protected API.
func newRouter(database *sql.DB, cfg config.Config) http.Handler {
	tokens, err := auth.NewTokenIssuer(
		[]byte(cfg.JWTSecret),
		cfg.JWTAlg,
		time.Duration(cfg.JWTExpireMinutes)*time.Minute,
	)
	if err != nil {
		log.Fatalf("token issuer: %v", err)
	}

	userRepo := repo.NewUserRepo(database)
	listRepo := repo.NewTodoListRepo(database)
	taskRepo := repo.NewTaskRepo(database)

	userHandler := &handlers.UserHandler{Repo: userRepo, Tokens: tokens}
	listHandler := &handlers.TodoListHandler{Repo: listRepo}
	taskHandler := &handlers.TaskHandler{Repo: taskRepo}

	hsts := cfg.TLSCertFile != "" && cfg.TLSKeyFile != ""

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(mw.RequestLog)
	r.Use(mw.Recoverer)
	r.Use(mw.Prometheus)
	r.Use(mw.SecurityHeaders(hsts))
	r.Use(mw.CORS(cfg.CORSAllowedOrigins))
	r.Use(mw.MaxBytes(mw.DefaultMaxBodyBytes))

	// Public
	r.Get("/", handlers.Docs)
	r.Get("/docs", handlers.DocsIndex)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		if err := database.PingContext(r.Context()); err != nil {
			handlers.JSONError(w, "database unreachable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	// Registration and login carry a bcrypt cost per request; rate limit per IP.
	authLimiter := mw.AuthRateLimiter()
	r.Group(func(r chi.Router) {
		r.Use(authLimiter.Middleware)
		r.Post("/users/", userHandler.Register)
		r.Post("/users/login", userHandler.Login)
	})

	// Protected: every request re-verifies the token and resolves the subject.
	r.Group(func(r chi.Router) {
		r.Use(mw.Authenticator(tokens, userRepo))

		r.Get("/users/me", userHandler.Me)
		r.Delete("/users/me", userHandler.DeleteMe)

		r.Post("/lists/", listHandler.Create)
		r.Get("/lists/", listHandler.List)
		r.Get("/lists/{id}", listHandler.Get)
		r.Delete("/lists/{id}", listHandler.Delete)

		r.Post("/lists/{id}/tasks/", taskHandler.Create)
		r.Get("/lists/{id}/tasks/", taskHandler.ListByList)
		r.Get("/tasks/{id}", taskHandler.Get)
		r.Delete("/tasks/{id}", taskHandler.Delete)
	})

	return r
}
