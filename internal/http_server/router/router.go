package router

import (
	"log/slog"
	"net/http"

	"todo_service/internal/auth"
	"todo_service/internal/http_server/handlers/home"
	"todo_service/internal/http_server/handlers/login"
	"todo_service/internal/http_server/handlers/register"
	"todo_service/internal/http_server/handlers/todos/create"
	"todo_service/internal/http_server/handlers/todos/list"
	"todo_service/internal/http_server/handlers/todos/remove"
	"todo_service/internal/http_server/handlers/todos/update"
	"todo_service/internal/http_server/middleware/identity"
	rateLimit "todo_service/internal/http_server/middleware/ratelimit"
	"todo_service/internal/todo"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
)

type Deps struct {
	Auth    *auth.Auth
	Todos   *todo.Service
	Limiter *rateLimit.Limiter
}

func New(log *slog.Logger, deps Deps) *chi.Mux {
	validate := validator.New()

	limiter := deps.Limiter
	if limiter == nil {
		limiter = rateLimit.New(nil)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	r.Get("/", home.New())

	r.Route("/api", func(r chi.Router) {
		r.With(limiter.Register()).Post("/register", register.New(log, validate, deps.Auth))
		r.With(limiter.Login()).Post("/login", login.New(log, validate, deps.Auth))

		r.Group(func(r chi.Router) {
			r.Use(identity.New(log, deps.Auth))

			r.Get("/todos", list.New(log, deps.Todos))
			r.Post("/todos", create.New(log, validate, deps.Todos))
			r.Put("/todos/{id}", update.New(log, validate, deps.Todos))
			r.Delete("/todos/{id}", remove.New(log, deps.Todos))
		})
	})

	return r
}
