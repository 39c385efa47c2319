package register

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"todo_service/internal/auth"
	"todo_service/internal/lib/api/request"
	resp "todo_service/internal/lib/api/response"
	sl "todo_service/internal/lib/logger"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

type Request struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserRegistrar interface {
	RegisterNewUser(ctx context.Context, name, email, pass string) (uid string, err error)
}

func New(
	log *slog.Logger,
	validate *validator.Validate,
	registrar UserRegistrar,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.register.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req Request

		if !request.Decode(w, r, log, validate, &req, false) {
			return
		}

		_, err := registrar.RegisterNewUser(r.Context(), req.Name, req.Email, req.Password)
		if err != nil {
			if errors.Is(err, auth.ErrUserExists) {
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, resp.Error("User already exists"))

				return
			}

			log.Error("failed to register user", sl.Err(err))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Error("Internal error"))

			return
		}

		render.JSON(w, r, resp.OK("User registered successfully"))
	}
}
