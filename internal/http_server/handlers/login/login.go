package login

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"todo_service/internal/auth"
	"todo_service/internal/lib/api/request"
	resp "todo_service/internal/lib/api/response"
	sl "todo_service/internal/lib/logger"
	"todo_service/internal/models"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

type Request struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type Response struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

type Authenticator interface {
	Login(ctx context.Context, email, password string) (token string, user models.PublicUser, err error)
}

func New(
	log *slog.Logger,
	validate *validator.Validate,
	authenticator Authenticator,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.login.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req Request

		if !request.Decode(w, r, log, validate, &req, false) {
			return
		}

		token, user, err := authenticator.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrUserNotFound):
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, resp.Error("User not found"))
			case errors.Is(err, auth.ErrInvalidCredentials):
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, resp.Error("Invalid credentials"))
			default:
				log.Error("failed to login user", sl.Err(err))

				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, resp.Error("Internal error"))
			}

			return
		}

		render.JSON(w, r, Response{
			Token: token,
			User:  user,
		})
	}
}
