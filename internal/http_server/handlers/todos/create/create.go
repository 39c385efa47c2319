package create

import (
	"context"
	"log/slog"
	"net/http"

	"todo_service/internal/http_server/middleware/identity"
	"todo_service/internal/lib/api/request"
	resp "todo_service/internal/lib/api/response"
	sl "todo_service/internal/lib/logger"
	"todo_service/internal/models"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

type Request struct {
	Title string `json:"title" validate:"required"`
}

type TodoCreator interface {
	Create(ctx context.Context, ownerID, title string) (models.Todo, error)
}

func New(log *slog.Logger, validate *validator.Validate, creator TodoCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.todos.create.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		uid, ok := identity.UserID(r.Context())
		if !ok {
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, resp.Error("No token, authorization denied"))

			return
		}

		var req Request

		if !request.Decode(w, r, log, validate, &req, false) {
			return
		}

		todo, err := creator.Create(r.Context(), uid, req.Title)
		if err != nil {
			log.Error("failed to create todo", sl.Err(err))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Error("Internal error"))

			return
		}

		render.JSON(w, r, todo)
	}
}
