package update

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"todo_service/internal/http_server/middleware/identity"
	"todo_service/internal/lib/api/request"
	resp "todo_service/internal/lib/api/response"
	sl "todo_service/internal/lib/logger"
	"todo_service/internal/models"
	"todo_service/internal/todo"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

// Request leaves Completed nil when the field is absent.
type Request struct {
	Completed *bool `json:"completed"`
}

type TodoUpdater interface {
	Update(ctx context.Context, ownerID, todoID string, completed *bool) (models.Todo, error)
}

func New(log *slog.Logger, validate *validator.Validate, updater TodoUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.todos.update.New"

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

		if !request.Decode(w, r, log, validate, &req, true) {
			return
		}

		updated, err := updater.Update(r.Context(), uid, chi.URLParam(r, "id"), req.Completed)
		if err != nil {
			switch {
			case errors.Is(err, todo.ErrTodoNotFound):
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, resp.Error("Todo not found"))
			case errors.Is(err, todo.ErrForbidden):
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, resp.Error("Unauthorized"))
			default:
				log.Error("failed to update todo", sl.Err(err))

				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, resp.Error("Internal error"))
			}

			return
		}

		render.JSON(w, r, updated)
	}
}
