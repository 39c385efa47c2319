package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"todo_service/internal/http_server/middleware/identity"
	resp "todo_service/internal/lib/api/response"
	sl "todo_service/internal/lib/logger"
	"todo_service/internal/todo"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

type TodoRemover interface {
	Delete(ctx context.Context, ownerID, todoID string) error
}

func New(log *slog.Logger, remover TodoRemover) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.todos.remove.New"

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

		err := remover.Delete(r.Context(), uid, chi.URLParam(r, "id"))
		if err != nil {
			switch {
			case errors.Is(err, todo.ErrTodoNotFound):
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, resp.Error("Todo not found"))
			case errors.Is(err, todo.ErrForbidden):
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, resp.Error("Unauthorized"))
			default:
				log.Error("failed to delete todo", sl.Err(err))

				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, resp.Error("Internal error"))
			}

			return
		}

		render.JSON(w, r, resp.OK("Todo deleted"))
	}
}
