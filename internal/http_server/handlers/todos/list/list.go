package list

import (
	"context"
	"log/slog"
	"net/http"

	"todo_service/internal/http_server/middleware/identity"
	resp "todo_service/internal/lib/api/response"
	sl "todo_service/internal/lib/logger"
	"todo_service/internal/models"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

type TodoLister interface {
	List(ctx context.Context, ownerID string) ([]models.Todo, error)
}

func New(log *slog.Logger, lister TodoLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.todos.list.New"

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

		todos, err := lister.List(r.Context(), uid)
		if err != nil {
			log.Error("failed to list todos", sl.Err(err))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Error("Internal error"))

			return
		}

		render.JSON(w, r, todos)
	}
}
