// Package identity guards protected routes: it resolves the bearer token in
// the Authorization header to a user id and stores it in the request context.
package identity

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	resp "todo_service/internal/lib/api/response"
	sl "todo_service/internal/lib/logger"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

type ctxKey string

const userIDKey ctxKey = "userID"

type TokenVerifier interface {
	VerifyToken(token string) (uid string, err error)
}

func New(log *slog.Logger, verifier TokenVerifier) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middleware.identity"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			header := r.Header.Get("Authorization")
			if header == "" {
				log.Info("missing authorization header")

				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, resp.Error("No token, authorization denied"))

				return
			}

			uid, err := verifier.VerifyToken(bearerToken(header))
			if err != nil {
				log.Info("token rejected", sl.Err(err))

				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, resp.Error("Token is not valid"))

				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), uid)))
		})
	}
}

// bearerToken returns the second whitespace-separated segment of "Bearer <token>".
func bearerToken(header string) string {
	parts := strings.Fields(header)
	if len(parts) < 2 {
		return ""
	}

	return parts[1]
}

func WithUserID(ctx context.Context, uid string) context.Context {
	return context.WithValue(ctx, userIDKey, uid)
}

func UserID(ctx context.Context) (string, bool) {
	uid, ok := ctx.Value(userIDKey).(string)

	return uid, ok && uid != ""
}
