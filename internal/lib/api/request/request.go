package request

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	resp "todo_service/internal/lib/api/response"
	sl "todo_service/internal/lib/logger"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

// MaxBodyBytes caps a JSON request body.
const MaxBodyBytes = 100 << 10

// Decode reads the JSON body into dst and validates it. On failure it writes
// a 400 {msg} reply, or 413 when the body exceeds MaxBodyBytes, and returns
// false. An empty body is accepted when allowEmpty is set.
func Decode(
	w http.ResponseWriter,
	r *http.Request,
	log *slog.Logger,
	validate *validator.Validate,
	dst any,
	allowEmpty bool,
) bool {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)

	err := render.DecodeJSON(r.Body, dst)

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		log.Error("Request body too large", slog.Int64("limit", tooLarge.Limit))

		render.Status(r, http.StatusRequestEntityTooLarge)
		render.JSON(w, r, resp.Error("Request entity too large"))

		return false
	}

	if err != nil && !(allowEmpty && errors.Is(err, io.EOF)) {
		log.Error("Failed to decode request body", sl.Err(err))

		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, resp.Error("Failed to decode request"))

		return false
	}

	log.Debug("Request body decoded")

	if err := validate.Struct(dst); err != nil {
		log.Error("Invalid request", sl.Err(err))

		render.Status(r, http.StatusBadRequest)

		var validateErr validator.ValidationErrors
		if errors.As(err, &validateErr) {
			render.JSON(w, r, resp.ValidationError(validateErr))
		} else {
			render.JSON(w, r, resp.Error("Invalid request"))
		}

		return false
	}

	return true
}
