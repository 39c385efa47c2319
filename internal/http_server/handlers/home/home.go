package home

import (
	"net/http"

	"github.com/go-chi/render"
)

const banner = "ToDoList Backend is running!"

func New() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.PlainText(w, r, banner)
	}
}
