package login

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"todo_service/internal/auth"
	"todo_service/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

type fakeAuthenticator struct {
	token string
	user  models.PublicUser
	err   error
}

func (f fakeAuthenticator) Login(context.Context, string, string) (string, models.PublicUser, error) {
	return f.token, f.user, f.err
}

func serve(a Authenticator, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(body))
	rec := httptest.NewRecorder()

	New(slog.New(slog.NewTextHandler(io.Discard, nil)), validator.New(), a).ServeHTTP(rec, req)

	return rec
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name     string
		auth     fakeAuthenticator
		body     string
		wantCode int
		wantBody string
	}{
		{
			name:     "success",
			auth:     fakeAuthenticator{token: "tok", user: models.PublicUser{ID: "1", Name: "Ann", Email: "a@x.com"}},
			body:     `{"email":"a@x.com","password":"pw1"}`,
			wantCode: http.StatusOK,
			wantBody: `{"token":"tok","user":{"id":"1","name":"Ann","email":"a@x.com"}}`,
		},
		{
			name:     "unknown user",
			auth:     fakeAuthenticator{err: fmt.Errorf("auth.Login: %w", auth.ErrUserNotFound)},
			body:     `{"email":"a@x.com","password":"pw1"}`,
			wantCode: http.StatusBadRequest,
			wantBody: `{"msg":"User not found"}`,
		},
		{
			name:     "wrong password",
			auth:     fakeAuthenticator{err: fmt.Errorf("auth.Login: %w", auth.ErrInvalidCredentials)},
			body:     `{"email":"a@x.com","password":"nope"}`,
			wantCode: http.StatusBadRequest,
			wantBody: `{"msg":"Invalid credentials"}`,
		},
		{
			name:     "store failure",
			auth:     fakeAuthenticator{err: errors.New("server selection timeout")},
			body:     `{"email":"a@x.com","password":"pw1"}`,
			wantCode: http.StatusInternalServerError,
			wantBody: `{"msg":"Internal error"}`,
		},
		{
			name:     "missing password",
			body:     `{"email":"a@x.com"}`,
			wantCode: http.StatusBadRequest,
			wantBody: `{"msg":"field password is a required field"}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(tc.auth, tc.body)

			assert.Equal(t, tc.wantCode, rec.Code)
			assert.JSONEq(t, tc.wantBody, rec.Body.String())
		})
	}
}
