package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/Lohit244/task-buddy/adapters/rest"
	"github.com/Lohit244/task-buddy/core"
	"github.com/Lohit244/task-buddy/pkg/res"
)

func NewSignupHandler(log *slog.Logger, auth *core.Auth, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in rest.SignupIn
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			res.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		token, user, err := auth.Register(ctx, in.Name, in.Email, in.Password)
		if err != nil {
			rest.WriteErr(log, w, err)
			return
		}
		res.Json(w, map[string]any{"token": token, "name": user.Name}, http.StatusCreated)
	}
}

func NewLoginHandler(log *slog.Logger, auth *core.Auth, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in rest.LoginIn
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			res.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		token, user, err := auth.Login(ctx, in.Email, in.Password)
		if err != nil {
			rest.WriteErr(log, w, err)
			return
		}
		res.Json(w, map[string]any{"token": token, "name": user.Name}, http.StatusOK)
	}
}

func NewGetUserHandler(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			rest.WriteErr(log, w, core.ErrUnauthenticated)
			return
		}
		res.Json(w, map[string]any{"user": user}, http.StatusOK)
	}
}
