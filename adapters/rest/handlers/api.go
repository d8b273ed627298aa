package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Lohit244/task-buddy/core"
)

func Register(mux *http.ServeMux, log *slog.Logger, auth *core.Auth, svc *core.Service, timeout time.Duration) {
	authed := RequireUser(log, auth, timeout)

	// public
	mux.Handle("GET /healthcheck", NewHealthcheckHandler(log, svc, timeout))
	mux.Handle("POST /signup", NewSignupHandler(log, auth, timeout))
	mux.Handle("POST /login", NewLoginHandler(log, auth, timeout))

	// authenticated
	mux.Handle("GET /user", authed(NewGetUserHandler(log)))
	mux.Handle("GET /users", authed(NewSearchUsersHandler(log, svc, timeout)))
	mux.Handle("GET /tasks/created", authed(NewListCreatedHandler(log, svc, timeout)))
	mux.Handle("GET /tasks/assigned", authed(NewListAssignedHandler(log, svc, timeout)))
	mux.Handle("POST /tasks", authed(NewCreateTaskHandler(log, svc, timeout)))
	mux.Handle("PUT /tasks", authed(NewUpdateTaskHandler(log, svc, timeout)))
}
