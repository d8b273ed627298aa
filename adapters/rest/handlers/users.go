package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/Lohit244/task-buddy/adapters/rest"
	"github.com/Lohit244/task-buddy/core"
	"github.com/Lohit244/task-buddy/pkg/res"
)

func NewSearchUsersHandler(log *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		// non-numeric or missing page falls back to the first one
		page := 1
		if v := q.Get("page"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				page = n
			}
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		users, err := svc.SearchUsers(ctx, q.Get("name"), page)
		if err != nil {
			rest.WriteErr(log, w, err)
			return
		}
		res.Json(w, map[string]any{"users": users}, http.StatusOK)
	}
}
