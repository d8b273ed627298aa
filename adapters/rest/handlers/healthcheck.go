package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/Lohit244/task-buddy/core"
	"github.com/Lohit244/task-buddy/pkg/res"
)

func NewHealthcheckHandler(log *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		if err := svc.Ping(ctx); err != nil {
			log.Warn("store ping failed", "error", err)
			res.Json(w, map[string]string{"status": "bad"}, http.StatusServiceUnavailable)
			return
		}
		res.Json(w, map[string]string{"status": "good"}, http.StatusOK)
	}
}
