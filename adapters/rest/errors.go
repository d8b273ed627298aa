package rest

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Lohit244/task-buddy/core"
	"github.com/Lohit244/task-buddy/pkg/res"
)

func WriteErr(log *slog.Logger, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrInvalidArgs):
		res.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, core.ErrUnauthenticated):
		res.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, core.ErrInvalidCredentials), errors.Is(err, core.ErrForbidden):
		res.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, core.ErrUserNotFound), errors.Is(err, core.ErrTaskNotFound):
		res.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, core.ErrEmailInUse):
		res.Error(w, err.Error(), http.StatusConflict)
	default:
		log.Error("unexpected error", "error", err)
		res.Error(w, "internal error", http.StatusInternalServerError)
	}
}
