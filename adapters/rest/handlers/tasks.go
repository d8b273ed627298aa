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

func NewCreateTaskHandler(log *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			rest.WriteErr(log, w, core.ErrUnauthenticated)
			return
		}

		var in rest.CreateTaskIn
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			res.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		task, err := svc.CreateTask(ctx, user, in.Name, in.Description, in.To)
		if err != nil {
			rest.WriteErr(log, w, err)
			return
		}
		res.Json(w, map[string]any{"task": task}, http.StatusOK)
	}
}

func NewListCreatedHandler(log *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			rest.WriteErr(log, w, core.ErrUnauthenticated)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		tasks, err := svc.ListCreatedByMe(ctx, user)
		if err != nil {
			rest.WriteErr(log, w, err)
			return
		}
		res.Json(w, map[string]any{"tasks": tasks}, http.StatusOK)
	}
}

func NewListAssignedHandler(log *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			rest.WriteErr(log, w, core.ErrUnauthenticated)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		tasks, err := svc.ListAssignedToMe(ctx, user)
		if err != nil {
			rest.WriteErr(log, w, err)
			return
		}
		res.Json(w, map[string]any{"tasks": tasks}, http.StatusOK)
	}
}

func NewUpdateTaskHandler(log *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			rest.WriteErr(log, w, core.ErrUnauthenticated)
			return
		}

		var in rest.UpdateTaskIn
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			res.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		patch := core.TaskPatch{
			Progress:         in.Progress,
			Notes:            in.Notes,
			Description:      in.DescriptionPatch(),
			NewAssigneeEmail: in.AssignedTo,
		}
		if in.Status != nil {
			status := core.TaskStatus(*in.Status)
			patch.Status = &status
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		task, err := svc.UpdateTask(ctx, user, in.TaskID, patch)
		if err != nil {
			rest.WriteErr(log, w, err)
			return
		}
		res.Json(w, map[string]any{"task": task}, http.StatusOK)
	}
}
