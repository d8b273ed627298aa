package core

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
)

const searchPageSize = 10

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{
		store: store,
	}
}

func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// TaskPatch carries the optional fields of a task update. Nil means the
// field was not supplied.
type TaskPatch struct {
	Status           *TaskStatus
	Progress         *int
	Notes            *string
	Description      *string
	NewAssigneeEmail *string
}

// CreateTask resolves every assignee email before anything is written, so a
// single unknown email fails the whole call without a partial task.
func (s *Service) CreateTask(ctx context.Context, creator User, name, description string, assigneeEmails []string) (TaskView, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return TaskView{}, fmt.Errorf("%w: must provide a name for the task", ErrInvalidArgs)
	}
	if len(assigneeEmails) == 0 {
		return TaskView{}, fmt.Errorf("%w: must provide a user to assign the task to", ErrInvalidArgs)
	}

	var assignees []User
	for _, email := range assigneeEmails {
		u, err := s.store.UserByEmail(ctx, NormalizeEmail(email))
		if err != nil {
			if errors.Is(err, ErrUserNotFound) {
				return TaskView{}, fmt.Errorf("%w: no user with email %q", ErrUserNotFound, email)
			}
			return TaskView{}, err
		}
		if !slices.ContainsFunc(assignees, func(a User) bool { return a.ID == u.ID }) {
			assignees = append(assignees, u)
		}
	}

	ids := make([]int64, len(assignees))
	for i, u := range assignees {
		ids[i] = u.ID
	}

	task, err := s.store.CreateTask(ctx, Task{
		Name:        name,
		Description: strings.TrimSpace(description),
		CreatedBy:   creator.ID,
		Status:      StatusPending,
		Progress:    0,
		AssigneeIDs: ids,
	})
	if err != nil {
		return TaskView{}, err
	}

	// Caller is the creator, so the view omits them.
	return viewOf(task, nil, assignees), nil
}

// ListCreatedByMe returns tasks created by the user, assignees resolved,
// creator omitted.
func (s *Service) ListCreatedByMe(ctx context.Context, user User) ([]TaskView, error) {
	tasks, err := s.store.TasksCreatedBy(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return s.views(ctx, tasks, false)
}

// ListAssignedToMe returns tasks the user is assigned to, with the creator
// resolved alongside the assignee set.
func (s *Service) ListAssignedToMe(ctx context.Context, user User) ([]TaskView, error) {
	tasks, err := s.store.TasksAssignedTo(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return s.views(ctx, tasks, true)
}

// UpdateTask applies an authorized partial update. Only the creator or an
// assignee may touch a task at all, and only an assignee may change status.
func (s *Service) UpdateTask(ctx context.Context, caller User, taskID int64, p TaskPatch) (TaskView, error) {
	if taskID <= 0 {
		return TaskView{}, fmt.Errorf("%w: must provide a taskId", ErrInvalidArgs)
	}

	task, err := s.store.TaskByID(ctx, taskID)
	if err != nil {
		return TaskView{}, err
	}

	isCreator := task.CreatedBy == caller.ID
	isAssignee := slices.Contains(task.AssigneeIDs, caller.ID)
	if !isCreator && !isAssignee {
		return TaskView{}, ErrForbidden
	}

	if p.Status != nil && *p.Status != task.Status {
		if !isAssignee {
			return TaskView{}, fmt.Errorf("%w: only an assignee may change status", ErrForbidden)
		}
		if !p.Status.Valid() {
			return TaskView{}, fmt.Errorf("%w: invalid status %q", ErrInvalidArgs, *p.Status)
		}
		task.Status = *p.Status
	}

	if p.Progress != nil {
		if *p.Progress < 0 || *p.Progress > 100 {
			return TaskView{}, fmt.Errorf("%w: progress must be between 0 and 100", ErrInvalidArgs)
		}
		task.Progress = *p.Progress
	}

	if p.Notes != nil {
		task.Notes = *p.Notes
	}
	if p.Description != nil {
		task.Description = *p.Description
	}

	// Terminal/initial statuses pin progress, even on updates that did not
	// touch status.
	switch task.Status {
	case StatusCompleted:
		task.Progress = 100
	case StatusPending:
		task.Progress = 0
	}

	if p.NewAssigneeEmail != nil {
		u, err := s.store.UserByEmail(ctx, NormalizeEmail(*p.NewAssigneeEmail))
		if err != nil {
			if errors.Is(err, ErrUserNotFound) {
				return TaskView{}, fmt.Errorf("%w: no user with email %q", ErrUserNotFound, *p.NewAssigneeEmail)
			}
			return TaskView{}, err
		}
		if !slices.Contains(task.AssigneeIDs, u.ID) {
			task.AssigneeIDs = append(task.AssigneeIDs, u.ID)
		}
	}

	updated, err := s.store.UpdateTask(ctx, task)
	if err != nil {
		return TaskView{}, err
	}

	views, err := s.views(ctx, []Task{updated}, true)
	if err != nil {
		return TaskView{}, err
	}
	return views[0], nil
}

// SearchUsers matches names case-insensitively by substring. Pages are
// 1-indexed, ten users each; only identity fields are returned.
func (s *Service) SearchUsers(ctx context.Context, name string, page int) ([]UserRef, error) {
	if page < 1 {
		page = 1
	}

	users, err := s.store.SearchUsers(ctx, name, searchPageSize, (page-1)*searchPageSize)
	if err != nil {
		return nil, err
	}

	refs := make([]UserRef, len(users))
	for i, u := range users {
		refs[i] = u.Ref()
	}
	return refs, nil
}

// views resolves the user references of a batch of tasks in one lookup.
func (s *Service) views(ctx context.Context, tasks []Task, withCreator bool) ([]TaskView, error) {
	idSet := map[int64]struct{}{}
	for _, t := range tasks {
		for _, id := range t.AssigneeIDs {
			idSet[id] = struct{}{}
		}
		if withCreator {
			idSet[t.CreatedBy] = struct{}{}
		}
	}

	ids := make([]int64, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	byID := map[int64]User{}
	if len(ids) > 0 {
		users, err := s.store.UsersByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, u := range users {
			byID[u.ID] = u
		}
	}

	out := make([]TaskView, len(tasks))
	for i, t := range tasks {
		assignees := make([]User, 0, len(t.AssigneeIDs))
		for _, id := range t.AssigneeIDs {
			if u, ok := byID[id]; ok {
				assignees = append(assignees, u)
			}
		}
		var creator *User
		if withCreator {
			if u, ok := byID[t.CreatedBy]; ok {
				creator = &u
			}
		}
		out[i] = viewOf(t, creator, assignees)
	}
	return out, nil
}

func viewOf(t Task, creator *User, assignees []User) TaskView {
	v := TaskView{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Notes:       t.Notes,
		Status:      t.Status,
		Progress:    t.Progress,
		AssignedTo:  make([]UserRef, len(assignees)),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	for i, u := range assignees {
		v.AssignedTo[i] = u.Ref()
	}
	if creator != nil {
		ref := creator.Ref()
		v.CreatedBy = &ref
	}
	return v
}
