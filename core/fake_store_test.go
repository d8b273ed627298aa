package core_test

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Lohit244/task-buddy/core"
)

type fakeStore struct {
	mu sync.RWMutex

	nextUserID int64
	nextTaskID int64

	users map[int64]core.User
	tasks map[int64]core.Task
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		nextUserID: 1,
		nextTaskID: 1,
		users:      make(map[int64]core.User),
		tasks:      make(map[int64]core.Task),
	}
}

func cloneTask(t core.Task) core.Task {
	out := t
	out.AssigneeIDs = slices.Clone(t.AssigneeIDs)
	return out
}

func (db *fakeStore) Ping(context.Context) error {
	return nil
}

func (db *fakeStore) CreateUser(_ context.Context, name, email, passwordHash string) (core.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Email == email {
			return core.User{}, core.ErrEmailInUse
		}
	}

	id := db.nextUserID
	db.nextUserID++

	user := core.User{
		ID:           id,
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	db.users[id] = user

	return user, nil
}

func (db *fakeStore) UserByID(_ context.Context, id int64) (core.User, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	user, ok := db.users[id]
	if !ok {
		return core.User{}, core.ErrUserNotFound
	}
	return user, nil
}

func (db *fakeStore) UserByEmail(_ context.Context, email string) (core.User, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	for _, u := range db.users {
		if u.Email == email {
			return u, nil
		}
	}
	return core.User{}, core.ErrUserNotFound
}

func (db *fakeStore) UsersByIDs(_ context.Context, ids []int64) ([]core.User, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	out := make([]core.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := db.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (db *fakeStore) SearchUsers(_ context.Context, name string, limit, offset int) ([]core.User, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	needle := strings.ToLower(name)

	out := make([]core.User, 0, len(db.users))
	for _, u := range db.users {
		if strings.Contains(strings.ToLower(u.Name), needle) {
			out = append(out, u)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := strings.ToLower(out[i].Name), strings.ToLower(out[j].Name)
		if a != b {
			return a < b
		}
		return out[i].ID < out[j].ID
	})

	if offset > len(out) {
		return []core.User{}, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (db *fakeStore) CreateTask(_ context.Context, t core.Task) (core.Task, error) {
	if strings.TrimSpace(t.Name) == "" || t.CreatedBy == 0 || len(t.AssigneeIDs) == 0 {
		return core.Task{}, core.ErrInvalidArgs
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	for _, id := range t.AssigneeIDs {
		if _, ok := db.users[id]; !ok {
			return core.Task{}, core.ErrUserNotFound
		}
	}

	t.ID = db.nextTaskID
	db.nextTaskID++

	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now

	db.tasks[t.ID] = cloneTask(t)
	return cloneTask(t), nil
}

func (db *fakeStore) TaskByID(_ context.Context, id int64) (core.Task, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	task, ok := db.tasks[id]
	if !ok {
		return core.Task{}, core.ErrTaskNotFound
	}
	return cloneTask(task), nil
}

func (db *fakeStore) UpdateTask(_ context.Context, t core.Task) (core.Task, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	current, ok := db.tasks[t.ID]
	if !ok {
		return core.Task{}, core.ErrTaskNotFound
	}

	current.Description = t.Description
	current.Notes = t.Notes
	current.Status = t.Status
	current.Progress = t.Progress
	current.UpdatedAt = time.Now()

	for _, id := range t.AssigneeIDs {
		if _, ok := db.users[id]; !ok {
			return core.Task{}, core.ErrUserNotFound
		}
		if !slices.Contains(current.AssigneeIDs, id) {
			current.AssigneeIDs = append(current.AssigneeIDs, id)
		}
	}

	db.tasks[t.ID] = cloneTask(current)
	return cloneTask(current), nil
}

func (db *fakeStore) TasksCreatedBy(_ context.Context, userID int64) ([]core.Task, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	out := make([]core.Task, 0, len(db.tasks))
	for _, task := range db.tasks {
		if task.CreatedBy == userID {
			out = append(out, cloneTask(task))
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (db *fakeStore) TasksAssignedTo(_ context.Context, userID int64) ([]core.Task, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	out := make([]core.Task, 0, len(db.tasks))
	for _, task := range db.tasks {
		if slices.Contains(task.AssigneeIDs, userID) {
			out = append(out, cloneTask(task))
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
