package core

import "context"

// Store is the persistence port. Tasks are the single source of truth:
// "created by me" filters on the creator column and "assigned to me" goes
// through the assignee set, so there are no back-reference lists to keep
// consistent.
type Store interface {
	Ping(ctx context.Context) error

	// users
	CreateUser(ctx context.Context, name, email, passwordHash string) (User, error)
	UserByID(ctx context.Context, id int64) (User, error)
	UserByEmail(ctx context.Context, email string) (User, error)
	UsersByIDs(ctx context.Context, ids []int64) ([]User, error)
	SearchUsers(ctx context.Context, name string, limit, offset int) ([]User, error)

	// tasks
	CreateTask(ctx context.Context, t Task) (Task, error)
	TaskByID(ctx context.Context, id int64) (Task, error)
	UpdateTask(ctx context.Context, t Task) (Task, error)
	TasksCreatedBy(ctx context.Context, userID int64) ([]Task, error)
	TasksAssignedTo(ctx context.Context, userID int64) ([]Task, error)
}
