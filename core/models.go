package core

import "time"

type TaskStatus string

const (
	StatusPending    TaskStatus = "Pending"
	StatusAccepted   TaskStatus = "Accepted"
	StatusInProgress TaskStatus = "In Progress"
	StatusCompleted  TaskStatus = "Completed"
	StatusRejected   TaskStatus = "Rejected"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusInProgress, StatusCompleted, StatusRejected:
		return true
	default:
		return false
	}
}

type User struct {
	ID           int64     `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// UserRef is the identity projection safe to embed in any listing response.
type UserRef struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (u User) Ref() UserRef {
	return UserRef{ID: u.ID, Name: u.Name, Email: u.Email}
}

type Task struct {
	ID          int64      `db:"id"`
	Name        string     `db:"name"`
	Description string     `db:"description"`
	Notes       string     `db:"notes"`
	CreatedBy   int64      `db:"created_by"`
	Status      TaskStatus `db:"status"`
	Progress    int        `db:"progress"`
	AssigneeIDs []int64    `db:"-"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

// TaskView is a task with its user references resolved for a response.
// CreatedBy is nil in the "created by me" listing, where the caller is
// always the creator.
type TaskView struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Notes       string     `json:"notes"`
	Status      TaskStatus `json:"status"`
	Progress    int        `json:"progress"`
	CreatedBy   *UserRef   `json:"createdBy,omitempty"`
	AssignedTo  []UserRef  `json:"assignedTo"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
