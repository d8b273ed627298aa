package core

import "errors"

// Auth errors
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthenticated    = errors.New("you must be logged in")
	ErrForbidden          = errors.New("you are not authorized to update this task")
)

// Domain errors
var (
	ErrInvalidArgs  = errors.New("invalid arguments")
	ErrUserNotFound = errors.New("user not found")
	ErrTaskNotFound = errors.New("task not found")
	ErrEmailInUse   = errors.New("email already in use")
)
