package repository

import "errors"

var (
	// ErrProblemNotFound indicates no problem exists with the given id.
	ErrProblemNotFound = errors.New("problem not found")

	// ErrUserNotFound indicates no user exists with the given id or username.
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameExists indicates the username is already taken.
	ErrUsernameExists = errors.New("username already exists")
)
