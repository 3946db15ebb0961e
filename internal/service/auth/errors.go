package auth

import "errors"

var (
	// ErrNotFound is returned when no user matches the given principal.
	ErrNotFound = errors.New("user not found")

	// ErrEmailTaken is returned when the email unique constraint fails.
	ErrEmailTaken = errors.New("email already in use")

	// ErrUsernameTaken is returned when the username unique constraint fails.
	ErrUsernameTaken = errors.New("username already in use")
)
