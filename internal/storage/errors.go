package storage

import "errors"

var (
	// ErrNotFound is returned when no account matches the query.
	ErrNotFound = errors.New("account not found")

	// ErrDuplicate is returned when creating an account whose email already exists.
	ErrDuplicate = errors.New("account already exists")
)
