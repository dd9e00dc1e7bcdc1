package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness conflict, e.g. a duplicate bill number.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidInput indicates the caller supplied data the operation rejects.
	ErrInvalidInput = errors.New("invalid input")
)
