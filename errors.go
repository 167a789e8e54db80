package pacbucket

import "errors"

var (
	// ErrNotFound is returned when an object is not in the store
	ErrNotFound = errors.New("not found")
	// ErrRangeNotSatisfiable is returned when a requested range starts beyond the object
	ErrRangeNotSatisfiable = errors.New("range not satisfiable")
	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
	// ErrInternal is returned when an internal error occurs
	ErrInternal = errors.New("internal error")
)
