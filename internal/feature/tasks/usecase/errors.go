// Package usecase implements the business logic for the tasks feature.
package usecase

import "errors"

var (
	// ErrTaskNotFound is returned when a task does not exist or is owned by
	// another user. The two cases are intentionally not distinguishable.
	ErrTaskNotFound = errors.New("task not found")

	// ErrInvalidStatus is returned when a status value is not one of
	// TODO, IN_PROGRESS, COMPLETED.
	ErrInvalidStatus = errors.New("invalid task status")

	// ErrEmptyTitle is returned when a task title is missing or empty.
	ErrEmptyTitle = errors.New("task title must not be empty")
)
