package task

import "errors"

// Task-related errors
var (
	// Validation errors
	ErrEmptyText        = errors.New("task text cannot be empty")
	ErrInvalidTaskID    = errors.New("invalid task ID")
	ErrInvalidProjectID = errors.New("invalid project ID")
	ErrInvalidLine      = errors.New("invalid line number: must be >= 0")

	// Business logic errors
	ErrNoTasksSelected = errors.New("no project or task IDs given")
)
