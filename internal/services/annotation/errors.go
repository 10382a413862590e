package annotation

import "errors"

// Annotation-related errors
var (
	// Validation errors
	ErrInvalidAnnotationID = errors.New("invalid annotation ID")
	ErrInvalidTaskID       = errors.New("invalid task ID")
	ErrEmptyEntityID       = errors.New("entity ID cannot be empty")
	ErrEmptyRelationType   = errors.New("relationship type cannot be empty")

	// Business logic errors
	ErrSelfLink     = errors.New("an annotation cannot be linked to itself")
	ErrNoLabels     = errors.New("this project requires every annotation to carry a label")
	ErrUnknownLabel = errors.New("label is not an active label of this project")
)
