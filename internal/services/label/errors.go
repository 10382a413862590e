package label

import "errors"

// Label-related errors
var (
	// Validation errors
	ErrEmptyValue       = errors.New("label value cannot be empty")
	ErrValueTooLong     = errors.New("label value cannot exceed 50 characters")
	ErrInvalidLabelID   = errors.New("invalid label ID")
	ErrInvalidProjectID = errors.New("invalid project ID")
	ErrInvalidSeedFile  = errors.New("invalid label seed file")

	// Business logic errors
	ErrDuplicateValue  = errors.New("a label with this value already exists in this scope")
	ErrDuplicateHotkey = errors.New("hotkey is already used by another label in this scope")
)
