package models

import (
	"errors"
	"fmt"

	"github.com/kdpii/nerlabel/internal/span"
)

// Domain errors shared by every layer. Services wrap these with context,
// callers match them with errors.Is.
var (
	// ErrInvalidSpan indicates start >= end, an out-of-range span, or text that
	// does not match the task text at the span
	ErrInvalidSpan = span.ErrInvalid

	// ErrInvalidEnumValue indicates a confidence, identifier type or status outside its allowed set
	ErrInvalidEnumValue = errors.New("invalid enum value")

	// ErrInvalidColor indicates a background that is not # followed by six hex digits
	ErrInvalidColor = errors.New("invalid color format (must be hex color like #FFFFFF)")

	// ErrInvalidHotkey indicates a hotkey that is not a single alphanumeric or symbol character
	ErrInvalidHotkey = errors.New("hotkey must be a single alphanumeric character or one of !@#$%^&*()")

	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file too large")

	// ErrLabelInUse indicates a label delete while annotations still reference its value
	ErrLabelInUse = errors.New("label is in use")

	ErrNotFound = errors.New("not found")

	// ErrOverlapNotAllowed indicates an overlapping annotation in a project that forbids overlaps
	ErrOverlapNotAllowed = errors.New("overlapping annotations are not allowed in this project")
)

// LabelInUseError reports how many annotations still reference a label
type LabelInUseError struct {
	Value string
	Count int
}

func (e *LabelInUseError) Error() string {
	return fmt.Sprintf("label %q is used by %d annotation(s)", e.Value, e.Count)
}

// Is makes errors.Is(err, ErrLabelInUse) match
func (e *LabelInUseError) Is(target error) bool {
	return target == ErrLabelInUse
}

// NotFound wraps ErrNotFound with the entity kind and key
func NotFound(entity string, key any) error {
	return fmt.Errorf("%s %v: %w", entity, key, ErrNotFound)
}
