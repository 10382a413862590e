package cli

import (
	"errors"
	"fmt"

	"github.com/kdpii/nerlabel/internal/models"
	annotationservice "github.com/kdpii/nerlabel/internal/services/annotation"
	exportservice "github.com/kdpii/nerlabel/internal/services/export"
	labelservice "github.com/kdpii/nerlabel/internal/services/label"
	projectservice "github.com/kdpii/nerlabel/internal/services/project"
	taskservice "github.com/kdpii/nerlabel/internal/services/task"
	uploadservice "github.com/kdpii/nerlabel/internal/services/upload"
)

// ExitError carries the process exit code of a failed command.
// The error has already been reported to the user.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }

func (e *ExitError) Unwrap() error { return e.Err }

// UsageError reports a malformed invocation
type UsageError struct {
	Message    string
	Suggestion string
}

func (e *UsageError) Error() string { return e.Message }

// Usagef builds a UsageError
func Usagef(format string, args ...any) error {
	return &UsageError{Message: fmt.Sprintf(format, args...)}
}

// ExitCode returns the exit code for an error returned by a command.
// Errors that never reached a command handler are cobra usage errors.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitUsage
}

// Classification is how an error is reported
type Classification struct {
	Code       string
	Exit       int
	Suggestion string
}

var domainErrors = []struct {
	err   error
	class Classification
}{
	{models.ErrNotFound, Classification{Code: "NOT_FOUND", Exit: ExitNotFound}},
	{models.ErrInvalidSpan, Classification{Code: "INVALID_SPAN", Exit: ExitValidation,
		Suggestion: "Offsets are character positions with start < end <= text length"}},
	{models.ErrInvalidEnumValue, Classification{Code: "INVALID_ENUM", Exit: ExitValidation}},
	{models.ErrInvalidColor, Classification{Code: "INVALID_COLOR", Exit: ExitValidation,
		Suggestion: "Use a hex color like #FF0000"}},
	{models.ErrInvalidHotkey, Classification{Code: "INVALID_HOTKEY", Exit: ExitValidation}},
	{models.ErrUnsupportedFileType, Classification{Code: "UNSUPPORTED_FILE_TYPE", Exit: ExitDataErr,
		Suggestion: "Upload a .txt, .csv, .tsv, .json or .jsonl file"}},
	{models.ErrFileTooLarge, Classification{Code: "FILE_TOO_LARGE", Exit: ExitDataErr}},
	{models.ErrLabelInUse, Classification{Code: "LABEL_IN_USE", Exit: ExitValidation,
		Suggestion: "Deactivate the label instead with 'nerlabel label deactivate'"}},
	{models.ErrOverlapNotAllowed, Classification{Code: "OVERLAP_NOT_ALLOWED", Exit: ExitValidation}},
	{labelservice.ErrInvalidSeedFile, Classification{Code: "INVALID_SEED_FILE", Exit: ExitDataErr}},
}

var validationErrors = []error{
	projectservice.ErrEmptyName,
	projectservice.ErrNameTooLong,
	projectservice.ErrInvalidProjectID,
	taskservice.ErrEmptyText,
	taskservice.ErrInvalidTaskID,
	taskservice.ErrInvalidProjectID,
	taskservice.ErrInvalidLine,
	taskservice.ErrNoTasksSelected,
	annotationservice.ErrInvalidAnnotationID,
	annotationservice.ErrInvalidTaskID,
	annotationservice.ErrEmptyEntityID,
	annotationservice.ErrEmptyRelationType,
	annotationservice.ErrSelfLink,
	annotationservice.ErrNoLabels,
	annotationservice.ErrUnknownLabel,
	labelservice.ErrEmptyValue,
	labelservice.ErrValueTooLong,
	labelservice.ErrInvalidLabelID,
	labelservice.ErrInvalidProjectID,
	labelservice.ErrDuplicateValue,
	labelservice.ErrDuplicateHotkey,
	uploadservice.ErrInvalidUploadID,
	uploadservice.ErrInvalidProjectID,
	uploadservice.ErrEmptyFilename,
	exportservice.ErrInvalidProjectID,
}

// Classify maps an error to its machine-readable code and exit code
func Classify(err error) Classification {
	var usage *UsageError
	if errors.As(err, &usage) {
		return Classification{Code: "USAGE", Exit: ExitUsage, Suggestion: usage.Suggestion}
	}
	for _, d := range domainErrors {
		if errors.Is(err, d.err) {
			return d.class
		}
	}
	for _, v := range validationErrors {
		if errors.Is(err, v) {
			return Classification{Code: "VALIDATION_ERROR", Exit: ExitValidation}
		}
	}
	return Classification{Code: "ERROR", Exit: ExitFailure}
}
