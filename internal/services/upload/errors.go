package upload

import "errors"

// Upload-related errors
var (
	ErrInvalidUploadID  = errors.New("invalid upload ID")
	ErrInvalidProjectID = errors.New("invalid project ID")
	ErrEmptyFilename    = errors.New("filename cannot be empty")
)
