package export

import "errors"

// Export-related errors
var (
	ErrInvalidProjectID = errors.New("invalid project ID")
)
