package cli

// Exit codes for CLI commands.
// These codes follow Unix conventions and provide consistent error reporting
// across all CLI commands.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitFailure indicates a general error occurred.
	// Use for: Database errors, unexpected failures,
	// or any error that doesn't fit the specific categories below.
	ExitFailure = 1

	// ExitUsage indicates incorrect command usage.
	// Use for: Missing required flags, malformed ids, unknown arguments,
	// or a command run without a project to act on.
	ExitUsage = 2

	// ExitNotFound indicates a requested resource was not found.
	// Use for: Project, task, annotation, label or upload ids and names that don't exist.
	ExitNotFound = 3

	// ExitDataErr indicates invalid or malformed input data.
	// Use for: Unsupported or oversized uploads, unparseable label seed files.
	ExitDataErr = 4

	// ExitValidation indicates a validation error.
	// Use for: Invalid spans, enum values, colors and hotkeys, labels still in use,
	// or overlaps in a project that forbids them.
	ExitValidation = 5
)
