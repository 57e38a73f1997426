package format

import "errors"

var (
	// ErrDuplicateRule is returned when two rules share a name.
	ErrDuplicateRule = errors.New("duplicate rule")

	// ErrUnknownRule is returned for rule names missing from the registry.
	ErrUnknownRule = errors.New("unknown rule")

	// ErrRuleCycle is returned when runsAfter constraints form a cycle.
	ErrRuleCycle = errors.New("rule dependency cycle")

	// ErrUnknownOption is returned when a rule declares an undefined option.
	ErrUnknownOption = errors.New("unknown option")

	// ErrFormatFailure indicates a rule aborted formatting.
	ErrFormatFailure = errors.New("format failure")

	// ErrFileNotFound indicates the file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrWriteFailure indicates a write error.
	ErrWriteFailure = errors.New("write failure")
)
