package cli

import (
	"errors"

	"github.com/yaklabco/swiftfmt/pkg/runner"
)

// Exit codes for swiftfmt.
const (
	// ExitSuccess indicates every file is formatted.
	ExitSuccess = 0

	// ExitChangesPending indicates --lint found files that need formatting.
	ExitChangesPending = 1

	// ExitError indicates a usage, configuration or I/O failure.
	ExitError = 2
)

var (
	// ErrChangesPending is returned by --lint runs that found unformatted files.
	ErrChangesPending = errors.New("files need formatting")

	// ErrFilesFailed is returned when one or more files could not be processed.
	ErrFilesFailed = errors.New("some files could not be processed")
)

// resultError maps a finished run to the error the command returns.
func resultError(result *runner.Result, lint bool) error {
	switch {
	case result.HasErrors():
		return ErrFilesFailed
	case lint && result.HasChanges():
		return ErrChangesPending
	default:
		return nil
	}
}

// ExitCode maps a command error to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrChangesPending):
		return ExitChangesPending
	default:
		return ExitError
	}
}
