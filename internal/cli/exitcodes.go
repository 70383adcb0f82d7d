package cli

import (
	"errors"

	"github.com/yaklabco/stylefix/pkg/runner"
)

// Exit codes for stylefix.
const (
	// ExitSuccess indicates every reported violation was fixed, or none were
	// reported.
	ExitSuccess = 0

	// ExitViolations indicates the run completed but violations remain.
	ExitViolations = 1

	// ExitError indicates a configuration, usage or file error.
	ExitError = 2
)

// ErrViolationsRemain is returned when a run leaves violations unresolved.
var ErrViolationsRemain = errors.New("violations remain")

// ErrFilesFailed is returned when at least one file could not be processed.
var ErrFilesFailed = errors.New("some files could not be processed")

// ExitCodeFromResult determines the exit code of a fix run. File errors
// outrank open violations.
func ExitCodeFromResult(result *runner.Result) int {
	switch {
	case result == nil:
		return ExitSuccess
	case result.HasErrors():
		return ExitError
	case result.HasRemaining():
		return ExitViolations
	default:
		return ExitSuccess
	}
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrViolationsRemain):
		return ExitViolations
	default:
		return ExitError
	}
}

func errorForExitCode(code int) error {
	switch code {
	case ExitViolations:
		return ErrViolationsRemain
	case ExitError:
		return ErrFilesFailed
	default:
		return nil
	}
}
