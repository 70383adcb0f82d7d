package engine

import (
	"errors"
	"fmt"
)

// Sentinel errors for the fix engine.
var (
	// ErrCompileError indicates the analyzer reported that the file does not
	// compile, so no fix pass was run.
	ErrCompileError = errors.New("compile error detected")

	// ErrAnalyzer indicates the analyzer could not be run or its output read.
	ErrAnalyzer = errors.New("analyzer failed")

	// ErrWriteFailure indicates the fixed text could not be written.
	ErrWriteFailure = errors.New("write failure")
)

// CompileError reports the first line flagged as not compiling.
type CompileError struct {
	Path string
	Line int
}

func (e *CompileError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s at line %d", ErrCompileError, e.Line)
	}
	return fmt.Sprintf("%s: %s:%d", ErrCompileError, e.Path, e.Line)
}

// Unwrap returns ErrCompileError.
func (e *CompileError) Unwrap() error {
	return ErrCompileError
}
