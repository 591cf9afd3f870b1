package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/popcli/pop/internal/ui"
)

// Process exit codes.
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// ExitError is an error that carries an exit code
type ExitError struct {
	Code    int
	Message string
	Cause   error
}

func (e *ExitError) Error() string {
	if e.Cause != nil && e.Message != "" {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Cause
}

// newExitError wraps err as a failure unless it already carries a code.
func newExitError(err error) *ExitError {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	return &ExitError{Code: ExitFailure, Cause: err}
}

// ExitCode returns the process exit code for err.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// PrintError writes err to w in the CLI's error style.
func PrintError(w io.Writer, err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(w, ui.RenderError(err.Error()))
}
