package cli

import (
	"errors"
	"fmt"

	"github.com/edp1096/transpice/pkg/simerr"
)

// Exit codes for CLI commands. Simulation failures map through
// simerr.ExitCode.
const (
	ExitSuccess      = simerr.ExitSuccess
	ExitFailure      = simerr.ExitFailure
	ExitCommandError = simerr.ExitCommandError
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return simerr.ExitCode(err)
}
