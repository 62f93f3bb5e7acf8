// Package simerr defines the failure taxonomy of the simulation core.
//
// Every failure raised by the waveform engine, the companion-model engine or
// the time-stepping controller wraps one of the sentinel errors below, so a
// host can classify it with errors.Is and map it to a process exit code with
// ExitCode.
package simerr

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConfig marks an inconsistent circuit or analysis configuration.
	// Raised before any solve is attempted.
	ErrConfig = errors.New("configuration inconsistent")

	// ErrUnimplemented marks a model kind that is reserved but has no behavior.
	ErrUnimplemented = errors.New("unimplemented model requested")

	// ErrSolve marks a singular or numerically unusable linear system.
	ErrSolve = errors.New("solve failed")
)

// Exit codes for hosts that terminate the process on failure.
const (
	ExitSuccess       = 0
	ExitFailure       = 1
	ExitCommandError  = 2
	ExitConfig        = 3
	ExitSolve         = 4
	ExitUnimplemented = 5
)

// Code categorizes a simulation failure.
type Code string

const (
	CodeConfig        Code = "CONFIG"
	CodeUnimplemented Code = "UNIMPLEMENTED"
	CodeSolve         Code = "SOLVE"
)

// Error is a simulation failure with enough context to diagnose it.
type Error struct {
	// Code identifies the error category.
	Code Code

	// Op is the operation that failed, e.g. "waveform.Resolve".
	Op string

	// Component names the offending circuit element, if any.
	Component string

	// Step and Time locate numerical failures on the time grid.
	// Step is -1 when the failure happened outside the grid.
	Step int
	Time float64

	Err error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Code))
	if e.Op != "" {
		b.WriteString(": ")
		b.WriteString(e.Op)
	}
	if e.Component != "" {
		fmt.Fprintf(&b, " [%s]", e.Component)
	}
	if e.Step >= 0 {
		fmt.Fprintf(&b, " at step %d (t=%g)", e.Step, e.Time)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if s := e.sentinel(); s != nil {
		errs = append(errs, s)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func (e *Error) sentinel() error {
	switch e.Code {
	case CodeConfig:
		return ErrConfig
	case CodeUnimplemented:
		return ErrUnimplemented
	case CodeSolve:
		return ErrSolve
	}
	return nil
}

// Config returns a configuration error for op.
func Config(op, format string, args ...any) *Error {
	return &Error{Code: CodeConfig, Op: op, Step: -1, Err: fmt.Errorf(format, args...)}
}

// Unimplemented returns an unimplemented-model error for op.
func Unimplemented(op, what string) *Error {
	return &Error{Code: CodeUnimplemented, Op: op, Step: -1, Err: fmt.Errorf("%s has no model", what)}
}

// Solve returns a numerical error located at the given step of the time grid.
func Solve(op string, step int, t float64, err error) *Error {
	return &Error{Code: CodeSolve, Op: op, Step: step, Time: t, Err: err}
}

// WithComponent returns a copy of err naming the component it concerns.
// Errors that are not *Error are returned unchanged.
func WithComponent(err error, name string) error {
	var se *Error
	if !errors.As(err, &se) {
		return err
	}
	cp := *se
	cp.Component = name
	return &cp
}

// ExitCode maps err to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrConfig):
		return ExitConfig
	case errors.Is(err, ErrSolve):
		return ExitSolve
	case errors.Is(err, ErrUnimplemented):
		return ExitUnimplemented
	}
	return ExitFailure
}
