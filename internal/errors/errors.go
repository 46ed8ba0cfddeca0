// Package errors provides structured error types and exit codes for bugfind.
package errors

import (
	"errors"
	"fmt"
)

// Exit codes returned by the CLI.
const (
	ExitSuccess          = 0 // No mismatch found, or utility command succeeded
	ExitMismatch         = 1 // Candidate and reference disagree on some input
	ExitConfigError      = 2 // Invalid flags or config file
	ExitEnvironmentError = 3 // Program executable not available
	ExitRuntimeError     = 4 // Program crashed, timed out, or produced malformed output
)

// ErrorKind represents the type of error.
type ErrorKind int

const (
	KindRuntime ErrorKind = iota
	KindConfig
	KindValidation
	KindEnvironment
)

// BugfindError is the base error type for bugfind.
type BugfindError struct {
	Kind    ErrorKind
	Message string
	Program string // Program role ("candidate", "reference") if applicable
	Cause   error  // Underlying error
}

func (e *BugfindError) Error() string {
	msg := e.Message
	if e.Program != "" {
		msg = fmt.Sprintf("[%s] %s", e.Program, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *BugfindError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the appropriate exit code for this error.
func (e *BugfindError) ExitCode() int {
	switch e.Kind {
	case KindConfig, KindValidation:
		return ExitConfigError
	case KindEnvironment:
		return ExitEnvironmentError
	default:
		return ExitRuntimeError
	}
}

// New creates a new runtime error.
func New(message string) *BugfindError {
	return &BugfindError{
		Kind:    KindRuntime,
		Message: message,
	}
}

// Newf creates a new runtime error with formatting.
func Newf(format string, args ...interface{}) *BugfindError {
	return New(fmt.Sprintf(format, args...))
}

// Config creates a new configuration error.
func Config(message string) *BugfindError {
	return &BugfindError{
		Kind:    KindConfig,
		Message: message,
	}
}

// Configf creates a new configuration error with formatting.
func Configf(format string, args ...interface{}) *BugfindError {
	return Config(fmt.Sprintf(format, args...))
}

// ConfigWrap wraps err as a configuration error.
func ConfigWrap(err error, message string) *BugfindError {
	return &BugfindError{
		Kind:    KindConfig,
		Message: message,
		Cause:   err,
	}
}

// Validation wraps a configuration that loaded but failed its checks.
func Validation(err error, message string) *BugfindError {
	return &BugfindError{
		Kind:    KindValidation,
		Message: message,
		Cause:   err,
	}
}

// Environment creates a new environment error.
func Environment(message string) *BugfindError {
	return &BugfindError{
		Kind:    KindEnvironment,
		Message: message,
	}
}

// Environmentf creates a new environment error with formatting.
func Environmentf(format string, args ...interface{}) *BugfindError {
	return Environment(fmt.Sprintf(format, args...))
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) *BugfindError {
	return &BugfindError{
		Kind:    KindRuntime,
		Message: message,
		Cause:   err,
	}
}

// ProgramError creates a runtime error attributed to one of the compared programs.
func ProgramError(program, message string, cause error) *BugfindError {
	return &BugfindError{
		Kind:    KindRuntime,
		Program: program,
		Message: message,
		Cause:   cause,
	}
}

// GetExitCode returns the exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var be *BugfindError
	if errors.As(err, &be) {
		return be.ExitCode()
	}
	return ExitRuntimeError
}
