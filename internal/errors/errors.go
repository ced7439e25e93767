package errors

import (
	"errors"
	"fmt"
)

// ProjectError is the structured error type for verify-project.
// It carries enough context for logging and for the CLI's fatal message.
type ProjectError struct {
	// Code is the unique error code (e.g., "ERR_201_FILE_NOT_FOUND").
	Code string

	// Message is the human-readable error message.
	Message string

	// Category is the error category (Config, IO, Internal).
	Category Category

	// Severity is the error severity level.
	Severity Severity

	// Details contains additional context as key-value pairs.
	Details map[string]string

	// Cause is the underlying error that caused this error.
	Cause error

	// Suggestion is an actionable hint for the user.
	Suggestion string
}

// Error implements the error interface.
func (e *ProjectError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain support.
func (e *ProjectError) Unwrap() error {
	return e.Cause
}

// Is matches another ProjectError by code so errors.Is works against
// sentinel-style values built with New.
func (e *ProjectError) Is(target error) bool {
	if t, ok := target.(*ProjectError); ok {
		return e.Code == t.Code
	}
	return false
}

// WithDetail adds a key-value detail to the error.
func (e *ProjectError) WithDetail(key, value string) *ProjectError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// WithSuggestion adds an actionable suggestion for the user.
func (e *ProjectError) WithSuggestion(suggestion string) *ProjectError {
	e.Suggestion = suggestion
	return e
}

// New creates a new ProjectError. Category and severity derive from the code.
func New(code string, message string, cause error) *ProjectError {
	return &ProjectError{
		Code:     code,
		Message:  message,
		Category: categoryFromCode(code),
		Severity: severityFromCode(code),
		Cause:    cause,
	}
}

// Wrap creates a ProjectError from an existing error, reusing its message.
func Wrap(code string, err error) *ProjectError {
	if err == nil {
		return nil
	}
	return New(code, err.Error(), err)
}

// ConfigError creates a configuration-related error.
func ConfigError(message string, cause error) *ProjectError {
	return New(ErrCodeConfigInvalid, message, cause)
}

// InternalError creates an internal error.
func InternalError(message string, cause error) *ProjectError {
	return New(ErrCodeInternal, message, cause)
}

// IsFatal reports whether err carries fatal severity anywhere in its chain.
func IsFatal(err error) bool {
	var pe *ProjectError
	if errors.As(err, &pe) {
		return pe.Severity == SeverityFatal
	}
	return false
}

// GetCode extracts the error code from the first ProjectError in the chain.
// Returns empty string if there is none.
func GetCode(err error) string {
	var pe *ProjectError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ""
}
