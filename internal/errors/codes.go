// Package errors provides structured error handling for verify-project.
//
// Error codes follow the pattern ERR_XXX_DESCRIPTION where:
//   - 1XX: Project and configuration errors
//   - 2XX: IO errors (file reads, permissions, encoding)
//   - 5XX: Internal and verification errors
package errors

// Category defines error categories for classification.
type Category string

const (
	// CategoryConfig indicates project layout or configuration errors.
	CategoryConfig Category = "CONFIG"
	// CategoryIO indicates file and disk I/O errors.
	CategoryIO Category = "IO"
	// CategoryInternal indicates unexpected internal errors.
	CategoryInternal Category = "INTERNAL"
)

// Severity defines error severity levels.
type Severity string

const (
	// SeverityFatal aborts the invocation before any checks run.
	SeverityFatal Severity = "FATAL"
	// SeverityError fails the current routine but the run continues.
	SeverityError Severity = "ERROR"
)

// Error codes organized by category.
const (
	// Project / config errors (100-199)
	ErrCodeProjectNotFound = "ERR_101_PROJECT_NOT_FOUND"
	ErrCodeConfigInvalid   = "ERR_102_CONFIG_INVALID"

	// IO errors (200-299)
	ErrCodeFileNotFound   = "ERR_201_FILE_NOT_FOUND"
	ErrCodeFilePermission = "ERR_202_FILE_PERMISSION"
	ErrCodeFileNotText    = "ERR_206_FILE_NOT_TEXT"
	ErrCodeFileRead       = "ERR_207_FILE_READ"

	// Internal errors (500-599)
	ErrCodeInternal           = "ERR_501_INTERNAL"
	ErrCodeVerificationFailed = "ERR_502_VERIFICATION_FAILED"
)

// categoryFromCode extracts category from error code.
func categoryFromCode(code string) Category {
	if len(code) < 7 {
		return CategoryInternal
	}

	// "101" from "ERR_101_PROJECT_NOT_FOUND"
	switch code[4] {
	case '1':
		return CategoryConfig
	case '2':
		return CategoryIO
	default:
		return CategoryInternal
	}
}

// severityFromCode determines severity based on error code.
func severityFromCode(code string) Severity {
	switch code {
	case ErrCodeProjectNotFound, ErrCodeConfigInvalid:
		return SeverityFatal
	default:
		return SeverityError
	}
}
