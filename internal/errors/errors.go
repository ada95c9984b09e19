package errors

import (
	"errors"
	"fmt"
)

// WikiError is the structured error type for the wiki tooling.
// It provides rich context for error handling, logging, and user presentation.
type WikiError struct {
	// Code is the unique error code (e.g., "ERR_201_SOURCE_UNREADABLE").
	Code string

	// Message is the human-readable error message.
	Message string

	// Category is the error category (Config, IO, Fetch, etc.).
	Category Category

	// Severity is the error severity level.
	Severity Severity

	// Details contains additional context as key-value pairs.
	Details map[string]string

	// Cause is the underlying error that caused this error.
	Cause error

	// Suggestion is an actionable suggestion for the user.
	Suggestion string
}

// Error implements the error interface.
func (e *WikiError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain support.
func (e *WikiError) Unwrap() error {
	return e.Cause
}

// Is checks if this error matches the target error by code.
func (e *WikiError) Is(target error) bool {
	if t, ok := target.(*WikiError); ok {
		return e.Code == t.Code
	}
	return false
}

// WithDetail adds a key-value detail to the error.
// Returns the error for method chaining.
func (e *WikiError) WithDetail(key, value string) *WikiError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// WithSuggestion adds an actionable suggestion for the user.
func (e *WikiError) WithSuggestion(suggestion string) *WikiError {
	e.Suggestion = suggestion
	return e
}

// New creates a new WikiError with the given code and message.
// Category and severity are derived from the code.
func New(code string, message string, cause error) *WikiError {
	return &WikiError{
		Code:     code,
		Message:  message,
		Category: categoryFromCode(code),
		Severity: severityFromCode(code),
		Cause:    cause,
	}
}

// Wrap creates a WikiError from an existing error.
// The error's message becomes the WikiError message.
func Wrap(code string, err error) *WikiError {
	if err == nil {
		return nil
	}
	return New(code, err.Error(), err)
}

// ConfigError creates a configuration-related error.
func ConfigError(message string, cause error) *WikiError {
	return New(ErrCodeConfigInvalid, message, cause)
}

// SourceError creates an error for an unreadable content collection.
func SourceError(collection string, cause error) *WikiError {
	return New(ErrCodeSourceUnreadable, fmt.Sprintf("cannot read collection %q", collection), cause).
		WithDetail("collection", collection)
}

// ValidationError creates a validation-related error.
func ValidationError(message string, cause error) *WikiError {
	return New(ErrCodeSchemaInvalid, message, cause)
}

// InternalError creates an internal error.
func InternalError(message string, cause error) *WikiError {
	return New(ErrCodeInternal, message, cause)
}

// IsFatal checks if an error has fatal severity.
func IsFatal(err error) bool {
	var we *WikiError
	if errors.As(err, &we) {
		return we.Severity == SeverityFatal
	}
	return false
}

// GetCode extracts the error code from the first WikiError in the chain.
// Returns empty string if there is none.
func GetCode(err error) string {
	var we *WikiError
	if errors.As(err, &we) {
		return we.Code
	}
	return ""
}

// GetCategory extracts the category from the first WikiError in the chain.
func GetCategory(err error) Category {
	var we *WikiError
	if errors.As(err, &we) {
		return we.Category
	}
	return ""
}
