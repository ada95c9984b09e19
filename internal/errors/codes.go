// Package errors provides structured error handling for the wiki tooling.
//
// Error codes follow the pattern ERR_XXX_DESCRIPTION where:
//   - 1XX: Configuration errors
//   - 2XX: IO errors (source files, artifacts)
//   - 3XX: Fetch errors (index bootstrap)
//   - 4XX: Validation errors (content collections, queries)
//   - 5XX: Internal errors
package errors

// Category defines error categories for classification.
type Category string

const (
	// CategoryConfig indicates configuration-related errors.
	CategoryConfig Category = "CONFIG"
	// CategoryIO indicates file and artifact I/O errors.
	CategoryIO Category = "IO"
	// CategoryFetch indicates index or manifest fetch errors.
	CategoryFetch Category = "FETCH"
	// CategoryValidation indicates content or input validation errors.
	CategoryValidation Category = "VALIDATION"
	// CategoryInternal indicates unexpected internal errors.
	CategoryInternal Category = "INTERNAL"
)

// Severity defines error severity levels.
type Severity string

const (
	// SeverityFatal indicates unrecoverable error, must abort.
	SeverityFatal Severity = "FATAL"
	// SeverityError indicates operation failed but can continue.
	SeverityError Severity = "ERROR"
	// SeverityWarning indicates degraded operation, continuing.
	SeverityWarning Severity = "WARNING"
)

// Error codes organized by category.
const (
	// Config errors (100-199)
	ErrCodeConfigInvalid = "ERR_101_CONFIG_INVALID"
	ErrCodeConfigRead    = "ERR_102_CONFIG_READ"

	// IO errors (200-299)
	ErrCodeSourceUnreadable = "ERR_201_SOURCE_UNREADABLE"
	ErrCodeArtifactWrite    = "ERR_202_ARTIFACT_WRITE"
	ErrCodeBuildLocked      = "ERR_203_BUILD_LOCKED"
	ErrCodeCorruptIndex     = "ERR_204_CORRUPT_INDEX"

	// Fetch errors (300-399)
	ErrCodeFetchFailed = "ERR_301_FETCH_FAILED"
	ErrCodeFetchStatus = "ERR_302_FETCH_STATUS"

	// Validation errors (400-499)
	ErrCodeSchemaInvalid = "ERR_401_SCHEMA_INVALID"
	ErrCodeDuplicateID   = "ERR_402_DUPLICATE_ID"
	ErrCodeInvalidDoc    = "ERR_403_INVALID_DOCUMENT"
	ErrCodeInvalidInput  = "ERR_404_INVALID_INPUT"

	// Internal errors (500-599)
	ErrCodeInternal     = "ERR_501_INTERNAL"
	ErrCodeSearchFailed = "ERR_502_SEARCH_FAILED"
)

// categoryFromCode extracts category from error code.
func categoryFromCode(code string) Category {
	if len(code) < 7 {
		return CategoryInternal
	}

	// Extract numeric portion (e.g., "101" from "ERR_101_CONFIG_INVALID")
	switch code[4] {
	case '1':
		return CategoryConfig
	case '2':
		return CategoryIO
	case '3':
		return CategoryFetch
	case '4':
		return CategoryValidation
	default:
		return CategoryInternal
	}
}

// severityFromCode determines severity based on error code.
func severityFromCode(code string) Severity {
	switch code {
	case ErrCodeCorruptIndex, ErrCodeArtifactWrite:
		return SeverityFatal
	case ErrCodeSearchFailed:
		// A failed lookup degrades to zero results.
		return SeverityWarning
	}
	return SeverityError
}
