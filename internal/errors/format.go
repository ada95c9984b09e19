package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// asWikiError returns the first WikiError in the chain, wrapping anything else
// as an internal error.
func asWikiError(err error) *WikiError {
	var we *WikiError
	if errors.As(err, &we) {
		return we
	}
	return Wrap(ErrCodeInternal, err)
}

// FormatForUser returns a user-friendly error message.
// If debug is true, the underlying cause is included.
func FormatForUser(err error, debug bool) string {
	if err == nil {
		return ""
	}

	var we *WikiError
	if !errors.As(err, &we) {
		return err.Error()
	}

	var sb strings.Builder
	sb.WriteString("Error: ")
	sb.WriteString(we.Message)
	sb.WriteString("\n")

	if debug && we.Cause != nil {
		sb.WriteString("Cause: ")
		sb.WriteString(we.Cause.Error())
		sb.WriteString("\n")
	}

	if we.Suggestion != "" {
		sb.WriteString("\nSuggestion: ")
		sb.WriteString(we.Suggestion)
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("\n[%s]", we.Code))
	return sb.String()
}

// FormatForCLI formats an error for CLI output on stderr.
func FormatForCLI(err error) string {
	if err == nil {
		return ""
	}

	we := asWikiError(err)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Error: %s\n", we.Message))
	if we.Cause != nil && we.Cause.Error() != we.Message {
		sb.WriteString(fmt.Sprintf("  Cause: %s\n", we.Cause.Error()))
	}
	if we.Suggestion != "" {
		sb.WriteString(fmt.Sprintf("  Hint: %s\n", we.Suggestion))
	}
	sb.WriteString(fmt.Sprintf("  Code: %s\n", we.Code))

	return sb.String()
}

type jsonError struct {
	Code       string            `json:"code"`
	Message    string            `json:"message"`
	Category   string            `json:"category"`
	Severity   string            `json:"severity"`
	Details    map[string]string `json:"details,omitempty"`
	Suggestion string            `json:"suggestion,omitempty"`
	Cause      string            `json:"cause,omitempty"`
}

// FormatJSON returns a JSON representation of the error.
func FormatJSON(err error) ([]byte, error) {
	if err == nil {
		return json.Marshal(nil)
	}

	we := asWikiError(err)
	je := jsonError{
		Code:       we.Code,
		Message:    we.Message,
		Category:   string(we.Category),
		Severity:   string(we.Severity),
		Details:    we.Details,
		Suggestion: we.Suggestion,
	}
	if we.Cause != nil {
		je.Cause = we.Cause.Error()
	}

	return json.Marshal(je)
}

// FormatForLog formats an error for structured logging.
// Returns key-value pairs suitable for slog attributes.
func FormatForLog(err error) map[string]any {
	if err == nil {
		return nil
	}

	var we *WikiError
	if !errors.As(err, &we) {
		return map[string]any{
			"error": err.Error(),
		}
	}

	result := map[string]any{
		"error_code": we.Code,
		"message":    we.Message,
		"category":   string(we.Category),
		"severity":   string(we.Severity),
	}
	if we.Cause != nil {
		result["cause"] = we.Cause.Error()
	}
	if we.Suggestion != "" {
		result["suggestion"] = we.Suggestion
	}
	for k, v := range we.Details {
		result["detail_"+k] = v
	}

	return result
}
