// Package mcp implements the Model Context Protocol server that exposes the
// built site index to AI clients.
package mcp

import (
	"context"
	"errors"
	"fmt"

	wikierrors "github.com/wiqnnc/wiki/internal/errors"
)

// Custom MCP error codes.
const (
	// ErrCodeIndexNotFound indicates the search artifacts are missing or unreadable.
	ErrCodeIndexNotFound = -32001

	// ErrCodeTimeout indicates the request timed out or was cancelled.
	ErrCodeTimeout = -32003

	// Standard JSON-RPC error codes.
	ErrCodeInvalidRequest = -32600
	ErrCodeMethodNotFound = -32601
	ErrCodeInvalidParams  = -32602
	ErrCodeInternalError  = -32603
)

// Sentinel errors for internal use.
var (
	// ErrIndexNotFound indicates no index is loaded.
	ErrIndexNotFound = errors.New("index not found")

	// ErrToolNotFound indicates the requested tool does not exist.
	ErrToolNotFound = errors.New("tool not found")

	// ErrInvalidParams indicates invalid parameters were provided.
	ErrInvalidParams = errors.New("invalid parameters")
)

// MCPError represents an MCP protocol error with code and message.
type MCPError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// MapError converts internal errors to MCP errors.
func MapError(err error) *MCPError {
	if err == nil {
		return nil
	}

	var mcpErr *MCPError
	if errors.As(err, &mcpErr) {
		return mcpErr
	}

	var wikiErr *wikierrors.WikiError
	if errors.As(err, &wikiErr) {
		return mapWikiError(wikiErr)
	}

	switch {
	case errors.Is(err, ErrIndexNotFound):
		return &MCPError{
			Code:    ErrCodeIndexNotFound,
			Message: "Index not found. Run 'wiki build' first.",
		}
	case errors.Is(err, context.DeadlineExceeded):
		return &MCPError{
			Code:    ErrCodeTimeout,
			Message: "Request timed out.",
		}
	case errors.Is(err, context.Canceled):
		return &MCPError{
			Code:    ErrCodeTimeout,
			Message: "Request was canceled.",
		}
	case errors.Is(err, ErrToolNotFound):
		return &MCPError{
			Code:    ErrCodeMethodNotFound,
			Message: "Tool not found.",
		}
	case errors.Is(err, ErrInvalidParams):
		return &MCPError{
			Code:    ErrCodeInvalidParams,
			Message: "Invalid parameters.",
		}
	default:
		return &MCPError{
			Code:    ErrCodeInternalError,
			Message: "Internal server error.",
		}
	}
}

// NewInvalidParamsError creates an error for invalid parameters with a custom message.
func NewInvalidParamsError(msg string) *MCPError {
	return &MCPError{
		Code:    ErrCodeInvalidParams,
		Message: msg,
	}
}

// NewMethodNotFoundError creates an error for unknown tools.
func NewMethodNotFoundError(name string) *MCPError {
	return &MCPError{
		Code:    ErrCodeMethodNotFound,
		Message: fmt.Sprintf("Tool '%s' not found.", name),
	}
}

func mapWikiError(we *wikierrors.WikiError) *MCPError {
	message := we.Message
	if we.Suggestion != "" {
		message = fmt.Sprintf("%s %s", we.Message, we.Suggestion)
	}

	switch we.Category {
	case wikierrors.CategoryIO:
		if we.Code == wikierrors.ErrCodeCorruptIndex {
			return &MCPError{Code: ErrCodeIndexNotFound, Message: message}
		}
		return &MCPError{Code: ErrCodeInternalError, Message: message}
	case wikierrors.CategoryFetch:
		return &MCPError{Code: ErrCodeIndexNotFound, Message: message}
	case wikierrors.CategoryValidation:
		return &MCPError{Code: ErrCodeInvalidParams, Message: message}
	default:
		return &MCPError{Code: ErrCodeInternalError, Message: message}
	}
}
