package tools

import (
	"encoding/json"
	stdErrors "errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mozilla-ai/repology-mcp/internal/errors"
	"github.com/mozilla-ai/repology-mcp/internal/repology"
)

const (
	ErrorKindInvalidArgument   ErrorKind = "invalid_argument"
	ErrorKindTransport         ErrorKind = "transport"
	ErrorKindRemote            ErrorKind = "remote"
	ErrorKindMalformedResponse ErrorKind = "malformed_response"
	ErrorKindInternal          ErrorKind = "internal"
)

// ErrorKind classifies a failed tool call for the caller.
type ErrorKind string

// ErrorResult is the structured content of a failed tool call.
type ErrorResult struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail describes why a tool call failed.
type ErrorDetail struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`

	// Status is the HTTP status code returned by Repology, only set for remote errors.
	Status int `json:"status,omitempty"`
}

// ProjectsResult is the structured content returned by search_projects and list_projects.
type ProjectsResult struct {
	Projects []repology.ProjectSummary `json:"projects"`
	Message  string                    `json:"message,omitempty"`
}

// ProjectResult is the structured content returned by get_project.
type ProjectResult struct {
	Name     string             `json:"name"`
	Packages []repology.Package `json:"packages"`
	Message  string             `json:"message,omitempty"`
}

// ProblemsResult is the structured content returned by the problem tools.
type ProblemsResult struct {
	Problems []repology.Problem `json:"problems"`
	Message  string             `json:"message,omitempty"`
}

// errorKind maps an error onto the kind reported to the caller.
//
// NOTE: Keep this function in sync with internal/errors/errors.go.
// Every error defined there should have an explicit case here otherwise it will be reported as internal.
func errorKind(err error) ErrorKind {
	switch {
	case stdErrors.Is(err, errors.ErrInvalidArgument):
		return ErrorKindInvalidArgument
	case stdErrors.Is(err, errors.ErrTransport):
		return ErrorKindTransport
	case stdErrors.Is(err, errors.ErrRemote):
		return ErrorKindRemote
	case stdErrors.Is(err, errors.ErrMalformedResponse):
		return ErrorKindMalformedResponse
	default:
		return ErrorKindInternal
	}
}

// newErrorResult converts err into a tool error result carrying an ErrorResult.
func newErrorResult(err error) *mcp.CallToolResult {
	detail := ErrorDetail{
		Kind:    errorKind(err),
		Message: err.Error(),
	}

	var remoteErr *repology.RemoteError
	if stdErrors.As(err, &remoteErr) {
		detail.Status = remoteErr.StatusCode
	}

	structured := ErrorResult{Error: detail}

	return &mcp.CallToolResult{
		Content:           []mcp.Content{mcp.NewTextContent(mustJSON(structured))},
		StructuredContent: structured,
		IsError:           true,
	}
}

// newResult returns a successful tool result carrying v as structured content with a JSON text fallback.
func newResult(v any) *mcp.CallToolResult {
	return mcp.NewToolResultStructured(v, mustJSON(v))
}

// mustJSON renders v as indented JSON.
// The result types in this package always marshal, so a failure is reported inline.
func mustJSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error":{"kind":%q,"message":%q}}`, ErrorKindInternal, err.Error())
	}
	return string(b)
}
