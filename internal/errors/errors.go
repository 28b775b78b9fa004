// Package errors defines domain-level errors used throughout the application.
// These errors represent failures of a single tool invocation and are mapped to tool error results
// at the MCP boundary (see internal/tools) and to exit codes/output at the CLI boundary.
//
// NOTE: Important for developers
// When adding a new error here, you MUST consider how it should be reported to callers.
//
// Unmapped errors are reported with the kind "internal".
//
// Don't forget to:
// 1. Add your error to errorKind (internal/tools/result.go)
// 2. Add a test case to TestErrorKind (internal/tools/result_test.go)
package errors

import (
	"errors"
)

var (
	// ErrInvalidArgument indicates that the caller supplied invalid input.
	// It is always detected before any network call is attempted.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrTransport indicates that the remote service could not be reached,
	// e.g. a timeout, a refused connection, a DNS failure or a cancelled request.
	ErrTransport = errors.New("transport error")

	// ErrRemote indicates that the remote service answered with a non-2xx status code.
	ErrRemote = errors.New("remote service error")

	// ErrMalformedResponse indicates that the remote service answered with a 2xx status code,
	// but the body could not be parsed into the expected shape.
	ErrMalformedResponse = errors.New("malformed response")
)
