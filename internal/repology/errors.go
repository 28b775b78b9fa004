package repology

import (
	stdErrors "errors"
	"fmt"
	"net/http"

	"github.com/mozilla-ai/repology-mcp/internal/errors"
)

// maxErrorBodyBytes caps the response body excerpt kept on a RemoteError.
const maxErrorBodyBytes = 1024

// errBreakerOpen is wrapped in a TransportError when the circuit breaker rejects a request.
var errBreakerOpen = stdErrors.New("circuit breaker open")

// RemoteError is returned when the remote service answers with a non-2xx status code.
type RemoteError struct {
	StatusCode int
	URL        string

	// Body is an excerpt of the response body (at most 1 KiB).
	Body string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s: HTTP %d: %s", errors.ErrRemote, e.StatusCode, e.URL)
}

func (e *RemoteError) Unwrap() error {
	return errors.ErrRemote
}

// IsNotFound returns true if the error represents a 404 response.
func (e *RemoteError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// Temporary reports whether the status indicates a transient condition (429 or 5xx).
func (e *RemoteError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}

// TransportError is returned when the remote service could not be reached.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: GET %s: %v", errors.ErrTransport, e.URL, e.Err)
}

func (e *TransportError) Unwrap() []error {
	return []error{errors.ErrTransport, e.Err}
}

// MalformedResponseError is returned when a 2xx response body cannot be decoded.
type MalformedResponseError struct {
	URL string
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("%s: %s: %v", errors.ErrMalformedResponse, e.URL, e.Err)
}

func (e *MalformedResponseError) Unwrap() []error {
	return []error{errors.ErrMalformedResponse, e.Err}
}

// invalidArgument returns an error wrapping errors.ErrInvalidArgument.
func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errors.ErrInvalidArgument, fmt.Sprintf(format, args...))
}
