package invenio

import (
	"errors"
	"fmt"
)

// Sentinel errors used for simple equality-style checks.
var (
	// ErrHTTP indicates the server was reached but refused the request
	// (non-2xx status).
	ErrHTTP = errors.New("invenio: request refused by server")

	// ErrTransport indicates the server was never reached (DNS, connection,
	// timeout). Callers can branch on ErrHTTP vs ErrTransport to tell
	// "refused" apart from "unreachable".
	ErrTransport = errors.New("invenio: transport failure")

	// ErrDestinationNotDir indicates a download destination exists and is a
	// regular file where a directory is required.
	ErrDestinationNotDir = errors.New("invenio: destination is not a directory")
)

// HTTPError is a typed error for non-2xx responses. It carries the operation
// description, the status code, and the server-supplied message so callers
// can report or branch on all three.
type HTTPError struct {
	Op            string
	StatusCode    int
	ServerMessage string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("Error while %s, info: %s", e.Op, e.ServerMessage)
}

func (e *HTTPError) Is(target error) bool {
	return target == ErrHTTP
}

func (e *HTTPError) Unwrap() error { return ErrHTTP }

// IsHTTPError reports whether err is (or wraps) a checked HTTP failure.
func IsHTTPError(err error) bool {
	return errors.Is(err, ErrHTTP)
}

// TransportError is a typed error for requests that never produced a
// response.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("unable to reach server while %s: %v", e.Op, e.Err)
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsTransportError reports whether err is (or wraps) a transport failure.
func IsTransportError(err error) bool {
	return errors.Is(err, ErrTransport)
}

// DestinationError is a typed error for a download destination that exists
// as a regular file.
type DestinationError struct {
	Path string
}

func (e *DestinationError) Error() string {
	return fmt.Sprintf("%s is a file which exists. Must be a directory.", e.Path)
}

func (e *DestinationError) Is(target error) bool {
	return target == ErrDestinationNotDir
}

func (e *DestinationError) Unwrap() error { return ErrDestinationNotDir }
