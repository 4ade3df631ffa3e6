package client

import "fmt"

// Error kinds produced by the facade. Transport failures map to Network or
// Timeout; a non-2xx response carries the server's own error kind.
const (
	KindNetwork = "network"
	KindTimeout = "timeout"
	KindServer  = "server"
)

// Error is the single error type returned by every facade call.
type Error struct {
	// Kind is one of the transport kinds above, or the kind string from the
	// server's error body (validation, authentication, not_found, conflict,
	// booking_failed).
	Kind    string
	Status  int
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s (%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// KindOf returns the facade kind of err, or "" for nil and foreign errors.
func KindOf(err error) string {
	if e, ok := err.(*Error); ok {
		return e.Kind
	}
	return ""
}
