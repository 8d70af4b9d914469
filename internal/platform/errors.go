package platform

import "fmt"

// APIError is a non-2xx response from a source platform. It carries the
// status code and raw body so callers can decide how to react; the client
// never retries on its own.
type APIError struct {
	Platform string
	Status   int
	Body     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s returned status %d: %s", e.Platform, e.Status, e.Body)
}

// TransportError is a network or timeout failure before any HTTP status was
// received.
type TransportError struct {
	Platform string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s request failed: %v", e.Platform, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
