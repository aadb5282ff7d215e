package client

import "fmt"

// HTTPStatusError reports a non-2xx provider response. The body is deliberately not kept.
type HTTPStatusError struct {
	URL        string
	StatusCode int
}

// Error implements the error interface
func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d", e.StatusCode)
}
