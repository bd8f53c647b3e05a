package model

import (
	"fmt"
)

// HTTPError is returned when the backend answers with a body that could not be
// decoded as the expected JSON envelope.
type HTTPError struct {
	StatusCode int
	Err        error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("HTTP %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// APIError is a well-formed response with success=false.
type APIError struct {
	StatusCode int
	Message    string // backend's "error" field, may be empty
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed (HTTP %d)", e.StatusCode)
	}
	return e.Message
}
