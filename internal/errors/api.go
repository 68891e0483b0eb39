package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Status sentinels for failures where the backend never answered.
const (
	// StatusNoResponse marks a request that was sent but got no response.
	StatusNoResponse = 0
	// StatusRequestFailed marks a request that could not be built or sent.
	StatusRequestFailed = -1
)

// APIError is the uniform shape of every backend call failure.
// Callers tell the three cases apart by Status: a real HTTP status when the
// server responded, StatusNoResponse, or StatusRequestFailed.
type APIError struct {
	Message string
	Status  int
	// Data is the decoded error payload. Only set when the server responded.
	Data  any
	Cause error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (status %d): %v", e.Message, e.Status, e.Cause)
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// Unwrap returns the underlying cause.
func (e *APIError) Unwrap() error {
	return e.Cause
}

// Responded reports whether the server produced an HTTP response.
func (e *APIError) Responded() bool { return e.Status > 0 }

// NoResponse reports whether the request went out without an answer.
func (e *APIError) NoResponse() bool { return e.Status == StatusNoResponse }

// RequestFailed reports whether the request never left the client.
func (e *APIError) RequestFailed() bool { return e.Status == StatusRequestFailed }

// AsAPIError extracts an APIError from err's chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsUnauthorizedStatus reports whether err is an APIError carrying HTTP 401.
func IsUnauthorizedStatus(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Status == http.StatusUnauthorized
}
