package client

import (
	"errors"
	"fmt"
)

// Error codes carried by APIError.
const (
	ErrCodeConnection = "connection_error"
	ErrCodeNotFound   = "not_found"
	ErrCodeUnknown    = "unknown_error"
)

// APIError is returned for transport failures and non-2xx responses.
type APIError struct {
	StatusCode int
	ErrorCode  string
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode == ErrCodeNotFound
}

// FormatConnectionError returns a user-friendly error message for connection
// failures and the plain message otherwise.
func FormatConnectionError(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.ErrorCode == ErrCodeConnection {
		return fmt.Sprintf(`Error: %s

Suggestions:
  • Start the student API server
  • Check if the server is running on the expected port
  • Verify the API URL with: roster config`, apiErr.Message)
	}
	return err.Error()
}
