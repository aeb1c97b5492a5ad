package zanapi

import (
	"errors"
	"fmt"
)

var (
	// ErrNetwork wraps every failure to reach the backend or read its reply.
	ErrNetwork = errors.New("network error")

	// ErrMalformedResponse is wrapped by an *APIError when a 2xx body is not JSON.
	ErrMalformedResponse = errors.New("malformed response")
)

// NetworkMessage is the text shown to users when the backend is unreachable.
const NetworkMessage = "Network error. Try again."

// APIError is a failed backend call that did get an answer.
type APIError struct {
	// StatusCode is the HTTP status of the response.
	StatusCode int

	// Message is the backend's "error" string, or "Request failed".
	Message string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// Unwrap returns the underlying cause.
func (e *APIError) Unwrap() error {
	return e.Err
}

// Message returns the text a screen should show for err. Network failures
// get NetworkMessage, backend messages are passed through verbatim and
// everything else gets fallback.
func Message(err error, fallback string) string {
	if err == nil {
		return ""
	}

	if errors.Is(err, ErrNetwork) {
		return NetworkMessage
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" && apiErr.Message != fallbackMessage {
		return apiErr.Message
	}

	return fallback
}
