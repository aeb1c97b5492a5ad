package http

import (
	"errors"
	"net/http"

	"github.com/zancompute/zanconfig/internal/console/service"
	"github.com/zancompute/zanconfig/pkg/zanapi"
)

// ErrorResponse is the body of a failed JSON endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}

// messageFor returns the text a page shows for err: the validation message,
// the network message, the backend's own message, or fallback.
func messageFor(err error, fallback string) string {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	return zanapi.Message(err, fallback)
}

// statusFor picks the status a page is re-rendered with after err.
// Backend 4xx answers pass through; everything else upstream is a 502.
func statusFor(err error) int {
	if errors.Is(err, service.ErrValidation) {
		return http.StatusUnprocessableEntity
	}
	if errors.Is(err, zanapi.ErrNetwork) {
		return http.StatusBadGateway
	}

	var apiErr *zanapi.APIError
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
			return apiErr.StatusCode
		}
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
