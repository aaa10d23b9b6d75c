package adapter

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

var statusErrors = map[int]error{
	http.StatusBadRequest:          ErrBadRequest,
	http.StatusUnauthorized:        ErrUnauthorized,
	http.StatusForbidden:           ErrForbidden,
	http.StatusNotFound:            ErrNotFound,
	http.StatusConflict:            ErrConflict,
	http.StatusInternalServerError: ErrInternalServerError,
	http.StatusBadGateway:          ErrBadGateway,
	http.StatusServiceUnavailable:  ErrServerUnavailable,
	http.StatusGatewayTimeout:      ErrServerUnavailable,
}

// StatusError is a non-2xx reply. Body is the server message with
// surrounding whitespace trimmed.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if kind, ok := statusErrors[e.Code]; ok {
		return fmt.Sprintf("%s: %s", kind, e.Body)
	}
	body := e.Body
	if body == "" {
		body = http.StatusText(e.Code)
	}
	return fmt.Sprintf("http %d: %s", e.Code, body)
}

// Unwrap exposes the status sentinel, so errors.Is(err, ErrConflict) works
// without inspecting the code.
func (e *StatusError) Unwrap() error {
	return statusErrors[e.Code]
}

func mapHTTPError(resp *resty.Response) error {
	code := resp.StatusCode()
	if code >= http.StatusOK && code < http.StatusMultipleChoices {
		return nil
	}
	return &StatusError{Code: code, Body: strings.TrimSpace(string(resp.Body()))}
}

// ServerMessage returns the body of the server reply carried by err, or ""
// when err did not come from a response.
func ServerMessage(err error) string {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Body
	}
	return ""
}

// IsTransient reports whether err means the server could not process the
// request right now, so nothing changed on either side.
func IsTransient(err error) bool {
	for _, target := range []error{ErrNetwork, ErrServerUnavailable, ErrBadGateway, ErrInternalServerError} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
