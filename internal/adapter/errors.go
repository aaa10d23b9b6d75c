package adapter

import "errors"

// Status-mapped errors. Each wraps the trimmed response body, so callers can
// match the exact server message after errors.Is.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrBadGateway          = errors.New("bad gateway")
	ErrInternalServerError = errors.New("internal server error")
	ErrServerUnavailable   = errors.New("server unavailable")
)

// ErrNetwork wraps failures where no response was received at all.
var ErrNetwork = errors.New("network error")

// ErrMalformedResponse is returned when a 2xx response cannot be decoded.
var ErrMalformedResponse = errors.New("malformed server response")
