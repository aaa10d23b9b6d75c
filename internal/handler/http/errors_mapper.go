package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-story-sync/internal/app"
	"github.com/MKhiriev/go-story-sync/internal/collab"
	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/internal/service"
	"github.com/MKhiriev/go-story-sync/internal/store"
	"github.com/MKhiriev/go-story-sync/internal/validators"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrWrongPassword:           http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrAccessDenied:            http.StatusForbidden,
	service.ErrHashMismatch:            http.StatusBadRequest,
	service.ErrVersionIsNotSpecified:   http.StatusBadRequest,

	collab.ErrAccessDenied:     http.StatusForbidden,
	collab.ErrProjectMismatch:  http.StatusForbidden,
	collab.ErrSessionNotFound:  http.StatusNotFound,
	collab.ErrNotParticipant:   http.StatusForbidden,
	collab.ErrVersionConflict:  http.StatusConflict,
	collab.ErrInvalidOperation: http.StatusBadRequest,
	collab.ErrInvalidRequest:   http.StatusBadRequest,

	store.ErrLoginAlreadyExists: http.StatusConflict,
	store.ErrNoUserWasFound:     http.StatusUnauthorized,
	store.ErrDocumentNotFound:   http.StatusNotFound,
	store.ErrProjectMismatch:    http.StatusForbidden,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

// errorMessages are checked in order; the first match is the response body.
// The client maps these bodies back to its own errors.
var errorMessages = []struct {
	target  error
	message string
}{
	{validators.ErrUnsupportedProtocol, app.MsgUnsupportedProtocol},
	{validators.ErrEmptyOperations, app.MsgEmptyBatch},
	{validators.ErrTooManyOperations, app.MsgBatchTooLarge},
	{validators.ErrInvalidProjectName, app.MsgInvalidProjectName},
	{service.ErrHashMismatch, app.MsgHashMismatch},
	{service.ErrWrongPassword, app.MsgInvalidLoginPassword},
	{store.ErrNoUserWasFound, app.MsgInvalidLoginPassword},
	{store.ErrLoginAlreadyExists, app.MsgLoginAlreadyExists},
	{store.ErrDocumentNotFound, app.MsgDocumentNotFound},
	{collab.ErrSessionNotFound, app.MsgDocumentNotFound},
	{collab.ErrVersionConflict, app.MsgVersionConflict},
	{service.ErrVersionIsNotSpecified, app.MsgVersionIsNotSpecified},
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

func messageFromError(err error, status int) string {
	for _, m := range errorMessages {
		if errors.Is(err, m.target) {
			return m.message
		}
	}

	switch status {
	case http.StatusBadRequest:
		return app.MsgInvalidDataProvided
	case http.StatusUnauthorized:
		return app.MsgTokenIsExpiredOrInvalid
	case http.StatusForbidden:
		return app.MsgAccessDenied
	case http.StatusInternalServerError:
		return app.MsgInternalServerError
	default:
		return http.StatusText(status)
	}
}

// writeError logs err and answers with the mapped status and message.
// Internal details never reach the response body.
func writeError(w http.ResponseWriter, r *http.Request, err error, fn string) {
	status := statusFromError(err)
	message := messageFromError(err, status)

	event := logger.FromRequest(r).Warn()
	if status >= http.StatusInternalServerError {
		event = logger.FromRequest(r).Error()
	}
	event.Err(err).Str("func", fn).Int("status", status).Msg(message)

	http.Error(w, message, status)
}
