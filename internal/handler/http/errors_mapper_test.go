package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/go-story-sync/internal/app"
	"github.com/MKhiriev/go-story-sync/internal/collab"
	"github.com/MKhiriev/go-story-sync/internal/service"
	"github.com/MKhiriev/go-story-sync/internal/store"
	"github.com/MKhiriev/go-story-sync/internal/validators"
	"github.com/stretchr/testify/assert"
)

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{name: "wrapped login conflict", err: fmt.Errorf("register: %w", store.ErrLoginAlreadyExists), wantStatus: http.StatusConflict, wantMessage: app.MsgLoginAlreadyExists},
		{name: "unknown user", err: store.ErrNoUserWasFound, wantStatus: http.StatusUnauthorized, wantMessage: app.MsgInvalidLoginPassword},
		{name: "expired token", err: service.ErrTokenIsExpiredOrInvalid, wantStatus: http.StatusUnauthorized, wantMessage: app.MsgTokenIsExpiredOrInvalid},
		{name: "project access", err: service.ErrAccessDenied, wantStatus: http.StatusForbidden, wantMessage: app.MsgAccessDenied},
		{name: "batch too large", err: fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, validators.ErrTooManyOperations), wantStatus: http.StatusBadRequest, wantMessage: app.MsgBatchTooLarge},
		{name: "plain validation", err: fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, validators.ErrInvalidEntityID), wantStatus: http.StatusBadRequest, wantMessage: app.MsgInvalidDataProvided},
		{name: "hash mismatch", err: service.ErrHashMismatch, wantStatus: http.StatusBadRequest, wantMessage: app.MsgHashMismatch},
		{name: "no live session", err: collab.ErrSessionNotFound, wantStatus: http.StatusNotFound, wantMessage: app.MsgDocumentNotFound},
		{name: "stale operation", err: fmt.Errorf("submit: %w", collab.ErrVersionConflict), wantStatus: http.StatusConflict, wantMessage: app.MsgVersionConflict},
		{name: "not joined", err: collab.ErrNotParticipant, wantStatus: http.StatusForbidden, wantMessage: app.MsgAccessDenied},
		{name: "sql failure", err: fmt.Errorf("%w: boom", store.ErrExecutingQuery), wantStatus: http.StatusInternalServerError, wantMessage: app.MsgInternalServerError},
		{name: "unknown error", err: errors.New("mystery"), wantStatus: http.StatusInternalServerError, wantMessage: app.MsgInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := statusFromError(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMessage, messageFromError(tt.err, status))
		})
	}
}

func TestWriteError_HidesDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	writeError(rec, req, fmt.Errorf("%w: pq: relation \"users\" does not exist", store.ErrExecutingQuery), "test")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, app.MsgInternalServerError, strings.TrimSpace(rec.Body.String()))
	assert.NotContains(t, rec.Body.String(), "relation")
}
