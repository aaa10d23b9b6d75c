package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/MKhiriev/go-story-sync/internal/app"
	"github.com/MKhiriev/go-story-sync/internal/utils"
	"github.com/MKhiriev/go-story-sync/models"
)

// pushHashing verifies the integrity hash of a push batch. The hash covers
// the JSON encoding of the operations list only, so the envelope may be
// re-encoded by proxies without breaking the check.
func (h *Handler) pushHashing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.hashKey == "" {
			next.ServeHTTP(w, r)
			return
		}

		var req struct {
			Operations []models.SyncOperation `json:"operations"`
			Hash       string                 `json:"hash"`
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			h.logger.Err(err).Str("func", "*Handler.pushHashing").Msg("failed to read request body")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		// restore request body
		r.Body = io.NopCloser(bytes.NewReader(body))

		if err = json.Unmarshal(body, &req); err != nil {
			h.logger.Err(err).Str("func", "*Handler.pushHashing").Msg("failed to decode JSON")
			http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
			return
		}

		ok, err := utils.VerifyJSON(req.Operations, h.hashKey, req.Hash)
		if err != nil {
			h.logger.Err(err).Str("func", "*Handler.pushHashing").Msg("failed to hash operations")
			http.Error(w, app.MsgInternalServerError, http.StatusInternalServerError)
			return
		}
		if !ok {
			h.logger.Warn().Str("func", "*Handler.pushHashing").
				Str("hash", req.Hash).
				Int("operations", len(req.Operations)).
				Msg("push hash mismatch")
			http.Error(w, app.MsgHashMismatch, http.StatusBadRequest)
			return
		}

		next.ServeHTTP(w, r)
	})
}
