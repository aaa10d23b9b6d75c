// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-story-sync/internal/app"
	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/internal/utils"
	"github.com/MKhiriev/go-story-sync/models"
)

// push applies a batch of queued device operations and answers with one
// result per operation, in request order.
func (h *Handler) push(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.push").Msg("no user ID was given")
		http.Error(w, app.MsgNoUserIDProvided, http.StatusUnauthorized)
		return
	}

	var req models.PushRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.push").Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	resp, err := h.services.SyncService.ProcessBatch(ctx, userID, req)
	if err != nil {
		writeError(w, r, err, "*Handler.push")
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

// changes returns the change feed of other devices. The after query
// parameter is the last change id the device applied; absent means from the
// beginning.
func (h *Handler) changes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.changes").Msg("no user ID was given")
		http.Error(w, app.MsgNoUserIDProvided, http.StatusUnauthorized)
		return
	}

	req := models.PullRequest{DeviceID: r.URL.Query().Get("device_id")}
	if raw := r.URL.Query().Get("after"); raw != "" {
		after, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || after < 0 {
			log.Warn().Str("func", "*Handler.changes").Str("after", raw).Msg("invalid change feed cursor")
			http.Error(w, app.MsgInvalidCursor, http.StatusBadRequest)
			return
		}
		req.After = after
	}

	resp, err := h.services.SyncService.ChangesSince(ctx, userID, req)
	if err != nil {
		writeError(w, r, err, "*Handler.changes")
		return
	}
	if resp.Changes == nil {
		resp.Changes = []models.RemoteChange{}
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}
