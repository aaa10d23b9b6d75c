package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-story-sync/internal/app"
	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/internal/utils"
	"github.com/MKhiriev/go-story-sync/models"
)

func (h *Handler) listProjects(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		logger.FromRequest(r).Error().Str("func", "*Handler.listProjects").Msg("no user ID was given")
		http.Error(w, app.MsgNoUserIDProvided, http.StatusUnauthorized)
		return
	}

	projects, err := h.services.ProjectService.ListProjects(ctx, userID)
	if err != nil {
		writeError(w, r, err, "*Handler.listProjects")
		return
	}
	if projects == nil {
		projects = []models.Project{}
	}

	utils.WriteJSON(w, projects, http.StatusOK)
}

func (h *Handler) createProject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.createProject").Msg("no user ID was given")
		http.Error(w, app.MsgNoUserIDProvided, http.StatusUnauthorized)
		return
	}

	var body models.Project
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Err(err).Str("func", "*Handler.createProject").Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	project, err := h.services.ProjectService.CreateProject(ctx, userID, body.Name)
	if err != nil {
		writeError(w, r, err, "*Handler.createProject")
		return
	}

	utils.WriteJSON(w, project, http.StatusCreated)
}
