package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-story-sync/internal/app"
	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/models"
)

// credentialsHandler turns credentials into a user. register and login only
// differ in this step.
type credentialsHandler func(ctx context.Context, user models.User) (models.User, error)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	h.authenticate(w, r, "*Handler.register", h.services.AuthService.RegisterUser)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	h.authenticate(w, r, "*Handler.login", h.services.AuthService.Login)
}

// authenticate replies 200 with the session token in the Authorization
// header. The body stays empty.
func (h *Handler) authenticate(w http.ResponseWriter, r *http.Request, fn string, resolve credentialsHandler) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var credentials models.User
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		log.Err(err).Str("func", fn).Msg("invalid credentials body")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	user, err := resolve(ctx, credentials)
	if err != nil {
		writeError(w, r, err, fn)
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, user)
	if err != nil {
		log.Err(err).Str("func", fn).Msg("creation of token failed")
		http.Error(w, app.MsgInternalServerError, http.StatusInternalServerError)
		return
	}

	log.Info().Str("func", fn).Int64("user_id", user.UserID).Msg("token issued")
	w.Header().Set("Authorization", "Bearer "+token.SignedString)
	w.WriteHeader(http.StatusOK)
}
