package http

import (
	"context"
	"net/http"

	"github.com/MKhiriev/go-story-sync/internal/app"
	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/internal/utils"
)

// tokenQueryParam carries the token of a websocket upgrade for clients that
// cannot set headers on the handshake.
const tokenQueryParam = "token"

// auth requires a bearer token in the Authorization header and puts its user
// id into the request context. Every failure is a 401.
func (h *Handler) auth(next http.Handler) http.Handler {
	return h.requireToken(next, false)
}

// wsAuth is auth for the websocket upgrade. Without the header the token is
// read from the query string.
func (h *Handler) wsAuth(next http.Handler) http.Handler {
	return h.requireToken(next, true)
}

func (h *Handler) requireToken(next http.Handler, allowQuery bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := logger.FromRequest(r)

		tokenString, err := tokenFromRequest(r, allowQuery)
		if err != nil {
			log.Warn().Err(err).Str("func", "*Handler.requireToken").Msg("request without usable token")
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			log.Warn().Err(err).Str("func", "*Handler.requireToken").Msg("token rejected")
			http.Error(w, app.MsgTokenIsExpiredOrInvalid, http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, utils.UserIDCtxKey, token.UserID)))
	})
}

// tokenFromRequest prefers the Authorization header. The header must use the
// Bearer scheme.
func tokenFromRequest(r *http.Request, allowQuery bool) (string, error) {
	if header := r.Header.Get("Authorization"); header != "" {
		token, err := utils.ParseBearerToken(header)
		if err != nil {
			return "", ErrInvalidAuthorizationHeader
		}
		return token, nil
	}

	if !allowQuery {
		return "", ErrEmptyAuthorizationHeader
	}
	if token := r.URL.Query().Get(tokenQueryParam); token != "" {
		return token, nil
	}
	return "", ErrEmptyToken
}
