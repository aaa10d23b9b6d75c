package http

import (
	"net/http"

	"github.com/MKhiriev/go-story-sync/internal/utils"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	traceIDHeader    = utils.TraceIDHeader
	maxTraceIDLength = 64
)

// withTraceID binds a trace id to the request logger and echoes it back.
// Devices send the id of their sync round so client and server logs can be
// joined; ids that are missing or too long are replaced with a fresh one.
func (h *Handler) withTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(traceIDHeader)
		if traceID == "" || len(traceID) > maxTraceIDLength {
			traceID = uuid.NewString()
		}

		l := h.logger.GetChildLogger()
		l.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("trace_id", traceID)
		})

		w.Header().Set(traceIDHeader, traceID)
		next.ServeHTTP(w, r.WithContext(l.WithContext(r.Context())))
	})
}
