package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/rs/zerolog"
)

// withLogging writes one access log line per request. Server errors are
// logged at error level, rejected requests at warn level and the health
// probe at debug level so polling devices do not flood the log.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w}
		next.ServeHTTP(rw, r)

		status := rw.statusCode()
		log.WithLevel(accessLevel(r, status)).
			Str("uri", r.RequestURI).
			Str("method", r.Method).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Int("size", rw.size).
			Send()
	})
}

func accessLevel(r *http.Request, status int) zerolog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return zerolog.ErrorLevel
	case status >= http.StatusBadRequest:
		return zerolog.WarnLevel
	case r.URL.Path == "/api/health":
		return zerolog.DebugLevel
	default:
		return zerolog.InfoLevel
	}
}
