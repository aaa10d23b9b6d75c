package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// accessLine runs one request through withLogging and returns the decoded
// log entry.
func accessLine(t *testing.T, method, path string, next http.HandlerFunc) map[string]any {
	t.Helper()

	var buf bytes.Buffer
	l := zerolog.New(&buf).Level(zerolog.TraceLevel)
	r := httptest.NewRequest(method, path, nil)
	r = r.WithContext(l.WithContext(r.Context()))

	h, _ := newHandlerWithMocks(t, "")
	h.withLogging(next).ServeHTTP(httptest.NewRecorder(), r)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	return entry
}

func TestWithLogging(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		status     int
		body       string
		wantLevel  string
		wantStatus float64
	}{
		{name: "pull", method: http.MethodGet, path: "/api/sync/changes?after=0", body: `{"changes":[]}`, wantLevel: "info", wantStatus: 200},
		{name: "health probe", method: http.MethodGet, path: "/api/health", wantLevel: "debug", wantStatus: 200},
		{name: "rejected batch", method: http.MethodPost, path: "/api/sync/push", status: http.StatusBadRequest, body: "hash mismatch\n", wantLevel: "warn", wantStatus: 400},
		{name: "storage failure", method: http.MethodPost, path: "/api/sync/push", status: http.StatusInternalServerError, body: "internal server error\n", wantLevel: "error", wantStatus: 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := accessLine(t, tt.method, tt.path, func(w http.ResponseWriter, _ *http.Request) {
				if tt.status != 0 {
					w.WriteHeader(tt.status)
				}
				_, _ = w.Write([]byte(tt.body))
			})

			assert.Equal(t, tt.wantLevel, entry["level"])
			assert.Equal(t, tt.method, entry["method"])
			assert.Equal(t, tt.path, entry["uri"])
			assert.Equal(t, tt.wantStatus, entry["status"])
			assert.Equal(t, float64(len(tt.body)), entry["size"])
			assert.Contains(t, entry, "duration")
		})
	}
}
