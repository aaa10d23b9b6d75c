package http

import (
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-story-sync/models"
)

// protocolHeader tells devices which sync protocol the server speaks, so a
// stale build can stop before its first push is rejected.
const protocolHeader = "X-Sync-Protocol"

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	serverVersion := h.services.AppInfoService.GetAppVersion(r.Context())

	w.Header().Set("Content-Type", "text/plain")
	w.Header().Set(protocolHeader, strconv.Itoa(models.ProtocolVersion))
	_, _ = w.Write([]byte(serverVersion))
}

// health answers the connectivity probe of devices.
func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
