package grpc

import (
	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/internal/service"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the health-checked service name of the sync API.
const ServiceName = "storysync.Sync"

// Handler is the root gRPC transport handler.
//
// It exposes the standard gRPC health service so orchestrators can probe
// the server the same way devices probe GET /api/health.
type Handler struct {
	// services provides access to all application business operations.
	services *service.Services

	health *health.Server

	// logger is used for request-scoped and diagnostic log output.
	logger *logger.Logger
}

// NewHandler constructs a [Handler]. Both the overall server and
// [ServiceName] start as SERVING.
func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")

	hs := health.NewServer()
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)

	return &Handler{
		services: services,
		health:   hs,
		logger:   logger,
	}
}

// Register attaches the handler's services to server.
func (h *Handler) Register(server *grpc.Server) {
	healthpb.RegisterHealthServer(server, h.health)
}

// Shutdown reports NOT_SERVING to every health watcher. It is called before
// the server stops accepting calls.
func (h *Handler) Shutdown() {
	h.logger.Info().Str("func", "*Handler.Shutdown").Msg("gRPC health set to NOT_SERVING")
	h.health.Shutdown()
}
