package server

import (
	"errors"
	"fmt"
	"net"

	"github.com/MKhiriev/go-story-sync/internal/config"
	myGRPC "github.com/MKhiriev/go-story-sync/internal/handler/grpc"
	"github.com/MKhiriev/go-story-sync/internal/logger"

	"google.golang.org/grpc"
)

// grpcServer serves the health service. The listener is bound in
// newGRPCServer so an occupied port fails at startup.
type grpcServer struct {
	handler  *myGRPC.Handler
	server   *grpc.Server
	listener net.Listener

	logger *logger.Logger
}

func newGRPCServer(handler *myGRPC.Handler, cfg config.Server, logger *logger.Logger) (*grpcServer, error) {
	lis, err := net.Listen("tcp", cfg.GRPCAddress)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", cfg.GRPCAddress, err)
	}

	srv := grpc.NewServer()
	handler.Register(srv)

	return &grpcServer{handler: handler, server: srv, listener: lis, logger: logger}, nil
}

func (g *grpcServer) name() string { return "grpc " + g.listener.Addr().String() }

func (g *grpcServer) serve() error {
	if err := g.server.Serve(g.listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	return nil
}

// shutdown reports NOT_SERVING first so health checkers stop routing here
// while in-flight calls drain.
func (g *grpcServer) shutdown() {
	g.handler.Shutdown()
	g.server.GracefulStop()
}
