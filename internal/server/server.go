package server

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"sync"
	"syscall"

	"github.com/MKhiriev/go-story-sync/internal/config"
	"github.com/MKhiriev/go-story-sync/internal/handler"
	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/internal/workers"
	"golang.org/x/sync/errgroup"
)

var errNoServersAreCreated = errors.New("no servers are created")

// listener is one transport. serve blocks until the transport fails or is
// shut down; a clean stop returns nil.
type listener interface {
	name() string
	serve() error
	shutdown()
}

type server struct {
	listeners []listener

	// background runs the collaboration housekeeping for as long as the
	// listeners run.
	background *workers.Workers

	stopOnce sync.Once
	stopped  chan struct{}

	logger *logger.Logger
}

func NewServer(handlers *handler.Handlers, background *workers.Workers, cfg config.Server, logger *logger.Logger) (Server, error) {
	var listeners []listener

	if cfg.HTTPAddress != "" && handlers.HTTP != nil {
		listeners = append(listeners, newHTTPServer(handlers.HTTP.Init(), cfg, logger))
	}
	if cfg.GRPCAddress != "" && handlers.GRPC != nil {
		grpcSrv, err := newGRPCServer(handlers.GRPC, cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("gRPC server: %w", err)
		}
		listeners = append(listeners, grpcSrv)
	}

	if len(listeners) == 0 {
		return nil, errNoServersAreCreated
	}
	return newServer(listeners, background, logger), nil
}

func newServer(listeners []listener, background *workers.Workers, logger *logger.Logger) *server {
	return &server{
		listeners:  listeners,
		background: background,
		stopped:    make(chan struct{}),
		logger:     logger,
	}
}

// RunServer serves until SIGTERM, SIGINT or SIGQUIT, or until one listener
// fails. Either way every listener is shut down before it returns.
func (s *server) RunServer() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	if err := s.run(ctx); err != nil {
		s.logger.Err(err).Str("func", "*server.RunServer").Msg("server stopped with error")
		return
	}
	s.logger.Info().Msg("server shut down gracefully")
}

// Shutdown is safe to call more than once.
func (s *server) Shutdown() {
	s.stopOnce.Do(func() {
		close(s.stopped)
		for _, l := range s.listeners {
			s.logger.Info().Str("listener", l.name()).Msg("shutting down")
			l.shutdown()
		}
		// housekeeping stops after the transports
		if s.background != nil {
			s.background.Stop()
		}
	})
}

func (s *server) run(ctx context.Context) error {
	if len(s.listeners) == 0 {
		return errNoServersAreCreated
	}

	g, gctx := errgroup.WithContext(ctx)

	if s.background != nil {
		s.background.Start(context.WithoutCancel(ctx))
	}
	for _, l := range s.listeners {
		s.logger.Info().Str("listener", l.name()).Msg("launching")
		g.Go(func() error {
			if err := l.serve(); err != nil {
				return fmt.Errorf("%s: %w", l.name(), err)
			}
			return nil
		})
	}
	g.Go(func() error {
		select {
		case <-gctx.Done():
		case <-s.stopped:
		}
		s.Shutdown()
		return nil
	})

	return g.Wait()
}
