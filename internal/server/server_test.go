package server

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-story-sync/internal/config"
	"github.com/MKhiriev/go-story-sync/internal/handler"
	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/internal/workers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeListener blocks in serve until shutdown, or fails at once when err is set.
type fakeListener struct {
	err   error
	down  chan struct{}
	stops atomic.Int32
}

func newFakeListener(err error) *fakeListener {
	return &fakeListener{err: err, down: make(chan struct{})}
}

func (f *fakeListener) name() string { return "fake" }

func (f *fakeListener) serve() error {
	if f.err != nil {
		return f.err
	}
	<-f.down
	return nil
}

func (f *fakeListener) shutdown() {
	if f.stops.Add(1) == 1 {
		close(f.down)
	}
}

type countingWorker struct{ started, stopped atomic.Int32 }

func (c *countingWorker) Start(context.Context) { c.started.Add(1) }
func (c *countingWorker) Stop()                 { c.stopped.Add(1) }

func runAsync(s *server, ctx context.Context) <-chan error {
	done := make(chan error, 1)
	go func() { done <- s.run(ctx) }()
	return done
}

func TestNewServer_NothingToServe(t *testing.T) {
	_, err := NewServer(&handler.Handlers{}, nil, config.Server{HTTPAddress: ":8080"}, logger.Nop())
	require.ErrorIs(t, err, errNoServersAreCreated)
}

func TestServer_Run_StopsOnCancel(t *testing.T) {
	first, second := newFakeListener(nil), newFakeListener(nil)
	worker := &countingWorker{}
	s := newServer([]listener{first, second}, workers.NewWorkers(worker), logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := runAsync(s, ctx)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after cancel")
	}
	assert.EqualValues(t, 1, first.stops.Load())
	assert.EqualValues(t, 1, second.stops.Load())
	assert.EqualValues(t, 1, worker.started.Load())
	assert.EqualValues(t, 1, worker.stopped.Load())
}

func TestServer_Run_OneListenerFails(t *testing.T) {
	bindErr := errors.New("address already in use")
	healthy, broken := newFakeListener(nil), newFakeListener(bindErr)
	s := newServer([]listener{healthy, broken}, nil, logger.Nop())

	select {
	case err := <-runAsync(s, context.Background()):
		require.ErrorIs(t, err, bindErr)
		assert.Contains(t, err.Error(), "fake: ")
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after a listener failed")
	}
	// исправный listener тоже остановлен
	assert.EqualValues(t, 1, healthy.stops.Load())
}

func TestServer_Shutdown_Idempotent(t *testing.T) {
	l := newFakeListener(nil)
	s := newServer([]listener{l}, nil, logger.Nop())

	done := runAsync(s, context.Background())
	s.Shutdown()
	s.Shutdown()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after Shutdown")
	}
	assert.EqualValues(t, 1, l.stops.Load())
}

func TestServer_Run_NoListeners(t *testing.T) {
	s := newServer(nil, nil, logger.Nop())
	require.ErrorIs(t, s.run(context.Background()), errNoServersAreCreated)
}
