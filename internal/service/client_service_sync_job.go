package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-story-sync/internal/adapter"
	"github.com/MKhiriev/go-story-sync/internal/logger"
)

const (
	defaultSyncInterval         = 30 * time.Second
	defaultConnectivityInterval = 10 * time.Second
	healthProbeTimeout          = 5 * time.Second
)

// ticker runs fn every interval in a background goroutine until the context
// is cancelled or stop is called.
type ticker struct {
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func (t *ticker) start(ctx context.Context, immediate bool, fn func(ctx context.Context)) {
	t.stop()

	t.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	t.cancel = cancel
	t.wg.Add(1)
	t.mu.Unlock()

	go func() {
		defer t.wg.Done()
		tk := time.NewTicker(t.interval)
		defer tk.Stop()

		if immediate {
			fn(jobCtx)
		}

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-tk.C:
				fn(jobCtx)
			}
		}
	}()
}

// stop cancels the background goroutine's context and blocks until the
// goroutine has fully exited. Safe to call when nothing is running.
func (t *ticker) stop() {
	t.mu.Lock()
	cancel := t.cancel
	t.cancel = nil
	t.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	t.wg.Wait()
}

type clientSyncJob struct {
	engine SyncEngine
	ticker ticker
}

// NewClientSyncJob creates a job that triggers a non-forced round every
// interval (30 seconds when interval is not positive). The job is idle until
// Start is called.
func NewClientSyncJob(engine SyncEngine, interval time.Duration) ClientSyncJob {
	if interval <= 0 {
		interval = defaultSyncInterval
	}
	return &clientSyncJob{engine: engine, ticker: ticker{interval: interval}}
}

// Start implements [ClientSyncJob]. It stops any previously running job first.
func (j *clientSyncJob) Start(ctx context.Context) {
	j.ticker.start(ctx, false, func(ctx context.Context) {
		if _, err := j.engine.TriggerSync(ctx, false); err != nil {
			logger.FromContext(ctx).Warn().Err(err).Str("func", "clientSyncJob.Start").Msg("periodic round failed")
		}
	})
}

// Stop implements [ClientSyncJob].
func (j *clientSyncJob) Stop() {
	j.ticker.stop()
}

type connectivityMonitor struct {
	adapter adapter.ServerAdapter
	engine  SyncEngine
	ticker  ticker
}

// NewConnectivityMonitor creates a monitor probing the server health endpoint
// every interval (10 seconds when interval is not positive).
func NewConnectivityMonitor(serverAdapter adapter.ServerAdapter, engine SyncEngine, interval time.Duration) ConnectivityMonitor {
	if interval <= 0 {
		interval = defaultConnectivityInterval
	}
	return &connectivityMonitor{adapter: serverAdapter, engine: engine, ticker: ticker{interval: interval}}
}

// Start implements [ConnectivityMonitor]. The first probe runs immediately.
func (m *connectivityMonitor) Start(ctx context.Context) {
	m.ticker.start(ctx, true, func(ctx context.Context) {
		m.engine.SetOnline(ctx, m.Probe(ctx))
	})
}

// Stop implements [ConnectivityMonitor].
func (m *connectivityMonitor) Stop() {
	m.ticker.stop()
}

// Probe implements [ConnectivityMonitor].
func (m *connectivityMonitor) Probe(ctx context.Context) bool {
	probeCtx, cancel := context.WithTimeout(ctx, healthProbeTimeout)
	defer cancel()

	if err := m.adapter.Health(probeCtx); err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("func", "connectivityMonitor.Probe").Msg("server unreachable")
		return false
	}
	return true
}
