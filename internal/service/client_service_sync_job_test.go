// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-story-sync/internal/mock"
	"github.com/MKhiriev/go-story-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// countingEngine returns a mock engine whose TriggerSync calls are counted.
func countingEngine(ctrl *gomock.Controller, err error) (*mock.MockSyncEngine, *atomic.Int64) {
	engine := mock.NewMockSyncEngine(ctrl)
	var calls atomic.Int64
	engine.EXPECT().TriggerSync(gomock.Any(), false).DoAndReturn(
		func(context.Context, bool) (models.SyncResult, error) {
			calls.Add(1)
			return models.SyncResult{}, err
		},
	).AnyTimes()
	return engine, &calls
}

// ── NewClientSyncJob ─────────────────────────────────────────────────────────

func TestNewClientSyncJob_DefaultInterval(t *testing.T) {
	ctrl := gomock.NewController(t)

	job := NewClientSyncJob(mock.NewMockSyncEngine(ctrl), 0).(*clientSyncJob)
	assert.Equal(t, defaultSyncInterval, job.ticker.interval)

	job = NewClientSyncJob(mock.NewMockSyncEngine(ctrl), -time.Second).(*clientSyncJob)
	assert.Equal(t, defaultSyncInterval, job.ticker.interval)
}

// ── Start / Stop ─────────────────────────────────────────────────────────────

func TestClientSyncJob_Start_TriggersRounds(t *testing.T) {
	ctrl := gomock.NewController(t)
	engine, calls := countingEngine(ctrl, nil)

	job := NewClientSyncJob(engine, 10*time.Millisecond)
	job.Start(context.Background())
	defer job.Stop()

	assert.Eventually(t, func() bool { return calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
}

func TestClientSyncJob_Stop_StopsGoroutine(t *testing.T) {
	ctrl := gomock.NewController(t)
	engine, calls := countingEngine(ctrl, nil)

	job := NewClientSyncJob(engine, 10*time.Millisecond)
	job.Start(context.Background())
	require.Eventually(t, func() bool { return calls.Load() >= 1 }, time.Second, 5*time.Millisecond)
	job.Stop()

	afterStop := calls.Load()
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, afterStop, calls.Load(), "no rounds after Stop")
}

func TestClientSyncJob_StopWithoutStart_NoPanic(t *testing.T) {
	ctrl := gomock.NewController(t)
	job := NewClientSyncJob(mock.NewMockSyncEngine(ctrl), time.Second)

	assert.NotPanics(t, func() {
		job.Stop()
		job.Stop()
	})
}

func TestClientSyncJob_Restart_StopsPrevious(t *testing.T) {
	ctrl := gomock.NewController(t)
	engine, calls := countingEngine(ctrl, nil)

	job := NewClientSyncJob(engine, 10*time.Millisecond).(*clientSyncJob)
	job.Start(context.Background())
	job.Start(context.Background())
	require.Eventually(t, func() bool { return calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	job.Stop()

	afterStop := calls.Load()
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, afterStop, calls.Load(), "the first goroutine must not survive a restart")
}

func TestClientSyncJob_ContextCancel_StopsJob(t *testing.T) {
	ctrl := gomock.NewController(t)
	engine, calls := countingEngine(ctrl, nil)

	ctx, cancel := context.WithCancel(context.Background())
	job := NewClientSyncJob(engine, 10*time.Millisecond)
	job.Start(ctx)
	require.Eventually(t, func() bool { return calls.Load() >= 1 }, time.Second, 5*time.Millisecond)

	cancel()
	// Stop после отмены контекста просто дожидается горутины
	job.Stop()

	afterCancel := calls.Load()
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, afterCancel, calls.Load())
}

func TestClientSyncJob_RoundError_DoesNotStopJob(t *testing.T) {
	ctrl := gomock.NewController(t)
	engine, calls := countingEngine(ctrl, ErrServerUnreachable)

	job := NewClientSyncJob(engine, 10*time.Millisecond)
	job.Start(context.Background())
	defer job.Stop()

	assert.Eventually(t, func() bool { return calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
}

// ── ConnectivityMonitor ──────────────────────────────────────────────────────

func TestConnectivityMonitor_Probe(t *testing.T) {
	tests := []struct {
		name      string
		healthErr error
		want      bool
	}{
		{name: "server answers", want: true},
		{name: "server unreachable", healthErr: errors.New("dial tcp: connection refused"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			adapterMock := mock.NewMockServerAdapter(ctrl)
			adapterMock.EXPECT().Health(gomock.Any()).DoAndReturn(func(ctx context.Context) error {
				_, hasDeadline := ctx.Deadline()
				assert.True(t, hasDeadline, "probe must be bounded")
				return tt.healthErr
			})

			monitor := NewConnectivityMonitor(adapterMock, mock.NewMockSyncEngine(ctrl), time.Second)
			assert.Equal(t, tt.want, monitor.Probe(context.Background()))
		})
	}
}

func TestConnectivityMonitor_Start_ReportsImmediately(t *testing.T) {
	ctrl := gomock.NewController(t)
	adapterMock := mock.NewMockServerAdapter(ctrl)
	engine := mock.NewMockSyncEngine(ctrl)

	reported := make(chan bool, 1)
	adapterMock.EXPECT().Health(gomock.Any()).Return(nil)
	engine.EXPECT().SetOnline(gomock.Any(), true).Do(func(_ context.Context, online bool) {
		reported <- online
	})

	// the interval is long, only the first probe can run during the test
	monitor := NewConnectivityMonitor(adapterMock, engine, time.Hour)
	monitor.Start(context.Background())
	defer monitor.Stop()

	select {
	case online := <-reported:
		assert.True(t, online)
	case <-time.After(time.Second):
		t.Fatal("first probe was not reported")
	}
}

func TestConnectivityMonitor_ReportsTransitions(t *testing.T) {
	ctrl := gomock.NewController(t)
	adapterMock := mock.NewMockServerAdapter(ctrl)
	engine := mock.NewMockSyncEngine(ctrl)

	var probes atomic.Int64
	adapterMock.EXPECT().Health(gomock.Any()).DoAndReturn(func(context.Context) error {
		if probes.Add(1) == 1 {
			return errors.New("connection refused")
		}
		return nil
	}).AnyTimes()

	var sawOffline, sawOnline atomic.Bool
	engine.EXPECT().SetOnline(gomock.Any(), gomock.Any()).Do(func(_ context.Context, online bool) {
		if online {
			sawOnline.Store(true)
			return
		}
		sawOffline.Store(true)
	}).AnyTimes()

	monitor := NewConnectivityMonitor(adapterMock, engine, 10*time.Millisecond)
	monitor.Start(context.Background())
	defer monitor.Stop()

	assert.Eventually(t, func() bool { return sawOffline.Load() && sawOnline.Load() }, time.Second, 5*time.Millisecond)
}
