package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-story-sync/internal/collab"
	"github.com/MKhiriev/go-story-sync/internal/config"
	"github.com/MKhiriev/go-story-sync/internal/logger"
)

const (
	defaultFlushSchedule = "@every 5s"
	defaultReapSchedule  = "@every 1m"
	collabJobTimeout     = 30 * time.Second
)

// NewCollaborationWorker schedules the housekeeping of live sessions:
// persisting changed documents and reaping inactive participants.
func NewCollaborationWorker(sessions collab.Service, cfg config.Collaboration, logger *logger.Logger) (Worker, error) {
	flush, reap := cfg.FlushSchedule, cfg.ReapSchedule
	if flush == "" {
		flush = defaultFlushSchedule
	}
	if reap == "" {
		reap = defaultReapSchedule
	}

	worker := NewCronWorker(collabJobTimeout, logger)

	if err := worker.AddJob("collab-flush", flush, sessions.Flush); err != nil {
		return nil, err
	}
	err := worker.AddJob("collab-reap", reap, func(ctx context.Context) error {
		return sessions.ReapInactive(ctx, time.Now())
	})
	if err != nil {
		return nil, err
	}

	return worker, nil
}
