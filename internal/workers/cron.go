package workers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/robfig/cron/v3"
)

// CronJob is a named task run by [CronWorker].
type CronJob func(ctx context.Context) error

// CronWorker runs jobs on cron schedules ("@every 5s", "*/1 * * * *").
// A job still running when its next tick fires is skipped for that tick.
type CronWorker struct {
	cron    *cron.Cron
	timeout time.Duration
	logger  *logger.Logger

	mu  sync.Mutex
	ctx context.Context
}

// NewCronWorker creates an idle worker. Every job run gets its own context
// bounded by timeout (no bound when timeout is not positive).
func NewCronWorker(timeout time.Duration, logger *logger.Logger) *CronWorker {
	return &CronWorker{
		cron: cron.New(cron.WithChain(
			cron.Recover(cron.DiscardLogger),
			cron.SkipIfStillRunning(cron.DiscardLogger),
		)),
		timeout: timeout,
		logger:  logger,
		ctx:     context.Background(),
	}
}

// AddJob registers job under spec. Jobs must be added before Start.
func (c *CronWorker) AddJob(name, spec string, job CronJob) error {
	_, err := c.cron.AddFunc(spec, func() { c.run(name, job) })
	if err != nil {
		return fmt.Errorf("schedule %s (%q): %w", name, spec, err)
	}
	c.logger.Debug().Str("func", "CronWorker.AddJob").Str("job", name).Str("spec", spec).Msg("job scheduled")
	return nil
}

func (c *CronWorker) run(name string, job CronJob) {
	c.mu.Lock()
	ctx := c.ctx
	c.mu.Unlock()

	if ctx.Err() != nil {
		return
	}

	ctx = c.logger.WithContext(ctx)
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	started := time.Now()
	if err := job(ctx); err != nil {
		c.logger.Err(err).Str("func", "CronWorker.run").Str("job", name).Msg("job failed")
		return
	}
	c.logger.Debug().Str("func", "CronWorker.run").Str("job", name).Dur("took", time.Since(started)).Msg("job done")
}

// Start implements [Worker].
func (c *CronWorker) Start(ctx context.Context) {
	c.mu.Lock()
	c.ctx = ctx
	c.mu.Unlock()

	c.cron.Start()
}

// Stop implements [Worker]. It waits for running jobs to finish.
func (c *CronWorker) Stop() {
	<-c.cron.Stop().Done()
}
