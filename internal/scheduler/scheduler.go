// Package scheduler runs sync passes on a fixed interval.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/docsync/internal/docsync"
	"git.home.luguber.info/inful/docsync/internal/logfields"
)

// Syncer runs one sync pass.
type Syncer interface {
	Sync(ctx context.Context) (*docsync.SyncResult, error)
}

// Runner wraps a gocron scheduler driving a Syncer.
type Runner struct {
	scheduler gocron.Scheduler
	syncer    Syncer
	logger    *slog.Logger
}

// New creates a Runner for syncer.
func New(syncer Syncer, logger *slog.Logger) (*Runner, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{scheduler: s, syncer: syncer, logger: logger}, nil
}

// Every schedules a pass every interval, starting immediately once the
// Runner is started. Passes never overlap; a tick that arrives while a pass
// is running is skipped. Returns the job ID.
func (r *Runner) Every(ctx context.Context, interval time.Duration) (string, error) {
	if interval <= 0 {
		return "", fmt.Errorf("schedule interval must be positive, got %s", interval)
	}
	job, err := r.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() { r.runOnce(ctx) }),
		gocron.WithName("docsync-sync"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create periodic sync job: %w", err)
	}
	return job.ID().String(), nil
}

// Start begins executing scheduled jobs.
func (r *Runner) Start() {
	r.logger.Info("Starting scheduler")
	r.scheduler.Start()
}

// Stop shuts the scheduler down, waiting for a running pass to finish.
func (r *Runner) Stop() error {
	r.logger.Info("Stopping scheduler")
	return r.scheduler.Shutdown()
}

// Run schedules passes every interval and blocks until ctx is canceled.
func (r *Runner) Run(ctx context.Context, interval time.Duration) error {
	if _, err := r.Every(ctx, interval); err != nil {
		return err
	}
	r.Start()
	<-ctx.Done()
	return r.Stop()
}

func (r *Runner) runOnce(ctx context.Context) {
	start := time.Now()
	result, err := r.syncer.Sync(ctx)
	if err != nil {
		r.logger.Error("Scheduled sync failed", logfields.Error(err))
		return
	}
	r.logger.Info("Scheduled sync finished",
		logfields.SyncID(result.SyncID),
		logfields.Count(result.FilesProcessed),
		logfields.DurationMS(time.Since(start).Milliseconds()))
}
