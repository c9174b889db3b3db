package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"williampedia/internal/handler/http/respond"
)

// Job is one maintenance task.
type Job struct {
	Name string
	Run  func(ctx context.Context) error
}

// Scheduler runs a fixed list of jobs, in order, on every cron tick.
// A tick that fires while the previous one is still running is skipped.
type Scheduler struct {
	cfg     Config
	logger  *slog.Logger
	metrics *Metrics
	jobs    []Job
	cron    *cron.Cron
}

// NewScheduler validates cfg and registers jobs on its schedule.
func NewScheduler(cfg Config, logger *slog.Logger, metrics *Metrics, jobs ...Job) (*Scheduler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("worker config: %w", err)
	}
	if len(jobs) == 0 {
		return nil, errors.New("worker: no jobs")
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("worker timezone: %w", err)
	}

	cl := cronLogger{logger: logger}
	s := &Scheduler{
		cfg:     cfg,
		logger:  logger,
		metrics: metrics,
		jobs:    jobs,
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
	}
	if _, err := s.cron.AddFunc(cfg.Schedule, func() { _ = s.RunAll(context.Background()) }); err != nil {
		return nil, fmt.Errorf("worker schedule: %w", err)
	}
	return s, nil
}

// RunAll runs every job once, continuing past failures, and joins their errors.
func (s *Scheduler) RunAll(ctx context.Context) error {
	var errs []error
	for _, job := range s.jobs {
		if err := s.Run(ctx, job); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", job.Name, err))
		}
	}
	return errors.Join(errs...)
}

// WarmUp runs every job once before the schedule starts. A failure is logged
// at Warn and returned; the worker keeps starting.
func (s *Scheduler) WarmUp(ctx context.Context) error {
	err := s.RunAll(ctx)
	if err != nil {
		s.logger.Warn("initial job run failed",
			slog.Int("jobs", len(s.jobs)),
			slog.String("error", respond.SanitizeError(err)))
	}
	return err
}

// Run executes job under the configured timeout and records its outcome.
func (s *Scheduler) Run(ctx context.Context, job Job) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.JobTimeout)
	defer cancel()

	start := time.Now()
	s.logger.Info("job started", slog.String("job", job.Name))

	err := job.Run(ctx)
	elapsed := time.Since(start)
	if s.metrics != nil {
		s.metrics.RecordRun(job.Name, elapsed.Seconds(), err)
	}

	if err != nil {
		// 機密情報をマスクしてログ出力
		s.logger.Error("job failed",
			slog.String("job", job.Name),
			slog.Duration("duration", elapsed),
			slog.String("error", respond.SanitizeError(err)))
		return err
	}
	s.logger.Info("job completed",
		slog.String("job", job.Name),
		slog.Duration("duration", elapsed))
	return nil
}

// Start begins the schedule in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("worker started",
		slog.String("schedule", s.cfg.Schedule),
		slog.String("timezone", s.cfg.Timezone),
		slog.Int("jobs", len(s.jobs)))
}

// Stop stops the schedule and waits for a running tick to finish or ctx to end.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop().Done()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error("cron: "+msg, append(keysAndValues, slog.Any("error", err))...)
}
