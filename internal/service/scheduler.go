package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Roma7-7-7/loe-notifier/internal/config"
	"github.com/Roma7-7-7/loe-notifier/internal/providers"
	"github.com/Roma7-7-7/loe-notifier/internal/schedule"
)

type processFn func(ctx context.Context) error

type process struct {
	name     string
	interval time.Duration
	fn       processFn
}

type Scheduler struct {
	conf *config.Config

	alerts *Alerts

	calendarSync            processFn
	calendarSyncInterval    time.Duration
	calendarCleanup         processFn
	calendarCleanupInterval time.Duration
	log                     *slog.Logger
}

func NewScheduler(conf *config.Config, alerts *Alerts, log *slog.Logger) *Scheduler {
	return &Scheduler{
		conf: conf,

		alerts: alerts,

		log: log.With("component", "scheduler"),
	}
}

// WithCalendarSync adds a calendar sync job that runs at the given interval. If fn is nil, the job is not scheduled.
func (s *Scheduler) WithCalendarSync(fn processFn, interval time.Duration) *Scheduler {
	s.calendarSync = fn
	s.calendarSyncInterval = interval
	return s
}

// WithCalendarCleanup adds a calendar stale-cleanup job (e.g. delete our events from last week). If fn is nil, the job is not scheduled.
func (s *Scheduler) WithCalendarCleanup(fn processFn, interval time.Duration) *Scheduler {
	s.calendarCleanup = fn
	s.calendarCleanupInterval = interval
	return s
}

// Start runs all processes until ctx is done, then waits for running ones to finish.
func (s *Scheduler) Start(ctx context.Context) error {
	processes := []process{
		{name: "notify_upcoming_outages", interval: s.conf.NotifyUpcomingInterval, fn: s.alerts.NotifyUpcomingOutages},
		{name: "cleanup", interval: s.conf.CleanupInterval, fn: s.alerts.Cleanup},
	}
	if s.calendarSync != nil && s.calendarSyncInterval > 0 {
		processes = append(processes, process{name: "calendar_sync", interval: s.calendarSyncInterval, fn: s.calendarSync})
	}
	if s.calendarCleanup != nil && s.calendarCleanupInterval > 0 {
		processes = append(processes, process{name: "calendar_cleanup", interval: s.calendarCleanupInterval, fn: s.calendarCleanup})
	}

	logger := cronLogger{log: s.log}
	c := cron.New(
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)
	for _, p := range processes {
		if err := s.schedule(ctx, c, p); err != nil {
			return err
		}
	}

	s.log.InfoContext(ctx, "Starting scheduler", "processes", len(processes))
	c.Start()

	<-ctx.Done()
	<-c.Stop().Done()
	s.log.InfoContext(ctx, "Stopped scheduler")
	return nil
}

func (s *Scheduler) schedule(ctx context.Context, c *cron.Cron, p process) error {
	log := s.log.With("process", p.name)

	_, err := c.AddFunc("@every "+p.interval.String(), func() {
		s.run(ctx, p, log)
	})
	if err != nil {
		return fmt.Errorf("schedule process=%s: %w", p.name, err)
	}

	log.InfoContext(ctx, "Scheduled process", "interval", p.interval)
	return nil
}

// run executes one tick of p. Errors never stop the schedule; the next tick is the retry.
func (s *Scheduler) run(ctx context.Context, p process, log *slog.Logger) {
	runCtx, cancel := context.WithTimeout(ctx, p.interval)
	defer cancel()

	err := p.fn(runCtx)
	switch {
	case err == nil:
		return
	case ctx.Err() != nil:
		log.InfoContext(ctx, "Action execution interrupted", "error", err)
	case errors.Is(err, schedule.ErrNotFound):
		log.InfoContext(ctx, "Schedule is not available", "error", err)
	case errors.Is(err, providers.ErrFetch), errors.Is(err, context.DeadlineExceeded):
		log.WarnContext(ctx, "Failed to fetch schedule", "error", err)
	default:
		log.ErrorContext(ctx, "Failed to run process", "error", err)
	}
}

// cronLogger routes cron's own logging to slog. Job start/stop chatter goes to debug.
type cronLogger struct {
	log *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error(msg, append(keysAndValues, "error", err)...)
}
