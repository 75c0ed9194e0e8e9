package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/Roma7-7-7/telegram"

	"github.com/Roma7-7-7/loe-notifier/internal/dal"
	"github.com/Roma7-7-7/loe-notifier/internal/schedule"
)

//go:generate mockgen -package mocks -destination mocks/telegram.go . TelegramClient

//go:generate mockgen -package mocks -destination mocks/alerts.go . AlertsStore

type (
	TelegramClient interface {
		SendMessage(context.Context, string, string) error
	}

	AlertsStore interface {
		PutAlertIfAbsent(key dal.AlertKey, sentAt time.Time) bool
		CleanupAlerts(olderThan time.Time) int
	}

	AlertsConfig struct {
		Group string
		// Lead is how long before an outage start the alert is due.
		Lead time.Duration
		// Window is how long after the due instant the alert may still fire.
		Window time.Duration
		// TTL is how long sent alert keys are kept.
		TTL time.Duration
	}

	Alerts struct {
		provider      ScheduleProvider
		subscriptions SubscriptionsStore
		alerts        AlertsStore
		telegram      TelegramClient
		clock         Clock

		conf AlertsConfig
		log  *slog.Logger
		mx   *sync.Mutex
	}
)

func NewAlerts(
	provider ScheduleProvider,
	subscriptions SubscriptionsStore,
	alerts AlertsStore,
	telegram TelegramClient,
	clock Clock,
	conf AlertsConfig,
	log *slog.Logger,
) *Alerts {
	return &Alerts{
		provider:      provider,
		subscriptions: subscriptions,
		alerts:        alerts,
		telegram:      telegram,
		clock:         clock,

		conf: conf,
		log:  log.With("component", "service").With("service", "alerts"),
		mx:   &sync.Mutex{},
	}
}

// NotifyUpcomingOutages sends a one-time alert to every subscriber for each outage whose
// start is Lead ahead of now (within Window). Tomorrow's schedule is consulted as well so
// outages starting shortly after midnight are not missed.
func (s *Alerts) NotifyUpcomingOutages(ctx context.Context) error {
	s.mx.Lock()
	defer s.mx.Unlock()

	now := s.clock.Now()
	s.log.DebugContext(ctx, "checking for upcoming outages", "time", now.Format(time.TimeOnly))

	schedules, err := s.provider.Schedules(ctx)
	if err != nil {
		return fmt.Errorf("get schedules: %w", err)
	}

	today, ok := schedules.On(now)
	if !ok {
		return fmt.Errorf("%w: no schedule for %s", schedule.ErrNotFound, schedule.DateKey(now))
	}
	intervals, err := today.Intervals(s.conf.Group)
	if err != nil {
		return fmt.Errorf("get today intervals: %w", err)
	}

	due := s.dueIntervals(ctx, intervals, now, now)

	tomorrowDate := now.AddDate(0, 0, 1)
	if tomorrow, ok := schedules.On(tomorrowDate); ok {
		next, err := tomorrow.Intervals(s.conf.Group)
		if err != nil {
			s.log.DebugContext(ctx, "tomorrow intervals are not available", "error", err)
		} else {
			due = append(due, s.dueIntervals(ctx, next, tomorrowDate, now)...)
		}
	}

	if len(due) == 0 {
		return nil
	}

	subs := s.subscriptions.GetAllSubscriptions()
	s.log.InfoContext(ctx, "sending outage alerts", "outages", len(due), "subscribers", len(subs))
	for _, interval := range due {
		s.broadcast(ctx, subs, renderAlert(interval))
	}

	return nil
}

// dueIntervals returns intervals of day whose alert is due at now and marks them as alerted.
func (s *Alerts) dueIntervals(ctx context.Context, intervals []schedule.Interval, day, now time.Time) []schedule.Interval {
	res := make([]schedule.Interval, 0)
	for _, interval := range intervals {
		start := interval.Start.On(day)
		alertAt := start.Add(-s.conf.Lead)
		if now.Before(alertAt) || !now.Before(alertAt.Add(s.conf.Window)) {
			continue
		}

		if !s.alerts.PutAlertIfAbsent(dal.BuildAlertKey(start), now) {
			s.log.DebugContext(ctx, "alert already sent", "start", start)
			continue
		}

		res = append(res, interval)
	}
	return res
}

func (s *Alerts) broadcast(ctx context.Context, subs []dal.Subscription, msg string) {
	for _, sub := range subs {
		log := s.log.With("chatID", sub.ChatID)

		err := s.telegram.SendMessage(ctx, strconv.FormatInt(sub.ChatID, 10), msg)
		switch {
		case err == nil:
			log.DebugContext(ctx, "alert sent")
		case errors.Is(err, telegram.ErrForbidden):
			log.WarnContext(ctx, "bot is blocked by user")
		default:
			log.ErrorContext(ctx, "failed to send alert", "error", err)
		}
	}
}

// Cleanup forgets alerts older than TTL. Their outages started long ago, so the alert
// window cannot come back.
func (s *Alerts) Cleanup(ctx context.Context) error {
	s.mx.Lock()
	defer s.mx.Unlock()

	removed := s.alerts.CleanupAlerts(s.clock.Now().Add(-s.conf.TTL))
	s.log.InfoContext(ctx, "cleaned up alerts", "removed", removed)
	return nil
}
