package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Roma7-7-7/loe-notifier/internal/schedule"
)

//go:generate mockgen -package mocks -destination mocks/schedules.go . ScheduleProvider

type (
	Clock interface {
		Now() time.Time
	}

	ScheduleProvider interface {
		Schedules(ctx context.Context) (schedule.Schedules, error)
	}

	// Schedules answers on-demand requests. Every call fetches the source anew.
	Schedules struct {
		provider ScheduleProvider
		clock    Clock
		group    string

		log *slog.Logger
	}
)

func NewSchedules(provider ScheduleProvider, clock Clock, group string, log *slog.Logger) *Schedules {
	return &Schedules{
		provider: provider,
		clock:    clock,
		group:    group,
		log:      log.With("component", "service").With("service", "schedules"),
	}
}

// Render returns today's and tomorrow's schedule text. It never fails: any
// error degrades to a "no data" answer.
func (s *Schedules) Render(ctx context.Context) string {
	now := s.clock.Now()

	schedules, err := s.provider.Schedules(ctx)
	if err != nil {
		s.log.WarnContext(ctx, "failed to get schedules", "error", err)
		return noDataMessage
	}

	days := s.collectDays(ctx, schedules, now)
	res, err := RenderSchedule(days, now)
	if err != nil {
		s.log.ErrorContext(ctx, "failed to render schedule", "error", err)
		return noDataMessage
	}
	return res
}

func (s *Schedules) collectDays(ctx context.Context, schedules schedule.Schedules, now time.Time) []DayView {
	const maxDays = 2
	res := make([]DayView, 0, maxDays)

	for _, date := range []time.Time{now, now.AddDate(0, 0, 1)} {
		dated, ok := schedules.On(date)
		if !ok {
			continue
		}

		intervals, err := dated.Intervals(s.group)
		if err != nil {
			if !errors.Is(err, schedule.ErrNotFound) {
				s.log.WarnContext(ctx, "failed to parse intervals", "date", dated.Date, "group", s.group, "error", err)
			}
			res = append(res, DayView{Date: dated.Date})
			continue
		}

		res = append(res, DayView{Date: dated.Date, Found: true, Intervals: intervals})
	}

	return res
}
