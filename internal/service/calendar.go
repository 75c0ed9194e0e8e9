package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Roma7-7-7/loe-notifier/internal/calendar"
	"github.com/Roma7-7-7/loe-notifier/internal/schedule"
)

//go:generate mockgen -package mocks -destination mocks/calendar.go . Calendar

const (
	eventSummary = "Відключення електроенергії"
	// Tomato in the Google Calendar palette
	eventColorID = "11"

	eventDescriptionTemplate = "Графік погодинних відключень на %s, група %s (станом на %s)"
)

type (
	CalendarConfig struct {
		CalendarID      string
		Group           string
		ReminderMinutes int64
	}

	Calendar interface {
		ListOurEvents(ctx context.Context, calendarID string, timeMin, timeMax time.Time) ([]string, error)
		InsertEvent(ctx context.Context, calendarID, summary string, start, end time.Time, params calendar.EventParams) (string, error)
		DeleteEvent(ctx context.Context, calendarID, eventID string) error
	}

	// CalendarService mirrors today's and tomorrow's outages of one group into a Google calendar.
	// Each sync deletes our events in the window and recreates them from the current schedule.
	CalendarService struct {
		calendar Calendar
		provider ScheduleProvider
		clock    Clock
		conf     CalendarConfig

		synced     bool
		lastSynced string

		mx  sync.Mutex
		log *slog.Logger
	}

	eventPayload struct {
		start       time.Time
		end         time.Time
		description string
	}
)

func NewCalendarService(conf CalendarConfig, calendar Calendar, provider ScheduleProvider, clock Clock, log *slog.Logger) *CalendarService {
	return &CalendarService{
		calendar: calendar,
		provider: provider,
		clock:    clock,
		conf:     conf,
		log:      log.With("component", "service").With("service", "calendar_sync"),
	}
}

// SyncEvents replaces our events in [today 00:00, tomorrow 23:59:59] with the current schedule.
// Nothing is touched when neither day is published or the events did not change since the last sync.
func (s *CalendarService) SyncEvents(ctx context.Context) error {
	s.mx.Lock()
	defer s.mx.Unlock()

	now := s.clock.Now()
	schedules, err := s.provider.Schedules(ctx)
	if err != nil {
		return fmt.Errorf("get schedules: %w", err)
	}

	today := schedule.TimeOfDay(0).On(now)
	tomorrow := today.AddDate(0, 0, 1)
	timeMin := today
	timeMax := tomorrow.AddDate(0, 0, 1).Add(-time.Second)

	var toCreate []eventPayload
	published := 0
	for _, day := range []time.Time{today, tomorrow} {
		dated, ok := schedules.On(day)
		if !ok {
			continue
		}
		published++

		events, err := buildEvents(dated, day, s.conf.Group)
		if errors.Is(err, schedule.ErrNotFound) {
			s.log.DebugContext(ctx, "Group is not in schedule", "date", dated.Date, "group", s.conf.Group)
			continue
		}
		if err != nil {
			return fmt.Errorf("build events for %s: %w", dated.Date, err)
		}
		toCreate = append(toCreate, events...)
	}

	if published == 0 {
		s.log.WarnContext(ctx, "Skipping calendar sync: no today or tomorrow schedule")
		return nil
	}

	fingerprint := eventsFingerprint(toCreate)
	if s.synced && fingerprint == s.lastSynced {
		s.log.DebugContext(ctx, "Skipping calendar sync: schedule not changed")
		return nil
	}

	s.log.InfoContext(ctx, "Starting calendar sync", "timeMin", timeMin.Format(time.RFC3339), "timeMax", timeMax.Format(time.RFC3339))

	deleted, err := s.deleteEvents(ctx, timeMin, timeMax)
	if err != nil {
		return fmt.Errorf("calendar sync failed: %w", err)
	}

	for _, ev := range toCreate {
		_, err := s.calendar.InsertEvent(ctx, s.conf.CalendarID, eventSummary, ev.start, ev.end, calendar.EventParams{
			ColorID:         eventColorID,
			Description:     ev.description,
			ReminderMinutes: s.conf.ReminderMinutes,
		})
		if err != nil {
			return fmt.Errorf("calendar sync failed: insert: %w", err)
		}
	}

	s.synced = true
	s.lastSynced = fingerprint
	s.log.InfoContext(ctx, "Calendar sync completed", "deleted", deleted, "created", len(toCreate))
	return nil
}

// CleanupStaleEvents deletes our events in [today - lookbackDays 00:00, yesterday 23:59:59].
func (s *CalendarService) CleanupStaleEvents(ctx context.Context, lookbackDays int) error {
	s.mx.Lock()
	defer s.mx.Unlock()

	todayStart := schedule.TimeOfDay(0).On(s.clock.Now())
	yesterdayEnd := todayStart.Add(-time.Second)
	timeMin := todayStart.AddDate(0, 0, -lookbackDays)

	s.log.InfoContext(ctx, "Starting calendar stale cleanup", "timeMin", timeMin.Format(time.RFC3339), "timeMax", yesterdayEnd.Format(time.RFC3339))

	deleted, err := s.deleteEvents(ctx, timeMin, yesterdayEnd)
	if err != nil {
		return fmt.Errorf("calendar cleanup failed: %w", err)
	}

	s.log.InfoContext(ctx, "Calendar stale cleanup completed", "deleted", deleted)
	return nil
}

func (s *CalendarService) deleteEvents(ctx context.Context, timeMin, timeMax time.Time) (int, error) {
	ids, err := s.calendar.ListOurEvents(ctx, s.conf.CalendarID, timeMin, timeMax)
	if err != nil {
		return 0, fmt.Errorf("list: %w", err)
	}
	for _, id := range ids {
		if err := s.calendar.DeleteEvent(ctx, s.conf.CalendarID, id); err != nil {
			return 0, fmt.Errorf("delete %s: %w", id, err)
		}
	}
	return len(ids), nil
}

// buildEvents returns one event per outage interval of group on day.
func buildEvents(dated schedule.Dated, day time.Time, group string) ([]eventPayload, error) {
	intervals, err := dated.Intervals(group)
	if err != nil {
		return nil, err
	}

	description := fmt.Sprintf(eventDescriptionTemplate, dated.Date, group, dated.PublishedAt)
	res := make([]eventPayload, 0, len(intervals))
	for _, interval := range intervals {
		res = append(res, eventPayload{
			start:       interval.Start.On(day),
			end:         interval.End.On(day),
			description: description,
		})
	}
	return res, nil
}

func eventsFingerprint(events []eventPayload) string {
	var sb strings.Builder
	for _, ev := range events {
		sb.WriteString(ev.start.Format(time.RFC3339))
		sb.WriteString("/")
		sb.WriteString(ev.end.Format(time.RFC3339))
		sb.WriteString("/")
		sb.WriteString(ev.description)
		sb.WriteString(";")
	}
	return sb.String()
}
