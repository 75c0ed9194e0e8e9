package service_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Roma7-7-7/loe-notifier/internal/calendar"
	"github.com/Roma7-7-7/loe-notifier/internal/schedule"
	"github.com/Roma7-7-7/loe-notifier/internal/service"
	"github.com/Roma7-7-7/loe-notifier/internal/service/mocks"
	"github.com/Roma7-7-7/loe-notifier/pkg/clock"
)

const calendarID = "calendar@group.calendar.google.com"

func TestCalendarService_SyncEvents(t *testing.T) {
	now := time.Date(2025, time.June, 5, 7, 0, 0, 0, time.UTC)
	todayStart := time.Date(2025, time.June, 5, 0, 0, 0, 0, time.UTC)
	tomorrowEnd := time.Date(2025, time.June, 6, 23, 59, 59, 0, time.UTC)

	today := dated("05.06.2025", "10:00", "Група 5.2. Електроенергії немає з 03:00 до 06:00, з 18:00 до 21:00.")
	tomorrow := dated("06.06.2025", "20:00", "Група 5.2. Електроенергії немає з 21:00 до 24:00.")
	conf := service.CalendarConfig{CalendarID: calendarID, Group: "5.2", ReminderMinutes: 60}

	ctrl := gomock.NewController(t)
	provider := mocks.NewMockScheduleProvider(ctrl)
	cal := mocks.NewMockCalendar(ctrl)

	provider.EXPECT().Schedules(gomock.Any()).Return(schedule.Schedules{today.Date: today, tomorrow.Date: tomorrow}, nil).Times(2)

	gomock.InOrder(
		cal.EXPECT().ListOurEvents(gomock.Any(), calendarID, todayStart, tomorrowEnd).Return([]string{"a", "b"}, nil),
		cal.EXPECT().DeleteEvent(gomock.Any(), calendarID, "a").Return(nil),
		cal.EXPECT().DeleteEvent(gomock.Any(), calendarID, "b").Return(nil),
		cal.EXPECT().InsertEvent(gomock.Any(), calendarID, "Відключення електроенергії",
			time.Date(2025, time.June, 5, 3, 0, 0, 0, time.UTC),
			time.Date(2025, time.June, 5, 6, 0, 0, 0, time.UTC),
			calendar.EventParams{
				ColorID:         "11",
				Description:     "Графік погодинних відключень на 05.06.2025, група 5.2 (станом на 10:00)",
				ReminderMinutes: 60,
			}).Return("1", nil),
		cal.EXPECT().InsertEvent(gomock.Any(), calendarID, gomock.Any(),
			time.Date(2025, time.June, 5, 18, 0, 0, 0, time.UTC),
			time.Date(2025, time.June, 5, 21, 0, 0, 0, time.UTC),
			gomock.Any()).Return("2", nil),
		cal.EXPECT().InsertEvent(gomock.Any(), calendarID, gomock.Any(),
			time.Date(2025, time.June, 6, 21, 0, 0, 0, time.UTC),
			time.Date(2025, time.June, 7, 0, 0, 0, 0, time.UTC),
			calendar.EventParams{
				ColorID:         "11",
				Description:     "Графік погодинних відключень на 06.06.2025, група 5.2 (станом на 20:00)",
				ReminderMinutes: 60,
			}).Return("3", nil),
	)

	svc := service.NewCalendarService(conf, cal, provider, clock.NewMock(now), slog.New(slog.DiscardHandler))

	require.NoError(t, svc.SyncEvents(t.Context()))
	// unchanged schedule does not touch the calendar again
	require.NoError(t, svc.SyncEvents(t.Context()))
}

func TestCalendarService_SyncEvents_Errors(t *testing.T) {
	now := time.Date(2025, time.June, 5, 7, 0, 0, 0, time.UTC)
	conf := service.CalendarConfig{CalendarID: calendarID, Group: "5.2"}
	today := dated("05.06.2025", "10:00", "Група 5.2. Електроенергії немає з 03:00 до 06:00.")
	otherGroup := dated("05.06.2025", "10:00", "Група 1.1. Електроенергії немає з 03:00 до 06:00.")
	malformed := dated("05.06.2025", "10:00", "Група 5.2. Електроенергії немає з 03:00 по 06:00.")
	errBoom := errors.New("boom")

	tests := []struct {
		name      string
		schedules schedule.Schedules
		fetchErr  error
		calendar  func(*mocks.MockCalendar)
		wantErr   assert.ErrorAssertionFunc
	}{
		{
			name:     "fetch_error",
			fetchErr: errBoom,
			calendar: func(*mocks.MockCalendar) {},
			wantErr:  errorIs(errBoom),
		},
		{
			name:      "nothing_published",
			schedules: schedule.Schedules{},
			calendar:  func(*mocks.MockCalendar) {},
			wantErr:   assert.NoError,
		},
		{
			name:      "malformed_schedule",
			schedules: schedule.Schedules{malformed.Date: malformed},
			calendar:  func(*mocks.MockCalendar) {},
			wantErr:   errorIs(schedule.ErrFormat),
		},
		{
			name:      "group_missing_clears_events",
			schedules: schedule.Schedules{otherGroup.Date: otherGroup},
			calendar: func(m *mocks.MockCalendar) {
				m.EXPECT().ListOurEvents(gomock.Any(), calendarID, gomock.Any(), gomock.Any()).Return([]string{"a"}, nil)
				m.EXPECT().DeleteEvent(gomock.Any(), calendarID, "a").Return(nil)
			},
			wantErr: assert.NoError,
		},
		{
			name:      "list_error",
			schedules: schedule.Schedules{today.Date: today},
			calendar: func(m *mocks.MockCalendar) {
				m.EXPECT().ListOurEvents(gomock.Any(), calendarID, gomock.Any(), gomock.Any()).Return(nil, errBoom)
			},
			wantErr: errorIs(errBoom),
		},
		{
			name:      "delete_error",
			schedules: schedule.Schedules{today.Date: today},
			calendar: func(m *mocks.MockCalendar) {
				m.EXPECT().ListOurEvents(gomock.Any(), calendarID, gomock.Any(), gomock.Any()).Return([]string{"a"}, nil)
				m.EXPECT().DeleteEvent(gomock.Any(), calendarID, "a").Return(errBoom)
			},
			wantErr: errorIs(errBoom),
		},
		{
			name:      "insert_error",
			schedules: schedule.Schedules{today.Date: today},
			calendar: func(m *mocks.MockCalendar) {
				m.EXPECT().ListOurEvents(gomock.Any(), calendarID, gomock.Any(), gomock.Any()).Return(nil, nil)
				m.EXPECT().InsertEvent(gomock.Any(), calendarID, gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("", errBoom)
			},
			wantErr: errorIs(errBoom),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			provider := mocks.NewMockScheduleProvider(ctrl)
			provider.EXPECT().Schedules(gomock.Any()).Return(tt.schedules, tt.fetchErr)
			cal := mocks.NewMockCalendar(ctrl)
			tt.calendar(cal)

			svc := service.NewCalendarService(conf, cal, provider, clock.NewMock(now), slog.New(slog.DiscardHandler))
			tt.wantErr(t, svc.SyncEvents(t.Context()))
		})
	}
}

func TestCalendarService_SyncEvents_RetriesAfterFailure(t *testing.T) {
	now := time.Date(2025, time.June, 5, 7, 0, 0, 0, time.UTC)
	today := dated("05.06.2025", "10:00", "Група 5.2. Електроенергії немає з 03:00 до 06:00.")

	ctrl := gomock.NewController(t)
	provider := mocks.NewMockScheduleProvider(ctrl)
	provider.EXPECT().Schedules(gomock.Any()).Return(schedule.Schedules{today.Date: today}, nil).Times(2)
	cal := mocks.NewMockCalendar(ctrl)
	gomock.InOrder(
		cal.EXPECT().ListOurEvents(gomock.Any(), calendarID, gomock.Any(), gomock.Any()).Return(nil, context.DeadlineExceeded),
		cal.EXPECT().ListOurEvents(gomock.Any(), calendarID, gomock.Any(), gomock.Any()).Return(nil, nil),
		cal.EXPECT().InsertEvent(gomock.Any(), calendarID, gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("1", nil),
	)

	svc := service.NewCalendarService(service.CalendarConfig{CalendarID: calendarID, Group: "5.2"}, cal, provider, clock.NewMock(now), slog.New(slog.DiscardHandler))

	assert.ErrorIs(t, svc.SyncEvents(t.Context()), context.DeadlineExceeded)
	assert.NoError(t, svc.SyncEvents(t.Context()))
}

func TestCalendarService_CleanupStaleEvents(t *testing.T) {
	now := time.Date(2025, time.June, 5, 7, 0, 0, 0, time.UTC)

	ctrl := gomock.NewController(t)
	cal := mocks.NewMockCalendar(ctrl)
	cal.EXPECT().ListOurEvents(gomock.Any(), calendarID,
		time.Date(2025, time.May, 29, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.June, 4, 23, 59, 59, 0, time.UTC),
	).Return([]string{"old"}, nil)
	cal.EXPECT().DeleteEvent(gomock.Any(), calendarID, "old").Return(nil)

	svc := service.NewCalendarService(
		service.CalendarConfig{CalendarID: calendarID, Group: "5.2"},
		cal,
		mocks.NewMockScheduleProvider(ctrl),
		clock.NewMock(now),
		slog.New(slog.DiscardHandler),
	)

	require.NoError(t, svc.CleanupStaleEvents(t.Context(), 7))
}
