package calendar

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

const (
	extendedPropertySource = "loe-notifier"
	sourceKey              = "source"
)

// EventParams are optional attributes of an inserted event.
type EventParams struct {
	ColorID     string
	Description string
	// ReminderMinutes adds a popup reminder when positive.
	ReminderMinutes int64
}

// Google wraps the Calendar API for listing, deleting, and inserting events.
type Google struct {
	svc *calendar.Service
}

// NewGoogle builds a Calendar API client using a service account JSON key file.
func NewGoogle(ctx context.Context, credentialsPath string) (*Google, error) {
	srv, err := calendar.NewService(ctx,
		option.WithAuthCredentialsFile(option.ServiceAccount, credentialsPath),
		option.WithScopes(calendar.CalendarEventsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("create calendar service: %w", err)
	}

	return &Google{
		svc: srv,
	}, nil
}

// ListOurEvents returns IDs of events in [timeMin, timeMax] created by this bot.
// Events are filtered by the private "source" extended property.
func (c *Google) ListOurEvents(ctx context.Context, calendarID string, timeMin, timeMax time.Time) ([]string, error) {
	call := c.svc.Events.List(calendarID).
		Context(ctx).
		TimeMin(timeMin.Format(time.RFC3339)).
		TimeMax(timeMax.Format(time.RFC3339)).
		SingleEvents(true)

	var ids []string
	err := call.Pages(ctx, func(events *calendar.Events) error {
		for _, e := range events.Items {
			if isOurs(e) {
				ids = append(ids, e.Id)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return ids, nil
}

// InsertEvent creates an event tagged with the bot's source property and returns its ID.
func (c *Google) InsertEvent(ctx context.Context, calendarID, summary string, start, end time.Time, params EventParams) (string, error) {
	created, err := c.svc.Events.Insert(calendarID, newEvent(summary, start, end, params)).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("insert event: %w", err)
	}
	return created.Id, nil
}

func (c *Google) DeleteEvent(ctx context.Context, calendarID, eventID string) error {
	err := c.svc.Events.Delete(calendarID, eventID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("delete event %s: %w", eventID, err)
	}
	return nil
}

func newEvent(summary string, start, end time.Time, params EventParams) *calendar.Event {
	ev := &calendar.Event{
		Summary: summary,
		Start: &calendar.EventDateTime{
			DateTime: start.Format(time.RFC3339),
			TimeZone: start.Location().String(),
		},
		End: &calendar.EventDateTime{
			DateTime: end.Format(time.RFC3339),
			TimeZone: end.Location().String(),
		},
		ColorId: params.ColorID,
		ExtendedProperties: &calendar.EventExtendedProperties{
			Private: map[string]string{sourceKey: extendedPropertySource},
		},
		Description: params.Description,
	}

	if params.ReminderMinutes > 0 {
		ev.Reminders = &calendar.EventReminders{
			Overrides:       []*calendar.EventReminder{{Method: "popup", Minutes: params.ReminderMinutes}},
			ForceSendFields: []string{"UseDefault", "Overrides"},
		}
	}
	return ev
}

func isOurs(e *calendar.Event) bool {
	if e.Id == "" || e.ExtendedProperties == nil || e.ExtendedProperties.Private == nil {
		return false
	}
	return e.ExtendedProperties.Private[sourceKey] == extendedPropertySource
}
