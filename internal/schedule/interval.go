package schedule

import (
	"fmt"
	"strings"
	"time"
)

const (
	minutesInHour = 60
	minutesInDay  = 24 * minutesInHour

	// EndOfDay is "24:00", the midnight that closes the day (next day 00:00).
	EndOfDay TimeOfDay = minutesInDay

	intervalPrefix    = "з"
	intervalSeparator = " до "
)

// TimeOfDay is a local wall-clock time in minutes since midnight, 0 to EndOfDay inclusive.
type TimeOfDay int

func ParseTimeOfDay(s string) (TimeOfDay, error) {
	if s == "24:00" {
		return EndOfDay, nil
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("%w: time %q", ErrFormat, s)
	}
	return TimeOfDay(t.Hour()*minutesInHour + t.Minute()), nil
}

// TimeOfDayOf returns the wall-clock time of t truncated to minutes.
func TimeOfDayOf(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*minutesInHour + t.Minute())
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/minutesInHour, int(t)%minutesInHour)
}

// On returns the instant of t on the calendar day of d, in d's location.
// EndOfDay resolves to 00:00 of the following day.
func (t TimeOfDay) On(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, int(t), 0, 0, d.Location())
}

type Interval struct {
	Start TimeOfDay
	End   TimeOfDay
}

// ParseInterval parses "з HH:MM до HH:MM" (the leading "з" is optional).
func ParseInterval(s string) (Interval, error) {
	text := strings.TrimSpace(s)
	text = strings.TrimSpace(strings.TrimPrefix(text, intervalPrefix))

	parts := strings.Split(text, intervalSeparator)
	if len(parts) != 2 { //nolint:mnd // from and to
		return Interval{}, fmt.Errorf("%w: interval %q", ErrFormat, s)
	}

	start, err := ParseTimeOfDay(strings.TrimSpace(parts[0]))
	if err != nil {
		return Interval{}, fmt.Errorf("parse interval start: %w", err)
	}
	end, err := ParseTimeOfDay(strings.TrimSpace(parts[1]))
	if err != nil {
		return Interval{}, fmt.Errorf("parse interval end: %w", err)
	}
	if end <= start {
		return Interval{}, fmt.Errorf("%w: interval %q ends before it starts", ErrFormat, s)
	}

	return Interval{Start: start, End: end}, nil
}

func (i Interval) String() string {
	return i.Start.String() + " - " + i.End.String()
}

// ElapsedAt reports whether the interval is fully over at now.
func (i Interval) ElapsedAt(now TimeOfDay) bool {
	return i.End <= now
}

func parseIntervals(list string) ([]Interval, error) {
	res := make([]Interval, 0)
	for _, segment := range strings.Split(list, ",") {
		if strings.TrimSpace(segment) == "" {
			continue
		}
		interval, err := ParseInterval(segment)
		if err != nil {
			return nil, err
		}
		res = append(res, interval)
	}
	return res, nil
}
