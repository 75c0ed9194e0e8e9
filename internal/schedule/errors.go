package schedule

import "errors"

var (
	// ErrFormat indicates schedule text that can not be parsed (intervals, times).
	ErrFormat = errors.New("invalid schedule format")

	// ErrNotFound indicates an expected date or group block is absent from the schedule.
	ErrNotFound = errors.New("schedule not found")
)
