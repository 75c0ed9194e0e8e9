package clock

import (
	"sync"
	"time"
)

// Clock is the system's local wall clock.
type Clock struct{}

func New() *Clock {
	return &Clock{}
}

func (c *Clock) Now() time.Time {
	return time.Now()
}

// Mock is a manually driven clock, safe for use from several goroutines.
type Mock struct {
	mx    sync.RWMutex
	value time.Time
}

func NewMock(value time.Time) *Mock {
	return &Mock{value: value}
}

func (m *Mock) Now() time.Time {
	m.mx.RLock()
	defer m.mx.RUnlock()
	return m.value
}

func (m *Mock) Set(t time.Time) {
	m.mx.Lock()
	defer m.mx.Unlock()
	m.value = t
}

// Add moves the clock forward by d and returns the new time.
func (m *Mock) Add(d time.Duration) time.Time {
	m.mx.Lock()
	defer m.mx.Unlock()
	m.value = m.value.Add(d)
	return m.value
}
