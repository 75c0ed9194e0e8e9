package dal

import (
	"sync"
	"time"
)

// Memory holds the process-lifetime application state: subscribers and sent alert keys.
// Nothing survives a restart.
type Memory struct {
	mx sync.RWMutex

	subscriptions map[int64]Subscription
	alerts        map[AlertKey]time.Time

	now func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		subscriptions: make(map[int64]Subscription),
		alerts:        make(map[AlertKey]time.Time),
		now:           time.Now,
	}
}
