package dal

import (
	"time"
)

// AlertKey identifies one outage interval by its absolute start.
type AlertKey string

func BuildAlertKey(start time.Time) AlertKey {
	return AlertKey(start.Format(time.DateTime))
}

// GetAlert checks if an alert was already sent for the given key
func (m *Memory) GetAlert(key AlertKey) (time.Time, bool) {
	m.mx.RLock()
	defer m.mx.RUnlock()
	sentAt, ok := m.alerts[key]
	return sentAt, ok
}

// PutAlert records that an alert was sent at the given time
func (m *Memory) PutAlert(key AlertKey, sentAt time.Time) {
	m.mx.Lock()
	defer m.mx.Unlock()
	m.alerts[key] = sentAt
}

// PutAlertIfAbsent records the alert unless the key is already present and reports
// whether it did. Check and insert happen under one lock.
func (m *Memory) PutAlertIfAbsent(key AlertKey, sentAt time.Time) bool {
	m.mx.Lock()
	defer m.mx.Unlock()
	if _, ok := m.alerts[key]; ok {
		return false
	}
	m.alerts[key] = sentAt
	return true
}

// CleanupAlerts removes alerts sent before olderThan and returns how many were removed.
func (m *Memory) CleanupAlerts(olderThan time.Time) int {
	m.mx.Lock()
	defer m.mx.Unlock()

	removed := 0
	for key, sentAt := range m.alerts {
		if sentAt.Before(olderThan) {
			delete(m.alerts, key)
			removed++
		}
	}
	return removed
}
