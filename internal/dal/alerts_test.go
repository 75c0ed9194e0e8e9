package dal

import (
	"time"
)

func (s *MemoryTestSuite) TestMemory_BuildAlertKey() {
	loc := time.FixedZone("Kyiv", 3*60*60)
	s.Equal(AlertKey("2025-06-05 15:00:00"), BuildAlertKey(time.Date(2025, time.June, 5, 15, 0, 0, 0, loc)))
	s.Equal(AlertKey("2025-06-06 00:00:00"), BuildAlertKey(time.Date(2025, time.June, 5, 24, 0, 0, 0, loc)))
}

func (s *MemoryTestSuite) TestMemory_Get_Put_Alert() {
	key1 := BuildAlertKey(time.Date(2025, time.June, 5, 3, 0, 0, 0, time.UTC))
	key2 := BuildAlertKey(time.Date(2025, time.June, 5, 18, 0, 0, 0, time.UTC))
	key3 := BuildAlertKey(time.Date(2025, time.June, 6, 3, 0, 0, 0, time.UTC))
	allKeys := []AlertKey{key1, key2, key3}

	for _, key := range allKeys {
		alert, ok := s.store.GetAlert(key)
		if s.Falsef(ok, "Alert should not be present for key: %s", key) {
			s.Emptyf(alert, "Alert should not be present for key: %s", key)
		}
	}

	sentAt := time.Date(2025, time.June, 5, 2, 0, 0, 0, time.UTC)
	for i, key := range allKeys {
		s.store.PutAlert(key, sentAt.Add(time.Duration(i)*time.Hour))
	}

	for i, key := range allKeys {
		alert, ok := s.store.GetAlert(key)
		if s.Truef(ok, "Alert should be present for key: %s", key) {
			s.Equalf(sentAt.Add(time.Duration(i)*time.Hour), alert, "Invalid alert for key: %s", key)
		}
	}

	// overwrite sent at for key3
	s.store.PutAlert(key3, sentAt.Add(7*time.Hour))
	alert, ok := s.store.GetAlert(key3)
	s.True(ok)
	s.Equal(sentAt.Add(7*time.Hour), alert)
}

func (s *MemoryTestSuite) TestMemory_PutAlertIfAbsent() {
	key := BuildAlertKey(time.Date(2025, time.June, 5, 15, 0, 0, 0, time.UTC))
	first := time.Date(2025, time.June, 5, 14, 0, 0, 0, time.UTC)

	s.True(s.store.PutAlertIfAbsent(key, first))
	s.False(s.store.PutAlertIfAbsent(key, first.Add(30*time.Second)))

	alert, ok := s.store.GetAlert(key)
	s.True(ok)
	s.Equal(first, alert)
}

func (s *MemoryTestSuite) TestMemory_CleanupAlerts() {
	now := time.Date(2025, time.June, 6, 12, 0, 0, 0, time.UTC)
	old1 := BuildAlertKey(time.Date(2025, time.June, 5, 3, 0, 0, 0, time.UTC))
	old2 := BuildAlertKey(time.Date(2025, time.June, 5, 9, 0, 0, 0, time.UTC))
	fresh := BuildAlertKey(time.Date(2025, time.June, 6, 13, 0, 0, 0, time.UTC))

	s.store.PutAlert(old1, now.Add(-30*time.Hour))
	s.store.PutAlert(old2, now.Add(-25*time.Hour))
	s.store.PutAlert(fresh, now.Add(-time.Hour))

	s.Equal(2, s.store.CleanupAlerts(now.Add(-24*time.Hour)))

	_, ok := s.store.GetAlert(old1)
	s.False(ok)
	_, ok = s.store.GetAlert(old2)
	s.False(ok)
	_, ok = s.store.GetAlert(fresh)
	s.True(ok)

	s.Equal(0, s.store.CleanupAlerts(now.Add(-24*time.Hour)))
}
