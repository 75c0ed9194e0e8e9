package dal

import (
	"time"
)

func (s *MemoryTestSuite) TestMemory_CountSubscriptions() {
	s.Require().Equal(0, s.store.CountSubscriptions())

	s.True(s.store.PutSubscription(Subscription{ChatID: 1}))
	s.Require().Equal(1, s.store.CountSubscriptions())

	s.True(s.store.PutSubscription(Subscription{ChatID: 2}))
	s.Require().Equal(2, s.store.CountSubscriptions())

	s.False(s.store.PutSubscription(Subscription{ChatID: 1}), "same chat ID")
	s.Require().Equal(2, s.store.CountSubscriptions())
}

func (s *MemoryTestSuite) TestMemory_ExistsSubscription() {
	s.Require().False(s.store.ExistsSubscription(1))

	s.store.PutSubscription(Subscription{ChatID: 1})
	s.Require().True(s.store.ExistsSubscription(1))
	s.Require().False(s.store.ExistsSubscription(2))
}

func (s *MemoryTestSuite) TestMemory_PutSubscription_KeepsCreatedAt() {
	first := time.Date(2025, time.June, 5, 10, 0, 0, 0, time.UTC)
	s.now.Set(first)
	s.Require().True(s.store.PutSubscription(Subscription{ChatID: 1}))

	s.now.Set(first.Add(time.Hour))
	s.Require().False(s.store.PutSubscription(Subscription{ChatID: 1, CreatedAt: first.Add(2 * time.Hour)}))

	actual, ok := s.store.GetSubscription(1)
	if s.True(ok) {
		s.Equal(Subscription{ChatID: 1, CreatedAt: first}, actual)
	}

	_, ok = s.store.GetSubscription(2)
	s.False(ok)
}

func (s *MemoryTestSuite) TestMemory_GetAllSubscriptions() {
	s.Empty(s.store.GetAllSubscriptions())

	now := time.Date(2025, time.June, 5, 10, 0, 0, 0, time.UTC)
	s.now.Set(now)
	for _, id := range []int64{3, 1, 2} {
		s.store.PutSubscription(Subscription{ChatID: id})
	}

	s.Equal([]Subscription{
		{ChatID: 1, CreatedAt: now},
		{ChatID: 2, CreatedAt: now},
		{ChatID: 3, CreatedAt: now},
	}, s.store.GetAllSubscriptions())
}
