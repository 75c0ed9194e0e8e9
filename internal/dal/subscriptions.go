package dal

import (
	"cmp"
	"slices"
	"time"
)

type Subscription struct {
	ChatID    int64     `json:"chat_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (m *Memory) CountSubscriptions() int {
	m.mx.RLock()
	defer m.mx.RUnlock()
	return len(m.subscriptions)
}

func (m *Memory) ExistsSubscription(chatID int64) bool {
	m.mx.RLock()
	defer m.mx.RUnlock()
	_, ok := m.subscriptions[chatID]
	return ok
}

func (m *Memory) GetSubscription(chatID int64) (Subscription, bool) {
	m.mx.RLock()
	defer m.mx.RUnlock()
	sub, ok := m.subscriptions[chatID]
	return sub, ok
}

// GetAllSubscriptions returns a snapshot ordered by chat ID.
func (m *Memory) GetAllSubscriptions() []Subscription {
	m.mx.RLock()
	res := make([]Subscription, 0, len(m.subscriptions))
	for _, sub := range m.subscriptions {
		res = append(res, sub)
	}
	m.mx.RUnlock()

	slices.SortFunc(res, func(a, b Subscription) int {
		return cmp.Compare(a.ChatID, b.ChatID)
	})
	return res
}

// PutSubscription adds the subscription and reports whether it is new.
// An existing subscription keeps its CreatedAt.
func (m *Memory) PutSubscription(sub Subscription) bool {
	m.mx.Lock()
	defer m.mx.Unlock()

	if _, exists := m.subscriptions[sub.ChatID]; exists {
		return false
	}

	sub.CreatedAt = m.now()
	m.subscriptions[sub.ChatID] = sub
	return true
}
