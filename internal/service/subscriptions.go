package service

import (
	"log/slog"

	"github.com/Roma7-7-7/loe-notifier/internal/dal"
)

//go:generate mockgen -package mocks -destination mocks/subscriptions.go . SubscriptionsStore

type SubscriptionsStore interface {
	ExistsSubscription(chatID int64) bool
	GetAllSubscriptions() []dal.Subscription
	PutSubscription(sub dal.Subscription) bool
	CountSubscriptions() int
}

type Subscriptions struct {
	store SubscriptionsStore

	log *slog.Logger
}

func NewSubscription(store SubscriptionsStore, log *slog.Logger) *Subscriptions {
	return &Subscriptions{
		store: store,
		log:   log.With("component", "service").With("service", "subscriptions"),
	}
}

func (s *Subscriptions) IsSubscribed(chatID int64) bool {
	return s.store.ExistsSubscription(chatID)
}

// Subscribe adds chatID to the alert recipients. Repeated calls are no-ops.
// Returns true if the subscription is new.
func (s *Subscriptions) Subscribe(chatID int64) bool {
	created := s.store.PutSubscription(dal.Subscription{ChatID: chatID})
	if created {
		s.log.Info("new subscriber", "chatID", chatID, "total", s.store.CountSubscriptions())
	}
	return created
}

func (s *Subscriptions) GetSubscriptions() []dal.Subscription {
	return s.store.GetAllSubscriptions()
}
