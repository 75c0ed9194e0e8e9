package telegram

import (
	"context"
	"log/slog"
	"time"

	tb "gopkg.in/telebot.v3"
)

//go:generate mockgen -package mocks -destination mocks/subscriptions.go . Subscriptions

//go:generate mockgen -package mocks -destination mocks/schedules.go . Schedules

const (
	btnTextSchedule = "Коли відключення?"

	renderTimeout = 30 * time.Second
)

type (
	Subscriptions interface {
		Subscribe(chatID int64) bool
	}

	Schedules interface {
		Render(ctx context.Context) string
	}

	Handler struct {
		subscriptions Subscriptions
		schedules     Schedules

		markup      *tb.ReplyMarkup
		btnSchedule tb.Btn

		log *slog.Logger
	}
)

func NewHandler(subscriptions Subscriptions, schedules Schedules, log *slog.Logger) *Handler {
	markup := &tb.ReplyMarkup{ResizeKeyboard: true}
	btnSchedule := markup.Text(btnTextSchedule)
	markup.Reply(markup.Row(btnSchedule))

	return &Handler{
		subscriptions: subscriptions,
		schedules:     schedules,

		markup:      markup,
		btnSchedule: btnSchedule,

		log: log.With("component", "handler"),
	}
}

// Start subscribes the sender to alerts and answers with the schedule and the reply keyboard.
func (h *Handler) Start(c tb.Context) error {
	h.log.Debug("start handler called", "chatID", c.Sender().ID)
	return h.subscribeAndReply(c)
}

// Schedule answers the button press and /schedule. Subscribing again is a no-op.
func (h *Handler) Schedule(c tb.Context) error {
	h.log.Debug("schedule handler called", "chatID", c.Sender().ID)
	return h.subscribeAndReply(c)
}

func (h *Handler) subscribeAndReply(c tb.Context) error {
	chatID := c.Sender().ID
	if h.subscriptions.Subscribe(chatID) {
		h.log.Info("user subscribed", "chatID", chatID)
	}

	ctx, cancel := context.WithTimeout(context.Background(), renderTimeout)
	defer cancel()

	return c.Send(h.schedules.Render(ctx), tb.ModeMarkdown, h.markup)
}
