package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tb "gopkg.in/telebot.v3"

	"github.com/Roma7-7-7/loe-notifier/internal/config"
)

type Bot struct {
	bot *tb.Bot

	handler *Handler

	log *slog.Logger
}

func NewBot(config *config.Config, handler *Handler, log *slog.Logger) (*Bot, error) {
	log = log.With("component", "bot")

	bot, err := tb.NewBot(tb.Settings{
		Token:  config.TelegramToken,
		Poller: &tb.LongPoller{Timeout: 5 * time.Second}, //nolint:mnd // it's ok
		OnError: func(err error, _ tb.Context) {
			log.Error("telebot error", "error", err)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	return &Bot{
		bot: bot,

		handler: handler,

		log: log,
	}, nil
}

// Start polls updates until ctx is done.
func (b *Bot) Start(ctx context.Context) error {
	b.bot.Use(NewLoggingMiddleware(b.log))

	b.bot.Handle("/start", b.handler.Start)
	b.bot.Handle("/schedule", b.handler.Schedule)
	b.bot.Handle(&b.handler.btnSchedule, b.handler.Schedule)

	go func() {
		<-ctx.Done()
		b.log.Info("Stopping bot")
		b.bot.Stop()
	}()

	b.bot.Start()

	return nil
}
