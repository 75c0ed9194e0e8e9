package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	tc "github.com/Roma7-7-7/telegram"

	"github.com/Roma7-7-7/loe-notifier/internal/calendar"
	"github.com/Roma7-7-7/loe-notifier/internal/config"
	"github.com/Roma7-7-7/loe-notifier/internal/dal"
	"github.com/Roma7-7-7/loe-notifier/internal/providers"
	"github.com/Roma7-7-7/loe-notifier/internal/service"
	"github.com/Roma7-7-7/loe-notifier/internal/telegram"
	"github.com/Roma7-7-7/loe-notifier/pkg/clock"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	conf, err := config.NewConfig(ctx)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	log := mustLogger(conf.Dev)

	store := dal.NewMemory()
	provider := providers.NewLOEProvider(conf.ScheduleURL, conf.UserAgent, conf.FetchTimeout)
	clk := clock.New()
	sender := tc.NewClient(http.DefaultClient, conf.TelegramToken)

	schedulesSvc := service.NewSchedules(provider, clk, conf.Group, log)
	subscriptionsSvc := service.NewSubscription(store, log)
	alertsSvc := service.NewAlerts(provider, store, store, sender, clk, service.AlertsConfig{
		Group:  conf.Group,
		Lead:   conf.AlertLead,
		Window: conf.AlertWindow,
		TTL:    conf.AlertsTTL,
	}, log)

	scheduler := service.NewScheduler(conf, alertsSvc, log)
	if conf.CalendarEnabled {
		google, err := calendar.NewGoogle(ctx, conf.GoogleCredentialsPath)
		if err != nil {
			log.Error("Failed to create calendar client", "error", err)
			os.Exit(1)
		}

		calendarSvc := service.NewCalendarService(service.CalendarConfig{
			CalendarID:      conf.CalendarID,
			Group:           conf.Group,
			ReminderMinutes: int64(conf.AlertLead.Minutes()),
		}, google, provider, clk, log)

		lookbackDays := conf.CalendarCleanupLookbackDays
		scheduler.
			WithCalendarSync(calendarSvc.SyncEvents, conf.CalendarSyncInterval).
			WithCalendarCleanup(func(ctx context.Context) error {
				return calendarSvc.CleanupStaleEvents(ctx, lookbackDays)
			}, conf.CalendarCleanupInterval)
	}

	handler := telegram.NewHandler(subscriptionsSvc, schedulesSvc, log)
	bot, err := telegram.NewBot(conf, handler, log)
	if err != nil {
		log.Error("Failed to create telegram bot", "error", err)
		os.Exit(1)
	}

	wg := &sync.WaitGroup{}
	wg.Go(func() {
		if err := scheduler.Start(ctx); err != nil {
			log.Error("Failed to start scheduler", "error", err)
			cancel()
		}
	})

	log.Info("Starting bot")
	err = bot.Start(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error("Failed to start bot", "error", err)
		cancel()
	}

	wg.Wait()
	log.Info("Stopped bot")
}

func mustLogger(dev bool) *slog.Logger {
	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})

	if dev {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	}

	return slog.New(handler)
}
