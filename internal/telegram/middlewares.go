package telegram

import (
	"errors"
	"log/slog"
	"time"

	tb "gopkg.in/telebot.v3"
)

// NewLoggingMiddleware logs every handled update. Replies rejected because the user
// blocked the bot are logged as warnings.
func NewLoggingMiddleware(log *slog.Logger) tb.MiddlewareFunc {
	return func(next tb.HandlerFunc) tb.HandlerFunc {
		return func(c tb.Context) error {
			startedAt := time.Now()
			err := next(c)

			var chatID int64
			if sender := c.Sender(); sender != nil {
				chatID = sender.ID
			}
			args := []any{"chatID", chatID, "text", c.Text(), "duration", time.Since(startedAt)}

			switch {
			case err == nil:
				log.Debug("handled update", args...)
			case errors.Is(err, tb.ErrBlockedByUser):
				log.Warn("bot is blocked by user", args...)
			default:
				log.Error("failed to handle update", append(args, "error", err)...)
			}
			return err
		}
	}
}
