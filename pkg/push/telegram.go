package push

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"golang-stock-notifier/pkg/telegram"
)

// TelegramTransport delivers notifications as Telegram messages.
// Device tokens registered against this transport are Telegram chat ids.
type TelegramTransport struct {
	notifier telegram.Notifier
	now      func() time.Time
}

// NewTelegramTransport creates a TelegramTransport.
func NewTelegramTransport(notifier telegram.Notifier) *TelegramTransport {
	return &TelegramTransport{notifier: notifier, now: time.Now}
}

func (t *TelegramTransport) Name() string { return "telegram" }

func (t *TelegramTransport) Send(ctx context.Context, token, title, body string, data map[string]any) error {
	chatID, err := strconv.ParseInt(token, 10, 64)
	if err != nil {
		return fmt.Errorf("token %q is not a telegram chat id: %w", token, err)
	}

	text := telegram.FormatNotificationForTelegram(title, body, data, t.now())

	// the bot client has no context support; run it aside so ctx still bounds the wait
	errCh := make(chan error, 1)
	go func() {
		errCh <- t.notifier.SendMessageUser(text, chatID)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
