package push

import (
	"context"

	"golang-stock-notifier/pkg/logger"
)

// LogTransport writes notifications to the log instead of delivering them.
type LogTransport struct {
	logger *logger.Logger
}

// NewLogTransport creates a LogTransport.
func NewLogTransport(log *logger.Logger) *LogTransport {
	return &LogTransport{logger: log}
}

func (t *LogTransport) Name() string { return "log" }

func (t *LogTransport) Send(ctx context.Context, token, title, body string, data map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.logger.InfoContext(ctx, "Sending push notification",
		logger.StringField("token", token),
		logger.StringField("title", title),
		logger.StringField("body", body),
		logger.Field("data", data))
	return nil
}
