package notifier

import (
	"context"

	"go.uber.org/zap"
)

// LogNotifier writes messages to the log. Used when Telegram is not configured.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier { return &LogNotifier{logger: logger} }

func (n *LogNotifier) SendWithRetry(_ context.Context, text string, _ int) error {
	n.logger.Info("notification", zap.String("text", text))
	return nil
}
