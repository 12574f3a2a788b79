package notify

import (
	"context"

	"oasis-blood-platform/internal/logx"
)

// LogNotifier logs notifications instead of sending them. Every token counts as delivered.
type LogNotifier struct {
	logger logx.Logger
}

// NewLogNotifier creates a LogNotifier.
func NewLogNotifier(logger logx.Logger) *LogNotifier {
	if logger == nil {
		logger = logx.Nop()
	}
	return &LogNotifier{logger: logger}
}

// Send logs msg and reports all tokens as sent.
func (l *LogNotifier) Send(_ context.Context, tokens []string, msg Message) (SendResult, error) {
	l.logger.Info("push notification",
		logx.Int("tokens", len(tokens)),
		logx.String("title", msg.Title),
		logx.String("body", msg.Body),
		logx.Any("data", msg.Data),
	)
	return SendResult{SuccessCount: len(tokens)}, nil
}
